package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

// Idempotency short-circuits repeated state-changing requests carrying the
// same Idempotency-Key header. Requests without the header pass through.
func Idempotency(redisClient *redis.Client) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodPatch {
				next.ServeHTTP(w, r)
				return
			}

			key := r.Header.Get("Idempotency-Key")
			if key == "" || redisClient == nil {
				next.ServeHTTP(w, r)
				return
			}

			idemKey := fmt.Sprintf("idempotency:%s", key)
			ctx := r.Context()

			_, err := redisClient.Get(ctx, idemKey).Result()
			if err == nil {
				// Already processed
				w.Header().Set("X-Idempotency-Hit", "true")
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"success": false, "message": "request already processed"}`))
				return
			} else if err != redis.Nil {
				// Redis unavailable; let the request through rather than fail it
				next.ServeHTTP(w, r)
				return
			}

			// Lock the key with a short TTL so a crash mid-request does not
			// block the retry forever.
			acquired, err := redisClient.SetNX(ctx, idemKey, "PROCESSING", 10*time.Second).Result()
			if err != nil || !acquired {
				w.WriteHeader(http.StatusConflict)
				w.Write([]byte(`{"success": false, "message": "concurrent request"}`))
				return
			}

			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Only a successful response pins the key; a failed request must
			// stay retryable, so the lock is released instead.
			if rec.status >= 200 && rec.status < 300 {
				redisClient.Set(ctx, idemKey, "COMPLETED", 24*time.Hour)
			} else {
				redisClient.Del(ctx, idemKey)
			}
		})
	}
}

// statusRecorder captures the status code written by the handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}
