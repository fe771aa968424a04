package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
)

type GetVehicle struct {
	redisClient *redis.Client
	vehicleRepo VehicleRepo
}

func NewGetVehicle(redisClient *redis.Client, vehicleRepo VehicleRepo) *GetVehicle {
	return &GetVehicle{
		redisClient: redisClient,
		vehicleRepo: vehicleRepo,
	}
}

// Execute reads through a short-lived cache. The TTL stays small because
// availability flips on every booking transition.
func (uc *GetVehicle) Execute(ctx context.Context, vehicleID int64) (*vehicle.Vehicle, error) {
	cacheKey := fmt.Sprintf("vehicle:%d", vehicleID)

	if uc.redisClient != nil {
		val, err := uc.redisClient.Get(ctx, cacheKey).Result()
		if err == nil {
			var v vehicle.Vehicle
			if err := json.Unmarshal([]byte(val), &v); err == nil {
				return &v, nil
			}
		}
	}

	v, err := uc.vehicleRepo.GetByID(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	if uc.redisClient != nil {
		data, _ := json.Marshal(v)
		uc.redisClient.Set(ctx, cacheKey, data, 5*time.Second)
	}

	return v, nil
}
