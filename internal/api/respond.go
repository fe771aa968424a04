package api

import (
	"encoding/json"
	"net/http"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
)

// envelope is the response shape shared by every endpoint.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
	Errors  string `json:"errors,omitempty"`
}

func respond(w http.ResponseWriter, status int, message string, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(envelope{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// respondError maps the error kind to a status code; unclassified errors
// become a 500 with a generic message so store detail never leaks.
func respondError(w http.ResponseWriter, err error) {
	msg := apperror.Message(err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apperror.KindOf(err).HTTPStatus())
	json.NewEncoder(w).Encode(envelope{
		Success: false,
		Message: msg,
		Errors:  msg,
	})
}

func respondBadRequest(w http.ResponseWriter, msg string) {
	respondError(w, apperror.New(apperror.KindInvalidInput, msg))
}

// errUnauthenticated covers handlers reached without an identity in
// context, which only happens if the route is miswired.
var errUnauthenticated = apperror.New(apperror.KindUnauthorized, "Unauthorized")
