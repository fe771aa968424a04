package api

import (
	"encoding/json"
	"net/http"

	"github.com/sinclaire-white/vehicle-renting-server/internal/usecase"
)

type AuthHandlers struct {
	signUpUC *usecase.SignUp
	signInUC *usecase.SignIn
}

func NewAuthHandlers(signUpUC *usecase.SignUp, signInUC *usecase.SignIn) *AuthHandlers {
	return &AuthHandlers{
		signUpUC: signUpUC,
		signInUC: signInUC,
	}
}

func (h *AuthHandlers) SignUp(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
		Phone    string `json:"phone"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	a, err := h.signUpUC.Execute(r.Context(), usecase.SignUpParams{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "User registered successfully", a)
}

func (h *AuthHandlers) SignIn(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		respondBadRequest(w, "Email and password are required")
		return
	}

	result, err := h.signInUC.Execute(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Signed in successfully", result)
}
