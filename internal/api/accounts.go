package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sinclaire-white/vehicle-renting-server/internal/api/middleware"
	"github.com/sinclaire-white/vehicle-renting-server/internal/usecase"
)

type AccountHandlers struct {
	profileUC *usecase.GetProfile
	listUC    *usecase.ListAccounts
	updateUC  *usecase.UpdateAccount
	deleteUC  *usecase.DeleteAccount
}

func NewAccountHandlers(
	profileUC *usecase.GetProfile,
	listUC *usecase.ListAccounts,
	updateUC *usecase.UpdateAccount,
	deleteUC *usecase.DeleteAccount,
) *AccountHandlers {
	return &AccountHandlers{
		profileUC: profileUC,
		listUC:    listUC,
		updateUC:  updateUC,
		deleteUC:  deleteUC,
	}
}

func (h *AccountHandlers) Profile(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, errUnauthenticated)
		return
	}

	a, err := h.profileUC.Execute(r.Context(), ident.AccountID)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Profile retrieved successfully", a)
}

func (h *AccountHandlers) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.listUC.Execute(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Users retrieved successfully", accounts)
}

func (h *AccountHandlers) Update(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, errUnauthenticated)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid user id")
		return
	}

	var req struct {
		Name     *string `json:"name"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
		Phone    *string `json:"phone"`
		Role     *string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	a, err := h.updateUC.Execute(r.Context(), usecase.UpdateAccountParams{
		AccountID:  id,
		CallerID:   ident.AccountID,
		CallerRole: ident.Role,
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Phone:      req.Phone,
		Role:       req.Role,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "User updated successfully", a)
}

func (h *AccountHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, errUnauthenticated)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "userId"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid user id")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), id, ident.AccountID, ident.Role); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "User deleted successfully", nil)
}
