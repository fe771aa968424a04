package api

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sinclaire-white/vehicle-renting-server/internal/api/middleware"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/account"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
	"github.com/sinclaire-white/vehicle-renting-server/internal/usecase"
)

type BookingHandlers struct {
	createUC       *usecase.CreateBooking
	listUC         *usecase.ListBookings
	updateStatusUC *usecase.UpdateBookingStatus
}

func NewBookingHandlers(
	createUC *usecase.CreateBooking,
	listUC *usecase.ListBookings,
	updateStatusUC *usecase.UpdateBookingStatus,
) *BookingHandlers {
	return &BookingHandlers{
		createUC:       createUC,
		listUC:         listUC,
		updateStatusUC: updateStatusUC,
	}
}

func (h *BookingHandlers) Create(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, errUnauthenticated)
		return
	}

	var req struct {
		CustomerID    int64  `json:"customer_id"`
		VehicleID     int64  `json:"vehicle_id"`
		RentStartDate string `json:"rent_start_date"`
		RentEndDate   string `json:"rent_end_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.VehicleID == 0 || req.RentStartDate == "" || req.RentEndDate == "" {
		respondBadRequest(w, "All fields are required")
		return
	}

	start, err := time.Parse(time.DateOnly, req.RentStartDate)
	if err != nil {
		respondBadRequest(w, "rent_start_date must be YYYY-MM-DD")
		return
	}
	end, err := time.Parse(time.DateOnly, req.RentEndDate)
	if err != nil {
		respondBadRequest(w, "rent_end_date must be YYYY-MM-DD")
		return
	}

	// Only admins can create bookings for other customers.
	customerID := ident.AccountID
	if ident.Role == account.RoleAdmin && req.CustomerID != 0 {
		customerID = req.CustomerID
	}

	result, err := h.createUC.Execute(r.Context(), usecase.CreateBookingParams{
		CustomerID:    customerID,
		VehicleID:     req.VehicleID,
		RentStartDate: start,
		RentEndDate:   end,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "Booking created successfully", result)
}

func (h *BookingHandlers) List(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, errUnauthenticated)
		return
	}

	data, err := h.listUC.Execute(r.Context(), ident.AccountID, ident.Role)
	if err != nil {
		respondError(w, err)
		return
	}

	message := "Bookings retrieved successfully"
	if ident.Role == account.RoleCustomer {
		message = "Your bookings retrieved successfully"
	}
	respond(w, http.StatusOK, message, data)
}

func (h *BookingHandlers) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ident, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		respondError(w, errUnauthenticated)
		return
	}

	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingId"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid booking id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	target, err := booking.ParseTargetStatus(req.Status)
	if err != nil {
		respondBadRequest(w, `Status must be "cancelled" or "returned"`)
		return
	}

	result, err := h.updateStatusUC.Execute(r.Context(), usecase.UpdateBookingStatusParams{
		BookingID:    bookingID,
		TargetStatus: target,
		CallerID:     ident.AccountID,
		CallerRole:   ident.Role,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	message := "Booking cancelled successfully"
	if target == booking.StatusReturned {
		message = "Booking marked as returned. Vehicle is now available"
	}
	respond(w, http.StatusOK, message, result)
}
