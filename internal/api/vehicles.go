package api

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sinclaire-white/vehicle-renting-server/internal/usecase"
)

type VehicleHandlers struct {
	createUC *usecase.CreateVehicle
	listUC   *usecase.ListVehicles
	getUC    *usecase.GetVehicle
	updateUC *usecase.UpdateVehicle
	deleteUC *usecase.DeleteVehicle
}

func NewVehicleHandlers(
	createUC *usecase.CreateVehicle,
	listUC *usecase.ListVehicles,
	getUC *usecase.GetVehicle,
	updateUC *usecase.UpdateVehicle,
	deleteUC *usecase.DeleteVehicle,
) *VehicleHandlers {
	return &VehicleHandlers{
		createUC: createUC,
		listUC:   listUC,
		getUC:    getUC,
		updateUC: updateUC,
		deleteUC: deleteUC,
	}
}

func (h *VehicleHandlers) Create(w http.ResponseWriter, r *http.Request) {
	var req struct {
		VehicleName        string  `json:"vehicle_name"`
		Type               string  `json:"type"`
		RegistrationNumber string  `json:"registration_number"`
		DailyRentPrice     float64 `json:"daily_rent_price"`
		AvailabilityStatus string  `json:"availability_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	v, err := h.createUC.Execute(r.Context(), usecase.CreateVehicleParams{
		Name:               req.VehicleName,
		Type:               req.Type,
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: req.AvailabilityStatus,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusCreated, "Vehicle created successfully", v)
}

func (h *VehicleHandlers) List(w http.ResponseWriter, r *http.Request) {
	vehicles, err := h.listUC.Execute(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Vehicles retrieved successfully", vehicles)
}

func (h *VehicleHandlers) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "vehicleId"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid vehicle id")
		return
	}

	v, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Vehicle retrieved successfully", v)
}

func (h *VehicleHandlers) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "vehicleId"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid vehicle id")
		return
	}

	var req struct {
		VehicleName        *string  `json:"vehicle_name"`
		Type               *string  `json:"type"`
		RegistrationNumber *string  `json:"registration_number"`
		DailyRentPrice     *float64 `json:"daily_rent_price"`
		AvailabilityStatus *string  `json:"availability_status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	v, err := h.updateUC.Execute(r.Context(), usecase.UpdateVehicleParams{
		VehicleID:          id,
		Name:               req.VehicleName,
		Type:               req.Type,
		RegistrationNumber: req.RegistrationNumber,
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: req.AvailabilityStatus,
	})
	if err != nil {
		respondError(w, err)
		return
	}

	respond(w, http.StatusOK, "Vehicle updated successfully", v)
}

func (h *VehicleHandlers) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "vehicleId"), 10, 64)
	if err != nil {
		respondBadRequest(w, "invalid vehicle id")
		return
	}

	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		respondError(w, err)
		return
	}
	respond(w, http.StatusOK, "Vehicle deleted successfully", nil)
}
