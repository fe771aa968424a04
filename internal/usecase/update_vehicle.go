package usecase

import (
	"context"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
)

type UpdateVehicle struct {
	vehicleRepo VehicleRepo
}

func NewUpdateVehicle(vehicleRepo VehicleRepo) *UpdateVehicle {
	return &UpdateVehicle{vehicleRepo: vehicleRepo}
}

// UpdateVehicleParams carries a partial update; nil fields stay unchanged.
type UpdateVehicleParams struct {
	VehicleID          int64
	Name               *string
	Type               *string
	RegistrationNumber *string
	DailyRentPrice     *float64
	AvailabilityStatus *string
}

func (uc *UpdateVehicle) Execute(ctx context.Context, params UpdateVehicleParams) (*vehicle.Vehicle, error) {
	existing, err := uc.vehicleRepo.GetByID(ctx, params.VehicleID)
	if err != nil {
		return nil, err
	}

	patch := vehicle.Patch{
		Name:               params.Name,
		RegistrationNumber: params.RegistrationNumber,
		DailyRentPrice:     params.DailyRentPrice,
	}

	if params.Type != nil {
		vType, err := vehicle.ParseType(*params.Type)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidInput, "Vehicle type must be car, bike, van or SUV", err)
		}
		patch.Type = &vType
	}
	if params.AvailabilityStatus != nil {
		status, err := vehicle.ParseStatus(*params.AvailabilityStatus)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidInput, "Availability status must be available or booked", err)
		}
		patch.AvailabilityStatus = &status
	}
	if params.DailyRentPrice != nil && *params.DailyRentPrice <= 0 {
		return nil, apperror.New(apperror.KindInvalidInput, "Daily rent price must be positive")
	}

	if params.RegistrationNumber != nil && *params.RegistrationNumber != existing.RegistrationNumber {
		taken, err := uc.vehicleRepo.RegistrationTaken(ctx, *params.RegistrationNumber, params.VehicleID)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, apperror.New(apperror.KindConflict, "Vehicle with this registration number already exists")
		}
	}

	return uc.vehicleRepo.Update(ctx, params.VehicleID, patch)
}
