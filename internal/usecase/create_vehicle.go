package usecase

import (
	"context"

	"github.com/sinclaire-white/vehicle-renting-server/internal/apperror"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
)

type CreateVehicle struct {
	vehicleRepo VehicleRepo
}

func NewCreateVehicle(vehicleRepo VehicleRepo) *CreateVehicle {
	return &CreateVehicle{vehicleRepo: vehicleRepo}
}

type CreateVehicleParams struct {
	Name               string
	Type               string
	RegistrationNumber string
	DailyRentPrice     float64
	AvailabilityStatus string
}

func (uc *CreateVehicle) Execute(ctx context.Context, params CreateVehicleParams) (*vehicle.Vehicle, error) {
	if params.Name == "" || params.RegistrationNumber == "" {
		return nil, apperror.New(apperror.KindInvalidInput, "All fields are required")
	}
	vType, err := vehicle.ParseType(params.Type)
	if err != nil {
		return nil, apperror.Wrap(apperror.KindInvalidInput, "Vehicle type must be car, bike, van or SUV", err)
	}
	if params.DailyRentPrice <= 0 {
		return nil, apperror.New(apperror.KindInvalidInput, "Daily rent price must be positive")
	}

	status := vehicle.StatusAvailable
	if params.AvailabilityStatus != "" {
		status, err = vehicle.ParseStatus(params.AvailabilityStatus)
		if err != nil {
			return nil, apperror.Wrap(apperror.KindInvalidInput, "Availability status must be available or booked", err)
		}
	}

	taken, err := uc.vehicleRepo.RegistrationTaken(ctx, params.RegistrationNumber, 0)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, apperror.New(apperror.KindConflict, "Vehicle with this registration number already exists")
	}

	v := &vehicle.Vehicle{
		Name:               params.Name,
		Type:               vType,
		RegistrationNumber: params.RegistrationNumber,
		DailyRentPrice:     params.DailyRentPrice,
		AvailabilityStatus: status,
	}
	if err := uc.vehicleRepo.Create(ctx, v); err != nil {
		return nil, err
	}

	return v, nil
}
