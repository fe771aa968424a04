package usecase

import (
	"context"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/vehicle"
)

type ListVehicles struct {
	vehicleRepo VehicleRepo
}

func NewListVehicles(vehicleRepo VehicleRepo) *ListVehicles {
	return &ListVehicles{vehicleRepo: vehicleRepo}
}

func (uc *ListVehicles) Execute(ctx context.Context) ([]vehicle.Vehicle, error) {
	vehicles, err := uc.vehicleRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if vehicles == nil {
		vehicles = []vehicle.Vehicle{}
	}
	return vehicles, nil
}
