package vehicle

import (
	"fmt"
	"time"
)

type Type string

const (
	TypeCar  Type = "car"
	TypeBike Type = "bike"
	TypeVan  Type = "van"
	TypeSUV  Type = "SUV"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeCar, TypeBike, TypeVan, TypeSUV:
		return Type(s), nil
	default:
		return "", fmt.Errorf("unknown vehicle type: %s", s)
	}
}

type Status string

const (
	StatusAvailable Status = "available"
	StatusBooked    Status = "booked"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusAvailable, StatusBooked:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown availability status: %s", s)
	}
}

type Vehicle struct {
	ID                 int64     `json:"id"`
	Name               string    `json:"vehicle_name"`
	Type               Type      `json:"type"`
	RegistrationNumber string    `json:"registration_number"`
	DailyRentPrice     float64   `json:"daily_rent_price"`
	AvailabilityStatus Status    `json:"availability_status"`
	CreatedAt          time.Time `json:"created_at"`
}

// Patch carries a partial update; nil fields are left unchanged.
type Patch struct {
	Name               *string
	Type               *Type
	RegistrationNumber *string
	DailyRentPrice     *float64
	AvailabilityStatus *Status
}
