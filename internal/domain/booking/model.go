package booking

import (
	"fmt"
	"time"
)

// Status is persisted as a string. Cancelled and returned are terminal.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusReturned  Status = "returned"
)

func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusCancelled, StatusReturned:
		return Status(s), nil
	default:
		return "", fmt.Errorf("unknown booking status: %s", s)
	}
}

// ParseTargetStatus accepts only statuses a caller may request.
func ParseTargetStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusCancelled, StatusReturned:
		return Status(s), nil
	default:
		return "", fmt.Errorf(`status must be "cancelled" or "returned"`)
	}
}

func (s Status) Terminal() bool {
	return s == StatusCancelled || s == StatusReturned
}

type Booking struct {
	ID            int64     `json:"id"`
	CustomerID    int64     `json:"customer_id"`
	VehicleID     int64     `json:"vehicle_id"`
	RentStartDate time.Time `json:"rent_start_date"`
	RentEndDate   time.Time `json:"rent_end_date"`
	TotalPrice    float64   `json:"total_price"`
	Status        Status    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// RentalDays is the whole-day span of the rental period, rounded up.
func RentalDays(start, end time.Time) int64 {
	span := end.Sub(start)
	days := span / (24 * time.Hour)
	if span%(24*time.Hour) != 0 {
		days++
	}
	return int64(days)
}

// VehicleSnapshot is the read-only vehicle slice embedded in booking
// responses; the price is the rate the total was computed from.
type VehicleSnapshot struct {
	Name               string  `json:"vehicle_name"`
	RegistrationNumber string  `json:"registration_number,omitempty"`
	Type               string  `json:"type,omitempty"`
	DailyRentPrice     float64 `json:"daily_rent_price,omitempty"`
	AvailabilityStatus string  `json:"availability_status,omitempty"`
}

type CustomerSnapshot struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// AdminView is the admin list projection: every booking joined with the
// customer and vehicle identifying fields.
type AdminView struct {
	Booking
	Customer CustomerSnapshot `json:"customer"`
	Vehicle  VehicleSnapshot  `json:"vehicle"`
}

// CustomerView omits the customer identity.
type CustomerView struct {
	ID            int64           `json:"id"`
	VehicleID     int64           `json:"vehicle_id"`
	RentStartDate time.Time       `json:"rent_start_date"`
	RentEndDate   time.Time       `json:"rent_end_date"`
	TotalPrice    float64         `json:"total_price"`
	Status        Status          `json:"status"`
	Vehicle       VehicleSnapshot `json:"vehicle"`
}
