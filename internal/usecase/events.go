package usecase

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/booking"
	"github.com/sinclaire-white/vehicle-renting-server/internal/domain/outbox"
)

// newBookingEvent builds the outbox row written in the same transaction as
// the booking state change it describes.
func newBookingEvent(eventType string, b *booking.Booking, producer string) (*outbox.Event, error) {
	payload, err := json.Marshal(b)
	if err != nil {
		return nil, fmt.Errorf("marshal booking event: %w", err)
	}

	return &outbox.Event{
		ID:            uuid.New().String(),
		EventType:     eventType,
		Payload:       payload,
		Status:        "new",
		CorrelationID: strconv.FormatInt(b.ID, 10),
		Producer:      producer,
		CreatedAt:     time.Now(),
	}, nil
}
