package event

import (
	"encoding/json"
	"time"
)

// Message is the envelope published to Kafka.
// Payload is kept as the raw JSON written to the outbox row.
type Message struct {
	ID            string          `json:"id"`
	Type          string          `json:"type"`
	CorrelationID string          `json:"correlation_id"`
	Producer      string          `json:"producer"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Payload       json.RawMessage `json:"payload"`
}
