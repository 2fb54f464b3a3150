package booking

import (
	"encoding/json"
	"time"
)

const (
	EventBookingCreated  = "BookingCreated"
	EventPaymentVerified = "PaymentVerified"
	EventStatusChanged   = "BookingStatusChanged"
)

const TopicBookingEvents = "booking.events"

// Envelope is the versioned wrapper every published event rides in.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	TraceID       string          `json:"trace_id,omitempty"`
	CorrelationID string          `json:"correlation_id,omitempty"` // booking id
	Payload       json.RawMessage `json:"payload"`
}

type BookingCreatedPayload struct {
	BookingID string `json:"booking_id"`
	Kind      Kind   `json:"kind"`
	Status    Status `json:"status"`
	Amount    int    `json:"amount"`
	OrderID   string `json:"order_id,omitempty"`
}

type PaymentVerifiedPayload struct {
	BookingID string `json:"booking_id"`
	Kind      Kind   `json:"kind"`
	PaymentID string `json:"payment_id"`
	Status    Status `json:"status"`
}

type StatusChangedPayload struct {
	BookingID string `json:"booking_id"`
	Kind      Kind   `json:"kind"`
	From      Status `json:"from"`
	To        Status `json:"to"`
}

// PartitionKey keeps all events of one booking on one partition, in order.
func PartitionKey(bookingID string) []byte { return []byte(bookingID) }
