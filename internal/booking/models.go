package booking

import "time"

// Booking generalizes the three request kinds; kind-specific columns are
// nullable and only populated for the kind that owns them.
type Booking struct {
	ID     string `json:"id"`
	Kind   Kind   `json:"kind"`
	Name   string `json:"name"`
	Email  *string `json:"email"`
	Phone  string `json:"phone"`
	Gender string `json:"gender"`

	DOB *time.Time `json:"dob,omitempty"` // consultation, demo

	BirthDate     *time.Time `json:"birth_date,omitempty"` // kundli
	BirthTime     *string    `json:"birth_time,omitempty"`
	BirthPlace    *string    `json:"birth_place,omitempty"`
	WithBirthTime bool       `json:"with_birth_time,omitempty"`

	ScheduledDate *time.Time `json:"date,omitempty"` // demo
	ScheduledTime *string    `json:"time,omitempty"`

	Amount  int     `json:"amount"`
	OrderID *string `json:"order_id,omitempty"` // gateway order, nil until created

	PaymentID  *string `json:"payment_id,omitempty"`
	PaymentSig *string `json:"-"` // never serialized

	Status    Status    `json:"status"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Verified reports whether a payment reference has been accepted.
func (b *Booking) Verified() bool {
	return b.PaymentID != nil
}

type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

type ListFilter struct {
	Status   string
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

func (f *ListFilter) normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 10
	}
}
