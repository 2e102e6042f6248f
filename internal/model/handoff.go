package model

import (
	"time"

	"github.com/google/uuid"
)

// CheckoutHandoff is the payload pushed to the checkout queue when an
// appointment is completed with handoff. Fire and forget; the scheduler never
// reads a reply.
type CheckoutHandoff struct {
	AppointmentID uuid.UUID `json:"appointment_id"`
	ServiceName   string    `json:"service_name"`
	Price         float64   `json:"price"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone,omitempty"`
	CustomerEmail string    `json:"customer_email,omitempty"`
	Date          string    `json:"date"`
	Time          string    `json:"time"`
	StaffID       uuid.UUID `json:"staff_id"`
	Notes         string    `json:"notes,omitempty"`
	CompletedAt   time.Time `json:"completed_at"`
}
