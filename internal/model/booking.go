package model

import "github.com/google/uuid"

// BookingForm is the new-appointment intake. Validation tags are enforced by
// the booking validator both reactively (per-field) and at submit.
type BookingForm struct {
	FirstName string    `json:"first_name" validate:"required,person_name"`
	LastName  string    `json:"last_name" validate:"required,person_name"`
	Phone     string    `json:"phone" validate:"omitempty,us_phone"`
	Email     string    `json:"email" validate:"omitempty,email"`
	ServiceID string    `json:"service_id" validate:"required,service_id"`
	StaffID   uuid.UUID `json:"staff_id" validate:"required"`
	Date      string    `json:"date" validate:"required,datetime=2006-01-02"`
	Time      string    `json:"time" validate:"required"`
	Notes     string    `json:"notes" validate:"max=1000"`

	Recurring    bool `json:"recurring"`
	Bundle       bool `json:"bundle"`
	HouseCall    bool `json:"house_call"`
	FormRequired bool `json:"form_required"`
	DepositPaid  bool `json:"deposit_paid"`
}

// FieldError is one human-readable validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}
