package model

import (
	"time"

	"github.com/google/uuid"
)

type AppointmentStatus string

const (
	AppointmentStatusRequested    AppointmentStatus = "requested"
	AppointmentStatusAccepted     AppointmentStatus = "accepted"
	AppointmentStatusReadyToStart AppointmentStatus = "ready_to_start"
	AppointmentStatusInProgress   AppointmentStatus = "in_progress"
	AppointmentStatusComplete     AppointmentStatus = "complete"
	AppointmentStatusNoShow       AppointmentStatus = "no_show"

	// AppointmentStatusPersonalTask marks a non-customer calendar block. It
	// never transitions and is exempt from slot conflict checks.
	AppointmentStatusPersonalTask AppointmentStatus = "personal_task"
)

// Terminal reports whether the status ends the lifecycle chain.
func (s AppointmentStatus) Terminal() bool {
	return s == AppointmentStatusComplete || s == AppointmentStatusNoShow
}

// Appointment occupies one (staff, date, time) slot on the grid. Date is a
// calendar day ("2006-01-02") and Time a slot boundary key ("15:04"); both are
// kept as strings so slot identity is exact equality with no timezone games.
type Appointment struct {
	ID        uuid.UUID         `json:"id"`
	ServiceID string            `json:"service_id"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Duration  int               `json:"duration"` // minutes, from the service catalog
	StaffID   uuid.UUID         `json:"staff_id"`
	Status    AppointmentStatus `json:"status"`

	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Phone     string  `json:"phone,omitempty"`
	Email     string  `json:"email,omitempty"`
	Amount    float64 `json:"amount"`
	Notes     string  `json:"notes,omitempty"`

	Recurring    bool `json:"recurring"`
	Bundle       bool `json:"bundle"`
	HouseCall    bool `json:"house_call"`
	HasNote      bool `json:"has_note"`
	FormRequired bool `json:"form_required"`
	DepositPaid  bool `json:"deposit_paid"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Blocking reports whether the appointment counts against the one-per-slot
// invariant. Personal tasks and terminal appointments release their slot.
func (a *Appointment) Blocking() bool {
	return a.Status != AppointmentStatusPersonalTask && !a.Status.Terminal()
}

// AppointmentPatch carries the mutable subset of fields for Update. Nil
// pointers leave the field untouched.
type AppointmentPatch struct {
	StaffID     *uuid.UUID         `json:"staff_id,omitempty"`
	Date        *string            `json:"date,omitempty"`
	Time        *string            `json:"time,omitempty"`
	Status      *AppointmentStatus `json:"status,omitempty"`
	Notes       *string            `json:"notes,omitempty"`
	Amount      *float64           `json:"amount,omitempty"`
	DepositPaid *bool              `json:"deposit_paid,omitempty"`
}

// AppointmentFilter narrows List results. Zero values match everything.
type AppointmentFilter struct {
	StaffID uuid.UUID
	Date    string
	Time    string
}

// Matches applies the filter to one appointment.
func (f AppointmentFilter) Matches(a *Appointment) bool {
	if f.StaffID != uuid.Nil && a.StaffID != f.StaffID {
		return false
	}
	if f.Date != "" && a.Date != f.Date {
		return false
	}
	if f.Time != "" && a.Time != f.Time {
		return false
	}
	return true
}
