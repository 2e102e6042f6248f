package model

import (
	"time"

	"github.com/google/uuid"
)

// SlotAction identifies one entry of the per-slot action menu.
type SlotAction string

const (
	ActionNewAppointment      SlotAction = "new_appointment"
	ActionNewMultiple         SlotAction = "new_multiple"
	ActionAddToWaitlist       SlotAction = "add_to_waitlist"
	ActionPersonalTask        SlotAction = "personal_task"
	ActionEditWorkingHours    SlotAction = "edit_working_hours"
	ActionAccept              SlotAction = "accept"
	ActionReadyToStart        SlotAction = "ready_to_start"
	ActionStart               SlotAction = "start"
	ActionComplete            SlotAction = "complete"
	ActionCompleteWithHandoff SlotAction = "complete_with_handoff"
	ActionMarkNoShow          SlotAction = "mark_no_show"
	ActionDelete              SlotAction = "delete"
)

// SlotRef identifies one grid cell.
type SlotRef struct {
	StaffID uuid.UUID `json:"staff_id"`
	Date    string    `json:"date"`
	Time    string    `json:"time"`
}

// WaitlistEntry is a customer waiting for an opening near a preferred slot.
type WaitlistEntry struct {
	ID           uuid.UUID `json:"id"`
	CustomerName string    `json:"customer_name"`
	Phone        string    `json:"phone,omitempty"`
	ServiceID    string    `json:"service_id"`
	StaffID      uuid.UUID `json:"staff_id"`
	Date         string    `json:"date"`
	Time         string    `json:"time"`
	CreatedAt    time.Time `json:"created_at"`
}

// ShiftChange records a working-hours edit made from the grid.
type ShiftChange struct {
	ID        uuid.UUID `json:"id"`
	StaffID   uuid.UUID `json:"staff_id"`
	Date      string    `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	CreatedAt time.Time `json:"created_at"`
}
