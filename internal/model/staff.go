package model

import (
	"time"

	"github.com/google/uuid"
)

type StaffRole string

const (
	StaffRoleJunior StaffRole = "junior"
	StaffRoleSenior StaffRole = "senior"
	StaffRoleAdmin  StaffRole = "admin"
)

type StaffStatus string

const (
	StaffStatusAvailable StaffStatus = "available"
	StaffStatusBusy      StaffStatus = "busy"
	StaffStatusBreak     StaffStatus = "break"
	StaffStatusOffline   StaffStatus = "offline"
)

// StaffMember is owned by the admin surface; the scheduling core reads the
// roster and only ever writes Status back (break/offline toggles).
type StaffMember struct {
	ID           uuid.UUID   `db:"id" json:"id"`
	Name         string      `db:"name" json:"name"`
	Email        string      `db:"email" json:"email"`
	PasswordHash string      `db:"password_hash" json:"-"`
	Role         StaffRole   `db:"role" json:"role"`
	Specialty    string      `db:"specialty" json:"specialty"`
	Status       StaffStatus `db:"status" json:"status"`
	ColorID      string      `db:"color_id" json:"color_id"`
	CreatedAt    time.Time   `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time   `db:"updated_at" json:"updated_at"`
}

type UpdateStaffStatusRequest struct {
	Status StaffStatus `json:"status" binding:"required"`
}

func (s StaffStatus) Valid() bool {
	switch s {
	case StaffStatusAvailable, StaffStatusBusy, StaffStatusBreak, StaffStatusOffline:
		return true
	}
	return false
}
