package model

import (
	"time"

	"github.com/google/uuid"
)

// Presence is a read-only collaborative-awareness snapshot: which staff member
// is currently viewing which date. The core only displays the latest snapshot,
// it never merges or reconciles.
type Presence struct {
	StaffID   uuid.UUID `json:"staff_id"`
	StaffName string    `json:"staff_name"`
	Date      string    `json:"date"`
	SeenAt    time.Time `json:"seen_at"`
}
