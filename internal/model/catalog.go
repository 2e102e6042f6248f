package model

import "time"

// Service is one bookable catalog entry. Duration and price live here and
// nowhere else; the scheduling core treats the catalog as a read-only
// reference table.
type Service struct {
	ID        string    `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Duration  int       `db:"duration" json:"duration"` // in minutes
	Price     float64   `db:"price" json:"price"`
	Status    string    `db:"status" json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
