package model

import "fmt"

// TimeSlot is one quantized interval in the daily grid. It is a pure value,
// never persisted; the grid is regenerated from constants on every request.
type TimeSlot struct {
	Hour   int    `json:"hour"`
	Minute int    `json:"minute"`
	Label  string `json:"label"`
}

// Key returns the 24-hour slot identifier used on appointments, e.g. "08:15".
func (s TimeSlot) Key() string {
	return fmt.Sprintf("%02d:%02d", s.Hour, s.Minute)
}

// FormatSlotLabel renders a 12-hour display label for a slot boundary.
func FormatSlotLabel(hour, minute int) string {
	period := "AM"
	displayHour := hour
	switch {
	case hour == 0 || hour == 24:
		displayHour = 12
	case hour == 12:
		period = "PM"
	case hour > 12:
		displayHour = hour - 12
		period = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", displayHour, minute, period)
}
