package schedule

import (
	"fmt"

	"github.com/salonhq/scheduler-api/internal/model"
)

// Grid boundaries are compile-time constants; the grid is regenerated per
// request rather than cached.
const (
	GridStartHour   = 8
	GridEndHour     = 24
	SlotStepMinutes = 15
)

// Slots returns the ordered slot boundaries covering the daily grid,
// including the closing GridEndHour:00 edge: 65 boundaries fencing the 64
// bookable intervals.
func Slots() []model.TimeSlot {
	slots := make([]model.TimeSlot, 0, (GridEndHour-GridStartHour)*60/SlotStepMinutes+1)
	for hour := GridStartHour; hour < GridEndHour; hour++ {
		for minute := 0; minute < 60; minute += SlotStepMinutes {
			slots = append(slots, model.TimeSlot{
				Hour:   hour,
				Minute: minute,
				Label:  model.FormatSlotLabel(hour, minute),
			})
		}
	}
	slots = append(slots, model.TimeSlot{
		Hour:  GridEndHour,
		Label: model.FormatSlotLabel(GridEndHour, 0),
	})
	return slots
}

// BookableSlots returns only the interval starts, 08:00 through 23:45. Cells
// on the grid map one-to-one onto these.
func BookableSlots() []model.TimeSlot {
	all := Slots()
	return all[:len(all)-1]
}

// SlotAt returns the slot for an exact grid boundary.
func SlotAt(hour, minute int) (model.TimeSlot, error) {
	if hour < GridStartHour || hour >= GridEndHour {
		return model.TimeSlot{}, fmt.Errorf("hour %d outside grid bounds [%d, %d)", hour, GridStartHour, GridEndHour)
	}
	if minute < 0 || minute >= 60 || minute%SlotStepMinutes != 0 {
		return model.TimeSlot{}, fmt.Errorf("minute %d is not a %d-minute boundary", minute, SlotStepMinutes)
	}
	return model.TimeSlot{Hour: hour, Minute: minute, Label: model.FormatSlotLabel(hour, minute)}, nil
}

// ParseSlotKey validates a "15:04" slot key against the grid.
func ParseSlotKey(key string) (model.TimeSlot, error) {
	var hour, minute int
	if _, err := fmt.Sscanf(key, "%2d:%2d", &hour, &minute); err != nil {
		return model.TimeSlot{}, fmt.Errorf("malformed slot key %q: %w", key, err)
	}
	return SlotAt(hour, minute)
}
