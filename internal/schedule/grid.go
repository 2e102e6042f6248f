package schedule

import (
	"fmt"
	"sync"
	"time"

	"github.com/salonhq/scheduler-api/internal/model"
)

// TimeMarker recomputes the "current time" position rendered as the live
// indicator line on the grid. Refreshed on a 30-second tick; the tick is
// stopped when the staff session ends.
type TimeMarker struct {
	mu   sync.RWMutex
	now  time.Time
	stop chan struct{}
	once sync.Once
}

const MarkerRefreshInterval = 30 * time.Second

func NewTimeMarker() *TimeMarker {
	return &TimeMarker{now: time.Now(), stop: make(chan struct{})}
}

// Start launches the refresh tick. Safe to call once per session.
func (t *TimeMarker) Start(interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-t.stop:
				return
			case now := <-ticker.C:
				t.mu.Lock()
				t.now = now
				t.mu.Unlock()
			}
		}
	}()
}

// Stop cancels the refresh tick. Leaking it across a logout/login cycle is a
// defect, so logout must call this.
func (t *TimeMarker) Stop() {
	t.once.Do(func() { close(t.stop) })
}

// Current returns the marker position as an "HH:MM" grid key, plus whether
// the current time falls inside the visible grid at all.
func (t *TimeMarker) Current() (string, bool) {
	t.mu.RLock()
	now := t.now
	t.mu.RUnlock()

	if now.Hour() < GridStartHour {
		return "", false
	}
	return fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute()), true
}

// Grid is one rendered day: the slot axis, one column per staff member, and
// the live time marker.
type Grid struct {
	Date    string                  `json:"date"`
	Slots   []model.TimeSlot        `json:"slots"`
	Columns []GridColumn            `json:"columns"`
	Marker  string                  `json:"marker,omitempty"`
	Colors  []model.ColorAssignment `json:"palette"`
}

type GridColumn struct {
	Staff *model.StaffMember    `json:"staff"`
	Color model.ColorAssignment `json:"color"`
	Cells []GridCell            `json:"cells"`
}

type GridCell struct {
	Time        string             `json:"time"`
	Appointment *model.Appointment `json:"appointment,omitempty"`
	Actions     []model.SlotAction `json:"actions"`
}

// GridBuilder assembles the day view from the store, the roster, the color
// registry and the action menu.
type GridBuilder struct {
	store    *Store
	menu     *Menu
	registry *ColorRegistry
	marker   *TimeMarker
}

func NewGridBuilder(store *Store, menu *Menu, registry *ColorRegistry, marker *TimeMarker) *GridBuilder {
	return &GridBuilder{store: store, menu: menu, registry: registry, marker: marker}
}

// Build renders the grid for one date. Slots are regenerated, appointments
// are read through the store filter, and every staff-bound cell is decorated
// with its assigned color.
func (b *GridBuilder) Build(date string, roster []*model.StaffMember) *Grid {
	slots := BookableSlots()
	b.registry.AssignRoster(roster)

	grid := &Grid{
		Date:   date,
		Slots:  Slots(),
		Colors: Palette(),
	}
	if marker, ok := b.marker.Current(); ok {
		grid.Marker = marker
	}

	for _, staff := range roster {
		col := GridColumn{
			Staff: staff,
			Color: b.registry.ColorFor(staff.ID),
			Cells: make([]GridCell, 0, len(slots)),
		}
		dayAppts := b.store.List(model.AppointmentFilter{StaffID: staff.ID, Date: date})
		byTime := make(map[string]*model.Appointment, len(dayAppts))
		for _, a := range dayAppts {
			// Terminal appointments stay visible but do not block; the
			// freshest entry per slot wins the cell.
			if cur, ok := byTime[a.Time]; !ok || (!cur.Blocking() && a.Blocking()) {
				byTime[a.Time] = a
			}
		}

		for _, slot := range slots {
			apt := byTime[slot.Key()]
			col.Cells = append(col.Cells, GridCell{
				Time:        slot.Key(),
				Appointment: apt,
				Actions:     b.menu.ActionsFor(apt),
			})
		}
		grid.Columns = append(grid.Columns, col)
	}
	return grid
}
