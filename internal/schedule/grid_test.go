package schedule

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/scheduler-api/internal/model"
)

func newTestGridBuilder(t *testing.T) (*GridBuilder, *Store, *TimeMarker) {
	t.Helper()
	menu, store := newTestMenu(t)
	marker := NewTimeMarker()
	return NewGridBuilder(store, menu, NewColorRegistry(), marker), store, marker
}

func TestBuildGridShape(t *testing.T) {
	builder, store, _ := newTestGridBuilder(t)
	staffA := &model.StaffMember{ID: uuid.New(), Name: "Ana"}
	staffB := &model.StaffMember{ID: uuid.New(), Name: "Bea"}

	apt := testAppointment(staffA.ID)
	apt.Date = "2026-09-05"
	_, err := store.Insert(context.Background(), apt)
	require.NoError(t, err)

	grid := builder.Build("2026-09-05", []*model.StaffMember{staffA, staffB})

	assert.Len(t, grid.Slots, 65, "the axis includes the closing midnight edge")
	require.Len(t, grid.Columns, 2)
	assert.Len(t, grid.Colors, 10)

	for _, col := range grid.Columns {
		assert.Len(t, col.Cells, 64, "one cell per bookable slot")
		assert.NotEmpty(t, col.Color.ID)
	}
	assert.NotEqual(t, grid.Columns[0].Color.ID, grid.Columns[1].Color.ID)

	// The booked cell carries its appointment and lifecycle actions; the same
	// slot on the other column stays empty.
	var booked, empty *GridCell
	for i := range grid.Columns[0].Cells {
		if grid.Columns[0].Cells[i].Time == "10:00" {
			booked = &grid.Columns[0].Cells[i]
			empty = &grid.Columns[1].Cells[i]
		}
	}
	require.NotNil(t, booked)
	require.NotNil(t, booked.Appointment)
	assert.Equal(t, apt.ID, booked.Appointment.ID)
	assert.Contains(t, booked.Actions, model.ActionAccept)
	assert.Nil(t, empty.Appointment)
	assert.Contains(t, empty.Actions, model.ActionNewAppointment)
}

func TestBuildGridPrefersBlockingEntryPerCell(t *testing.T) {
	builder, store, _ := newTestGridBuilder(t)
	staff := &model.StaffMember{ID: uuid.New(), Name: "Ana"}

	task := testAppointment(staff.ID)
	task.Date = "2026-09-05"
	task.Status = model.AppointmentStatusPersonalTask
	_, err := store.Insert(context.Background(), task)
	require.NoError(t, err)

	booking := testAppointment(staff.ID)
	booking.Date = "2026-09-05"
	_, err = store.Insert(context.Background(), booking)
	require.NoError(t, err)

	grid := builder.Build("2026-09-05", []*model.StaffMember{staff})
	for _, cell := range grid.Columns[0].Cells {
		if cell.Time == "10:00" {
			require.NotNil(t, cell.Appointment)
			assert.Equal(t, booking.ID, cell.Appointment.ID, "the customer booking wins the cell over the shared personal task")
		}
	}
}

func TestBuildGridFiltersByDate(t *testing.T) {
	builder, store, _ := newTestGridBuilder(t)
	staff := &model.StaffMember{ID: uuid.New(), Name: "Ana"}

	apt := testAppointment(staff.ID)
	apt.Date = "2026-09-05"
	_, err := store.Insert(context.Background(), apt)
	require.NoError(t, err)

	grid := builder.Build("2026-09-06", []*model.StaffMember{staff})
	for _, cell := range grid.Columns[0].Cells {
		assert.Nil(t, cell.Appointment)
	}
}

func TestTimeMarkerStopIsIdempotent(t *testing.T) {
	marker := NewTimeMarker()
	marker.Start(MarkerRefreshInterval)
	marker.Stop()
	marker.Stop() // a second logout must not panic
}
