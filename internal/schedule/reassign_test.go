package schedule

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonhq/scheduler-api/internal/model"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
)

func newTestReassigner(t *testing.T) (*Reassigner, *Store) {
	t.Helper()
	store, _ := newTestStore(t)
	resolver := NewConflictResolver(store)
	return NewReassigner(store, resolver, nil), store
}

func TestMoveToFreeSlot(t *testing.T) {
	r, store := newTestReassigner(t)
	staff := uuid.New()
	other := uuid.New()

	apt := testAppointment(staff)
	_, err := store.Insert(context.Background(), apt)
	require.NoError(t, err)

	_, err = r.Move(context.Background(), apt.ID, other, "2026-09-02", "15:45")
	require.NoError(t, err)

	got, err := store.Get(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, other, got.StaffID)
	assert.Equal(t, "2026-09-02", got.Date)
	assert.Equal(t, "15:45", got.Time)
}

func TestMoveOntoOccupiedSlotLeavesBothUntouched(t *testing.T) {
	r, store := newTestReassigner(t)
	staff := uuid.New()

	settled := testAppointment(staff)
	_, err := store.Insert(context.Background(), settled)
	require.NoError(t, err)

	moving := testAppointment(staff)
	moving.Time = "12:00"
	_, err = store.Insert(context.Background(), moving)
	require.NoError(t, err)

	_, err = r.Move(context.Background(), moving.ID, staff, settled.Date, settled.Time)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	gotMoving, err := store.Get(moving.ID)
	require.NoError(t, err)
	assert.Equal(t, "12:00", gotMoving.Time)
	gotSettled, err := store.Get(settled.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", gotSettled.Time)
}

func TestMoveOntoOwnSlotIsANoOpMove(t *testing.T) {
	r, store := newTestReassigner(t)
	staff := uuid.New()

	apt := testAppointment(staff)
	_, err := store.Insert(context.Background(), apt)
	require.NoError(t, err)

	// The appointment's own occupancy must not count against itself.
	_, err = r.Move(context.Background(), apt.ID, staff, apt.Date, apt.Time)
	require.NoError(t, err)
}

func TestMoveDefaultsDateWhenOmitted(t *testing.T) {
	r, store := newTestReassigner(t)
	staff := uuid.New()

	apt := testAppointment(staff)
	_, err := store.Insert(context.Background(), apt)
	require.NoError(t, err)

	_, err = r.Move(context.Background(), apt.ID, staff, "", "16:30")
	require.NoError(t, err)

	got, err := store.Get(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "2026-09-01", got.Date)
	assert.Equal(t, "16:30", got.Time)
}

func TestSingleDragInFlight(t *testing.T) {
	r, store := newTestReassigner(t)

	first := testAppointment(uuid.New())
	_, err := store.Insert(context.Background(), first)
	require.NoError(t, err)
	second := testAppointment(uuid.New())
	_, err = store.Insert(context.Background(), second)
	require.NoError(t, err)

	require.NoError(t, r.BeginDrag(first.ID))

	err = r.BeginDrag(second.ID)
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrConflict))

	// Re-gripping the same appointment is fine.
	assert.NoError(t, r.BeginDrag(first.ID))

	id, ok := r.InFlight()
	require.True(t, ok)
	assert.Equal(t, first.ID, id)
}

func TestDropCompletesDrag(t *testing.T) {
	r, store := newTestReassigner(t)
	staff := uuid.New()

	apt := testAppointment(staff)
	_, err := store.Insert(context.Background(), apt)
	require.NoError(t, err)

	require.NoError(t, r.BeginDrag(apt.ID))
	_, err = r.Drop(context.Background(), model.SlotRef{StaffID: staff, Date: "2026-09-03", Time: "09:15"})
	require.NoError(t, err)

	got, err := store.Get(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "09:15", got.Time)

	_, ok := r.InFlight()
	assert.False(t, ok, "drop clears the in-flight state")

	_, err = r.Drop(context.Background(), model.SlotRef{StaffID: staff, Date: "2026-09-03", Time: "09:30"})
	assert.Error(t, err, "a second drop has nothing in flight")
}

func TestFailedDropStillClearsDrag(t *testing.T) {
	r, store := newTestReassigner(t)
	staff := uuid.New()

	settled := testAppointment(staff)
	_, err := store.Insert(context.Background(), settled)
	require.NoError(t, err)
	moving := testAppointment(staff)
	moving.Time = "11:00"
	_, err = store.Insert(context.Background(), moving)
	require.NoError(t, err)

	require.NoError(t, r.BeginDrag(moving.ID))
	_, err = r.Drop(context.Background(), model.SlotRef{StaffID: staff, Date: settled.Date, Time: settled.Time})
	require.Error(t, err)

	// Either way the pointer is released; the next drag may begin.
	_, ok := r.InFlight()
	assert.False(t, ok)
	assert.NoError(t, r.BeginDrag(settled.ID))
}

func TestCancelDrag(t *testing.T) {
	r, store := newTestReassigner(t)
	apt := testAppointment(uuid.New())
	_, err := store.Insert(context.Background(), apt)
	require.NoError(t, err)

	require.NoError(t, r.BeginDrag(apt.ID))
	r.CancelDrag()

	_, ok := r.InFlight()
	assert.False(t, ok)

	got, err := store.Get(apt.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.Time, "cancel never mutates the appointment")
}
