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

func newTestMenu(t *testing.T) (*Menu, *Store) {
	t.Helper()
	machine, store, _, _ := newTestMachine(t)
	return NewMenu(store, machine), store
}

func TestActionsForEmptyCell(t *testing.T) {
	menu, _ := newTestMenu(t)

	actions := menu.ActionsFor(nil)
	assert.Equal(t, []model.SlotAction{
		model.ActionNewAppointment,
		model.ActionNewMultiple,
		model.ActionAddToWaitlist,
		model.ActionPersonalTask,
		model.ActionEditWorkingHours,
	}, actions)
}

func TestActionsForFollowLifecycle(t *testing.T) {
	menu, _ := newTestMenu(t)

	cases := []struct {
		status model.AppointmentStatus
		want   []model.SlotAction
	}{
		{model.AppointmentStatusRequested, []model.SlotAction{model.ActionAccept, model.ActionMarkNoShow, model.ActionDelete}},
		{model.AppointmentStatusAccepted, []model.SlotAction{model.ActionReadyToStart, model.ActionMarkNoShow, model.ActionDelete}},
		{model.AppointmentStatusReadyToStart, []model.SlotAction{model.ActionStart, model.ActionMarkNoShow, model.ActionDelete}},
		{model.AppointmentStatusInProgress, []model.SlotAction{model.ActionComplete, model.ActionCompleteWithHandoff, model.ActionMarkNoShow, model.ActionDelete}},
		{model.AppointmentStatusComplete, []model.SlotAction{model.ActionDelete}},
		{model.AppointmentStatusNoShow, []model.SlotAction{model.ActionDelete}},
		{model.AppointmentStatusPersonalTask, []model.SlotAction{model.ActionDelete}},
	}
	for _, tc := range cases {
		got := menu.ActionsFor(&model.Appointment{Status: tc.status})
		assert.Equal(t, tc.want, got, "status %s", tc.status)
	}
}

func TestOpenResolveDiscard(t *testing.T) {
	menu, _ := newTestMenu(t)
	slot := model.SlotRef{StaffID: uuid.New(), Date: "2026-09-01", Time: "10:30"}

	pac := menu.Open(slot, model.ActionNewAppointment)
	require.NotEqual(t, uuid.Nil, pac.ID)

	resolved, err := menu.Resolve(pac.ID)
	require.NoError(t, err)
	assert.Equal(t, slot, resolved.Slot, "the captured slot survives independent of any popover")
	assert.Equal(t, model.ActionNewAppointment, resolved.Action)

	menu.Discard(pac.ID)
	_, err = menu.Resolve(pac.ID)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}

func TestSubmitPersonalTask(t *testing.T) {
	menu, store := newTestMenu(t)
	staff := uuid.New()

	// The slot already holds a customer booking; the personal task still lands.
	booked := testAppointment(staff)
	booked.Time = "10:30"
	_, err := store.Insert(context.Background(), booked)
	require.NoError(t, err)

	pac := menu.Open(model.SlotRef{StaffID: staff, Date: booked.Date, Time: "10:30"}, model.ActionPersonalTask)
	task, warning, err := menu.SubmitPersonalTask(context.Background(), pac.ID, "restock color bar")
	require.NoError(t, err)
	assert.Nil(t, warning)
	assert.Equal(t, model.AppointmentStatusPersonalTask, task.Status)
	assert.Equal(t, "10:30", task.Time)
	assert.Equal(t, "restock color bar", task.Notes)

	// Submission consumes the context.
	_, err = menu.Resolve(pac.ID)
	assert.Error(t, err)
}

func TestSubmitWaitlist(t *testing.T) {
	menu, _ := newTestMenu(t)
	staff := uuid.New()
	pac := menu.Open(model.SlotRef{StaffID: staff, Date: "2026-09-01", Time: "14:00"}, model.ActionAddToWaitlist)

	entry, err := menu.SubmitWaitlist(context.Background(), pac.ID, "Noor Haddad", "(646) 555-0133", "balayage")
	require.NoError(t, err)
	assert.Equal(t, staff, entry.StaffID)
	assert.Equal(t, "14:00", entry.Time)

	listed := menu.Waitlist(staff, "2026-09-01")
	require.Len(t, listed, 1)
	assert.Equal(t, entry.ID, listed[0].ID)
}

func TestSubmitWaitlistRequiresName(t *testing.T) {
	menu, _ := newTestMenu(t)
	pac := menu.Open(model.SlotRef{StaffID: uuid.New(), Date: "2026-09-01", Time: "14:00"}, model.ActionAddToWaitlist)

	_, err := menu.SubmitWaitlist(context.Background(), pac.ID, "", "", "balayage")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.ErrValidation))

	// A failed submission keeps the context alive for a retry.
	_, err = menu.Resolve(pac.ID)
	assert.NoError(t, err)
}

func TestSubmitShiftChange(t *testing.T) {
	menu, _ := newTestMenu(t)
	staff := uuid.New()
	pac := menu.Open(model.SlotRef{StaffID: staff, Date: "2026-09-01", Time: "09:00"}, model.ActionEditWorkingHours)

	change, err := menu.SubmitShiftChange(context.Background(), pac.ID, "09:00", "17:30")
	require.NoError(t, err)
	assert.Equal(t, "09:00", change.StartTime)
	assert.Equal(t, "17:30", change.EndTime)

	listed := menu.ShiftChanges(staff, "2026-09-01")
	assert.Len(t, listed, 1)
}

func TestSubmitShiftChangeValidatesBounds(t *testing.T) {
	menu, _ := newTestMenu(t)
	open := func() uuid.UUID {
		return menu.Open(model.SlotRef{StaffID: uuid.New(), Date: "2026-09-01", Time: "09:00"}, model.ActionEditWorkingHours).ID
	}

	_, err := menu.SubmitShiftChange(context.Background(), open(), "07:00", "17:00")
	assert.Error(t, err, "start before grid open")

	_, err = menu.SubmitShiftChange(context.Background(), open(), "10:03", "17:00")
	assert.Error(t, err, "off-boundary start")

	_, err = menu.SubmitShiftChange(context.Background(), open(), "17:00", "09:00")
	assert.Error(t, err, "inverted range")
}

func TestResolveUnknownContext(t *testing.T) {
	menu, _ := newTestMenu(t)
	_, err := menu.Resolve(uuid.New())
	assert.True(t, apperrors.IsCode(err, apperrors.ErrNotFound))
}
