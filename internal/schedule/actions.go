package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/salonhq/scheduler-api/internal/model"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
)

// pendingContextTTL bounds how long a chosen slot action stays addressable
// after its originating popover is gone.
const pendingContextTTL = 10 * time.Minute

// PendingActionContext snapshots the targeted slot the moment an action is
// chosen, so a slow or multi-step submission flow cannot lose its target when
// transient UI state is torn down.
type PendingActionContext struct {
	ID     uuid.UUID        `json:"id"`
	Slot   model.SlotRef    `json:"slot"`
	Action model.SlotAction `json:"action"`
	Opened time.Time        `json:"opened"`
}

// Menu produces the per-slot action set and dispatches the flows behind each
// action.
type Menu struct {
	store   *Store
	machine *Machine
	pending *cache.Cache

	mu       sync.Mutex
	waitlist []*model.WaitlistEntry
	shifts   []*model.ShiftChange
}

func NewMenu(store *Store, machine *Machine) *Menu {
	return &Menu{
		store:   store,
		machine: machine,
		pending: cache.New(pendingContextTTL, pendingContextTTL),
	}
}

// ActionsFor returns the applicable actions for a grid cell. Empty cells get
// the booking/block flows; occupied cells get the appointment's own legal
// lifecycle steps plus delete.
func (m *Menu) ActionsFor(apt *model.Appointment) []model.SlotAction {
	if apt == nil {
		return []model.SlotAction{
			model.ActionNewAppointment,
			model.ActionNewMultiple,
			model.ActionAddToWaitlist,
			model.ActionPersonalTask,
			model.ActionEditWorkingHours,
		}
	}

	var actions []model.SlotAction
	switch apt.Status {
	case model.AppointmentStatusRequested:
		actions = append(actions, model.ActionAccept)
	case model.AppointmentStatusAccepted:
		actions = append(actions, model.ActionReadyToStart)
	case model.AppointmentStatusReadyToStart:
		actions = append(actions, model.ActionStart)
	case model.AppointmentStatusInProgress:
		actions = append(actions, model.ActionComplete, model.ActionCompleteWithHandoff)
	}
	if apt.Status != model.AppointmentStatusPersonalTask && !apt.Status.Terminal() {
		actions = append(actions, model.ActionMarkNoShow)
	}
	return append(actions, model.ActionDelete)
}

// Open captures the slot identity for a chosen action and returns the
// short-lived context the submission flow must present.
func (m *Menu) Open(slot model.SlotRef, action model.SlotAction) *PendingActionContext {
	pac := &PendingActionContext{
		ID:     uuid.New(),
		Slot:   slot,
		Action: action,
		Opened: time.Now(),
	}
	m.pending.SetDefault(pac.ID.String(), pac)
	return pac
}

// Resolve returns the captured context for a submission.
func (m *Menu) Resolve(contextID uuid.UUID) (*PendingActionContext, error) {
	v, ok := m.pending.Get(contextID.String())
	if !ok {
		return nil, apperrors.NewNotFound("pending action", nil)
	}
	return v.(*PendingActionContext), nil
}

// Discard drops a pending context with no writes; closing the flow before
// submission routes here.
func (m *Menu) Discard(contextID uuid.UUID) {
	m.pending.Delete(contextID.String())
}

// SubmitPersonalTask books a non-customer block into the captured slot.
// Personal tasks bypass conflict checks and never transition.
func (m *Menu) SubmitPersonalTask(ctx context.Context, contextID uuid.UUID, label string) (*model.Appointment, *apperrors.PersistenceWarning, error) {
	pac, err := m.Resolve(contextID)
	if err != nil {
		return nil, nil, err
	}

	task := &model.Appointment{
		ServiceID: "personal-task",
		Date:      pac.Slot.Date,
		Time:      pac.Slot.Time,
		Duration:  SlotStepMinutes,
		StaffID:   pac.Slot.StaffID,
		Status:    model.AppointmentStatusPersonalTask,
		Notes:     label,
	}
	warning, err := m.store.Insert(ctx, task)
	if err != nil {
		return nil, nil, err
	}
	m.Discard(contextID)
	return task, warning, nil
}

// SubmitWaitlist records a customer waiting for an opening near the captured
// slot.
func (m *Menu) SubmitWaitlist(ctx context.Context, contextID uuid.UUID, customerName, phone, serviceID string) (*model.WaitlistEntry, error) {
	pac, err := m.Resolve(contextID)
	if err != nil {
		return nil, err
	}
	if customerName == "" {
		return nil, apperrors.NewValidation("customer name is required", "customer_name")
	}

	entry := &model.WaitlistEntry{
		ID:           uuid.New(),
		CustomerName: customerName,
		Phone:        phone,
		ServiceID:    serviceID,
		StaffID:      pac.Slot.StaffID,
		Date:         pac.Slot.Date,
		Time:         pac.Slot.Time,
		CreatedAt:    time.Now(),
	}

	m.mu.Lock()
	m.waitlist = append(m.waitlist, entry)
	m.mu.Unlock()

	m.Discard(contextID)
	return entry, nil
}

// SubmitShiftChange records a working-hours edit for the captured staff/date.
func (m *Menu) SubmitShiftChange(ctx context.Context, contextID uuid.UUID, startTime, endTime string) (*model.ShiftChange, error) {
	pac, err := m.Resolve(contextID)
	if err != nil {
		return nil, err
	}
	if _, err := ParseSlotKey(startTime); err != nil {
		return nil, apperrors.NewValidation("start time is not a valid slot boundary", "start_time")
	}
	if _, err := ParseSlotKey(endTime); err != nil {
		return nil, apperrors.NewValidation("end time is not a valid slot boundary", "end_time")
	}
	if startTime >= endTime {
		return nil, apperrors.NewValidation("shift end must come after its start", "start_time", "end_time")
	}

	change := &model.ShiftChange{
		ID:        uuid.New(),
		StaffID:   pac.Slot.StaffID,
		Date:      pac.Slot.Date,
		StartTime: startTime,
		EndTime:   endTime,
		CreatedAt: time.Now(),
	}

	m.mu.Lock()
	m.shifts = append(m.shifts, change)
	m.mu.Unlock()

	m.Discard(contextID)
	return change, nil
}

// Waitlist returns entries for a staff/date, newest last.
func (m *Menu) Waitlist(staffID uuid.UUID, date string) []*model.WaitlistEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.WaitlistEntry
	for _, e := range m.waitlist {
		if (staffID == uuid.Nil || e.StaffID == staffID) && (date == "" || e.Date == date) {
			out = append(out, e)
		}
	}
	return out
}

// ShiftChanges returns recorded working-hours edits for a staff/date.
func (m *Menu) ShiftChanges(staffID uuid.UUID, date string) []*model.ShiftChange {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*model.ShiftChange
	for _, s := range m.shifts {
		if (staffID == uuid.Nil || s.StaffID == staffID) && (date == "" || s.Date == date) {
			out = append(out, s)
		}
	}
	return out
}
