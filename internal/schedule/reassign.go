package schedule

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/metrics"
)

// Reassigner moves appointments between staff/time slots, either by explicit
// action or by a drag gesture. Drag is a single-pointer interaction: exactly
// one appointment may be in flight at a time, held as an explicit value here
// rather than ambient state.
type Reassigner struct {
	store    *Store
	resolver *ConflictResolver
	metrics  *metrics.Metrics

	mu       sync.Mutex
	inFlight uuid.UUID
}

func NewReassigner(store *Store, resolver *ConflictResolver, m *metrics.Metrics) *Reassigner {
	return &Reassigner{store: store, resolver: resolver, metrics: m}
}

// Move re-validates the destination slot excluding the appointment itself,
// then patches staff/date/time. On conflict nothing is mutated.
func (r *Reassigner) Move(ctx context.Context, id uuid.UUID, newStaffID uuid.UUID, newDate, newTime string) (*apperrors.PersistenceWarning, error) {
	apt, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	if newDate == "" {
		newDate = apt.Date
	}
	if _, err := ParseSlotKey(newTime); err != nil {
		return nil, apperrors.NewValidation("time is not a valid slot boundary", "time")
	}

	if apt.Blocking() && r.resolver.WouldConflict(newStaffID, newDate, newTime, id) {
		if r.metrics != nil {
			r.metrics.ReassignmentsTotal.WithLabelValues("conflict").Inc()
		}
		return nil, apperrors.NewConflict("the target slot is already booked")
	}

	warning, err := r.store.Update(ctx, id, model.AppointmentPatch{
		StaffID: &newStaffID,
		Date:    &newDate,
		Time:    &newTime,
	})
	if err != nil {
		if r.metrics != nil {
			r.metrics.ReassignmentsTotal.WithLabelValues("error").Inc()
		}
		return nil, err
	}
	if r.metrics != nil {
		r.metrics.ReassignmentsTotal.WithLabelValues("moved").Inc()
	}
	return warning, nil
}

// BeginDrag marks an appointment as in flight. A second concurrent drag is
// rejected rather than queued.
func (r *Reassigner) BeginDrag(id uuid.UUID) error {
	if _, err := r.store.Get(id); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.inFlight != uuid.Nil && r.inFlight != id {
		return apperrors.NewConflict("another appointment is already being moved")
	}
	r.inFlight = id
	return nil
}

// Drop completes the in-flight drag onto a target cell.
func (r *Reassigner) Drop(ctx context.Context, target model.SlotRef) (*apperrors.PersistenceWarning, error) {
	r.mu.Lock()
	id := r.inFlight
	r.inFlight = uuid.Nil
	r.mu.Unlock()

	if id == uuid.Nil {
		return nil, apperrors.NewBadRequest("no appointment is being moved", nil)
	}
	return r.Move(ctx, id, target.StaffID, target.Date, target.Time)
}

// CancelDrag discards the in-flight state with no mutation. Dropping outside
// any valid target routes here.
func (r *Reassigner) CancelDrag() {
	r.mu.Lock()
	r.inFlight = uuid.Nil
	r.mu.Unlock()
}

// InFlight returns the id currently being dragged, if any.
func (r *Reassigner) InFlight() (uuid.UUID, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.inFlight, r.inFlight != uuid.Nil
}
