package schedule

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/logger"
	"github.com/salonhq/scheduler-api/pkg/metrics"
)

// Snapshotter is the external persistence collaborator. Last-write-wins
// snapshot semantics; the store never reads back after startup.
type Snapshotter interface {
	Save(ctx context.Context, appointments []*model.Appointment) error
	Load(ctx context.Context) ([]*model.Appointment, error)
}

// Store is the canonical in-memory appointment collection. All mutation goes
// through conflict and lifecycle validation before committing; a failed
// validation leaves the collection untouched.
type Store struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]*model.Appointment
	order   []uuid.UUID
	snaps   Snapshotter
	logger  *logger.Logger
	metrics *metrics.Metrics
}

func NewStore(ctx context.Context, snaps Snapshotter, log *logger.Logger, m *metrics.Metrics) *Store {
	s := &Store{
		byID:    make(map[uuid.UUID]*model.Appointment),
		snaps:   snaps,
		logger:  log,
		metrics: m,
	}

	loaded, err := snaps.Load(ctx)
	if err != nil {
		log.Warn("loading appointment snapshot failed, seeding demo data", "error", err.Error())
		loaded = seedAppointments()
	}
	for _, a := range loaded {
		s.byID[a.ID] = a
		s.order = append(s.order, a.ID)
	}
	if m != nil {
		m.AppointmentsLive.Set(float64(len(s.order)))
	}
	return s
}

// List returns the appointments matching the filter in stable insertion
// order. Slice and appointments are both copies, so callers may read and
// serialize them without holding the store's lock.
func (s *Store) List(filter model.AppointmentFilter) []*model.Appointment {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return copyAll(s.listLocked(filter))
}

// listLocked returns the store's own entries. Internal use only; anything
// escaping the lock must go through copyAll.
func (s *Store) listLocked(filter model.AppointmentFilter) []*model.Appointment {
	var out []*model.Appointment
	for _, id := range s.order {
		if a := s.byID[id]; a != nil && filter.Matches(a) {
			out = append(out, a)
		}
	}
	return out
}

// Get returns a copy of one appointment by id.
func (s *Store) Get(id uuid.UUID) (*model.Appointment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("appointment", nil)
	}
	cp := *a
	return &cp, nil
}

// Insert validates the slot and commits the appointment. A returned
// PersistenceWarning means the in-memory commit stands but the snapshot save
// failed.
func (s *Store) Insert(ctx context.Context, a *model.Appointment) (*apperrors.PersistenceWarning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if a.Status == "" {
		a.Status = model.AppointmentStatusRequested
	}
	if a.Status != model.AppointmentStatusPersonalTask && !ValidStatus(a.Status) {
		return nil, apperrors.NewBadRequest("unknown appointment status", nil)
	}
	if _, err := ParseSlotKey(a.Time); err != nil {
		return nil, apperrors.NewValidation("time is not a valid slot boundary", "time")
	}

	if a.Blocking() && hasBlocking(s.listLocked(model.AppointmentFilter{StaffID: a.StaffID, Date: a.Date, Time: a.Time}), uuid.Nil) {
		if s.metrics != nil {
			s.metrics.ConflictsTotal.Inc()
		}
		return nil, apperrors.NewConflict("that time slot is already booked for this staff member")
	}

	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	now := time.Now()
	a.CreatedAt = now
	a.UpdatedAt = now
	a.HasNote = a.Notes != ""

	// The store keeps its own copy; later updates never reach through a
	// pointer the caller may still be reading.
	cp := *a
	s.byID[a.ID] = &cp
	s.order = append(s.order, a.ID)
	if s.metrics != nil {
		s.metrics.BookingsTotal.Inc()
		s.metrics.AppointmentsLive.Set(float64(len(s.order)))
	}

	return s.snapshotLocked(ctx, "insert"), nil
}

// Update applies a patch after re-validating slot conflicts and lifecycle
// legality. Nothing is mutated on a failed validation.
func (s *Store) Update(ctx context.Context, id uuid.UUID, patch model.AppointmentPatch) (*apperrors.PersistenceWarning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NewNotFound("appointment", nil)
	}

	if patch.Status != nil && *patch.Status != a.Status {
		if err := CheckTransition(a.Status, *patch.Status); err != nil {
			return nil, err
		}
	}

	newStaff := a.StaffID
	newDate := a.Date
	newTime := a.Time
	if patch.StaffID != nil {
		newStaff = *patch.StaffID
	}
	if patch.Date != nil {
		newDate = *patch.Date
	}
	if patch.Time != nil {
		newTime = *patch.Time
		if _, err := ParseSlotKey(newTime); err != nil {
			return nil, apperrors.NewValidation("time is not a valid slot boundary", "time")
		}
	}

	slotChanged := newStaff != a.StaffID || newDate != a.Date || newTime != a.Time
	if slotChanged && a.Blocking() {
		occupied := hasBlocking(s.listLocked(model.AppointmentFilter{StaffID: newStaff, Date: newDate, Time: newTime}), id)
		if occupied {
			if s.metrics != nil {
				s.metrics.ConflictsTotal.Inc()
			}
			return nil, apperrors.NewConflict("the target slot is already booked")
		}
	}

	a.StaffID = newStaff
	a.Date = newDate
	a.Time = newTime
	if patch.Status != nil {
		a.Status = *patch.Status
	}
	if patch.Notes != nil {
		a.Notes = *patch.Notes
		a.HasNote = a.Notes != ""
	}
	if patch.Amount != nil {
		a.Amount = *patch.Amount
	}
	if patch.DepositPaid != nil {
		a.DepositPaid = *patch.DepositPaid
	}
	a.UpdatedAt = time.Now()

	return s.snapshotLocked(ctx, "update"), nil
}

// Remove deletes an appointment outright. Deletion is irreversible and legal
// from any status.
func (s *Store) Remove(ctx context.Context, id uuid.UUID) (*apperrors.PersistenceWarning, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return nil, apperrors.NewNotFound("appointment", nil)
	}
	delete(s.byID, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.metrics != nil {
		s.metrics.AppointmentsLive.Set(float64(len(s.order)))
	}

	return s.snapshotLocked(ctx, "remove"), nil
}

// snapshotLocked serializes the full collection to the persistence
// collaborator. Failures degrade to a warning; the in-memory state is already
// committed and is never rolled back.
func (s *Store) snapshotLocked(ctx context.Context, op string) *apperrors.PersistenceWarning {
	all := copyAll(s.listLocked(model.AppointmentFilter{}))

	start := time.Now()
	err := s.snaps.Save(ctx, all)
	if s.metrics != nil {
		s.metrics.SnapshotSaves.Inc()
		s.metrics.SnapshotLatency.Observe(time.Since(start).Seconds())
	}
	if err != nil {
		if s.metrics != nil {
			s.metrics.SnapshotSaveFailures.Inc()
		}
		s.logger.Error(err, "appointment snapshot save failed", "op", op)
		return &apperrors.PersistenceWarning{Op: op, Err: err}
	}
	return nil
}

func copyAll(appts []*model.Appointment) []*model.Appointment {
	if appts == nil {
		return nil
	}
	out := make([]*model.Appointment, len(appts))
	for i, a := range appts {
		cp := *a
		out[i] = &cp
	}
	return out
}

// seedAppointments provides the demonstration dataset used when no snapshot
// can be loaded at startup.
func seedAppointments() []*model.Appointment {
	today := time.Now().Format("2006-01-02")
	demoStaff := uuid.MustParse("6f1f64a2-4f0e-4c7e-9b3a-2a1d8c9e0b11")
	return []*model.Appointment{
		{
			ID:        uuid.New(),
			ServiceID: "classic-manicure",
			Date:      today,
			Time:      "10:00",
			Duration:  45,
			StaffID:   demoStaff,
			Status:    model.AppointmentStatusAccepted,
			FirstName: "Dana",
			LastName:  "Reyes",
			Phone:     "(415) 555-0142",
			Amount:    38,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
		{
			ID:        uuid.New(),
			ServiceID: "balayage",
			Date:      today,
			Time:      "13:30",
			Duration:  120,
			StaffID:   demoStaff,
			Status:    model.AppointmentStatusRequested,
			FirstName: "Priya",
			LastName:  "Natarajan",
			Amount:    180,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		},
	}
}
