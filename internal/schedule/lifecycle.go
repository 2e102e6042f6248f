package schedule

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
	apperrors "github.com/salonhq/scheduler-api/pkg/errors"
	"github.com/salonhq/scheduler-api/pkg/logger"
	"github.com/salonhq/scheduler-api/pkg/metrics"
)

// chain holds the forward lifecycle order. Only single forward steps are
// legal, except that any non-terminal state may be force-set to no_show.
var chain = map[model.AppointmentStatus]model.AppointmentStatus{
	model.AppointmentStatusRequested:    model.AppointmentStatusAccepted,
	model.AppointmentStatusAccepted:     model.AppointmentStatusReadyToStart,
	model.AppointmentStatusReadyToStart: model.AppointmentStatusInProgress,
	model.AppointmentStatusInProgress:   model.AppointmentStatusComplete,
}

// ValidStatus reports whether the status belongs to the lifecycle chain.
func ValidStatus(s model.AppointmentStatus) bool {
	switch s {
	case model.AppointmentStatusRequested, model.AppointmentStatusAccepted,
		model.AppointmentStatusReadyToStart, model.AppointmentStatusInProgress,
		model.AppointmentStatusComplete, model.AppointmentStatusNoShow:
		return true
	}
	return false
}

// CheckTransition rejects anything but the single legal forward step or the
// no-show exception. Personal tasks never transition.
func CheckTransition(from, to model.AppointmentStatus) error {
	if from == model.AppointmentStatusPersonalTask || to == model.AppointmentStatusPersonalTask {
		return apperrors.NewInvalidTransition(string(from), string(to))
	}
	if to == model.AppointmentStatusNoShow {
		if from.Terminal() {
			return apperrors.NewInvalidTransition(string(from), string(to))
		}
		return nil
	}
	if chain[from] != to {
		return apperrors.NewInvalidTransition(string(from), string(to))
	}
	return nil
}

// HandoffQueue is the external checkout collaborator. Fire and forget.
type HandoffQueue interface {
	Enqueue(ctx context.Context, h *model.CheckoutHandoff) error
}

// CatalogReader resolves service names and prices for handoff payloads.
type CatalogReader interface {
	GetService(ctx context.Context, id string) (*model.Service, error)
}

// Notifier surfaces transition results to the staff dashboard (toasts).
type Notifier interface {
	Notify(ctx context.Context, level, message string)
}

// Machine validates and applies appointment status transitions.
type Machine struct {
	store    *Store
	handoffs HandoffQueue
	catalog  CatalogReader
	notifier Notifier
	logger   *logger.Logger
	metrics  *metrics.Metrics
}

func NewMachine(store *Store, handoffs HandoffQueue, catalog CatalogReader, notifier Notifier, log *logger.Logger, m *metrics.Metrics) *Machine {
	return &Machine{
		store:    store,
		handoffs: handoffs,
		catalog:  catalog,
		notifier: notifier,
		logger:   log,
		metrics:  m,
	}
}

// Transition moves an appointment to the target status. withHandoff applies
// only to in_progress -> complete and ships the full payload to the checkout
// queue before marking complete. A persistence failure after the in-memory
// commit is returned as a warning, never rolled back: the status a staff
// member just set in front of a customer must not vanish.
func (m *Machine) Transition(ctx context.Context, id uuid.UUID, target model.AppointmentStatus, withHandoff bool) (*apperrors.PersistenceWarning, error) {
	apt, err := m.store.Get(id)
	if err != nil {
		return nil, err
	}

	if err := CheckTransition(apt.Status, target); err != nil {
		return nil, err
	}

	if withHandoff {
		if target != model.AppointmentStatusComplete {
			return nil, apperrors.NewBadRequest("handoff is only valid when completing an appointment", nil)
		}
		m.enqueueHandoff(ctx, apt)
	}

	warning, err := m.store.Update(ctx, id, model.AppointmentPatch{Status: &target})
	if err != nil {
		return nil, err
	}

	if m.metrics != nil {
		m.metrics.TransitionsTotal.WithLabelValues(string(target)).Inc()
	}
	if m.notifier != nil {
		m.notifier.Notify(ctx, "info", transitionMessage(apt, target))
	}
	return warning, nil
}

// enqueueHandoff ships the checkout payload. Failures are logged and
// surfaced as a notification but do not block the completion.
func (m *Machine) enqueueHandoff(ctx context.Context, apt *model.Appointment) {
	serviceName := apt.ServiceID
	price := apt.Amount
	if m.catalog != nil {
		if svc, err := m.catalog.GetService(ctx, apt.ServiceID); err == nil {
			serviceName = svc.Name
			if price == 0 {
				price = svc.Price
			}
		}
	}

	h := &model.CheckoutHandoff{
		AppointmentID: apt.ID,
		ServiceName:   serviceName,
		Price:         price,
		CustomerName:  apt.FirstName + " " + apt.LastName,
		CustomerPhone: apt.Phone,
		CustomerEmail: apt.Email,
		Date:          apt.Date,
		Time:          apt.Time,
		StaffID:       apt.StaffID,
		Notes:         apt.Notes,
		CompletedAt:   time.Now(),
	}

	if err := m.handoffs.Enqueue(ctx, h); err != nil {
		m.logger.Error(err, "checkout handoff enqueue failed", "appointment_id", apt.ID.String())
		if m.metrics != nil {
			m.metrics.HandoffsFailed.Inc()
		}
		if m.notifier != nil {
			m.notifier.Notify(ctx, "warning", "appointment completed, but sending it to checkout failed")
		}
		return
	}
	if m.metrics != nil {
		m.metrics.HandoffsEnqueued.Inc()
	}
}

func transitionMessage(apt *model.Appointment, target model.AppointmentStatus) string {
	name := apt.FirstName
	if apt.LastName != "" {
		name += " " + apt.LastName
	}
	switch target {
	case model.AppointmentStatusAccepted:
		return "Appointment for " + name + " accepted"
	case model.AppointmentStatusReadyToStart:
		return name + " is ready to start"
	case model.AppointmentStatusInProgress:
		return "Service for " + name + " started"
	case model.AppointmentStatusComplete:
		return "Service for " + name + " completed"
	case model.AppointmentStatusNoShow:
		return name + " marked as no-show"
	}
	return "Appointment updated"
}
