package schedule

import (
	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
)

// Lister is the read surface the resolver needs from the store.
type Lister interface {
	List(filter model.AppointmentFilter) []*model.Appointment
}

// ConflictResolver enforces the at-most-one-appointment-per-slot-per-staff
// invariant. It is evaluated before every store mutation in the same handler,
// so two conflicting writes can never both pass.
type ConflictResolver struct {
	source Lister
}

func NewConflictResolver(source Lister) *ConflictResolver {
	return &ConflictResolver{source: source}
}

// WouldConflict reports whether a blocking appointment already occupies the
// exact (staff, date, time) triple. excludeID skips one appointment, used when
// re-validating a move of the appointment itself.
func (r *ConflictResolver) WouldConflict(staffID uuid.UUID, date, slot string, excludeID uuid.UUID) bool {
	appts := r.source.List(model.AppointmentFilter{StaffID: staffID, Date: date, Time: slot})
	return hasBlocking(appts, excludeID)
}

func hasBlocking(appts []*model.Appointment, excludeID uuid.UUID) bool {
	for _, a := range appts {
		if excludeID != uuid.Nil && a.ID == excludeID {
			continue
		}
		if a.Blocking() {
			return true
		}
	}
	return false
}
