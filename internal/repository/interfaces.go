package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
)

// StaffRepository is the roster collaborator. The scheduling core reads the
// roster and only ever writes status back; all other edits belong to the
// admin surface and are observed by re-fetch.
type StaffRepository interface {
	List(ctx context.Context) ([]*model.StaffMember, error)
	Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error)
	GetByEmail(ctx context.Context, email string) (*model.StaffMember, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.StaffStatus) error
}

// CatalogRepository is the read-only service catalog: the single source for
// per-service duration and price.
type CatalogRepository interface {
	ListServices(ctx context.Context) ([]*model.Service, error)
	GetService(ctx context.Context, id string) (*model.Service, error)
}
