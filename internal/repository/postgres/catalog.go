package postgres

import (
	"context"
	"fmt"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/repository"
)

type catalogRepository struct {
	*BaseRepository
}

func NewCatalogRepository(base BaseRepository) repository.CatalogRepository {
	return &catalogRepository{
		BaseRepository: &base,
	}
}

func (r *catalogRepository) ListServices(ctx context.Context) ([]*model.Service, error) {
	query := `SELECT * FROM services WHERE status = 'active' ORDER BY name`
	var services []*model.Service
	if err := r.GetDB().SelectContext(ctx, &services, query); err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	return services, nil
}

func (r *catalogRepository) GetService(ctx context.Context, id string) (*model.Service, error) {
	query := `SELECT * FROM services WHERE id = $1`
	var service model.Service
	if err := r.GetDB().GetContext(ctx, &service, query, id); err != nil {
		return nil, fmt.Errorf("failed to get service: %w", err)
	}
	return &service, nil
}
