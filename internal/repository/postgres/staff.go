package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/salonhq/scheduler-api/internal/model"
	"github.com/salonhq/scheduler-api/internal/repository"
)

type staffRepository struct {
	*BaseRepository
}

func NewStaffRepository(base BaseRepository) repository.StaffRepository {
	return &staffRepository{
		BaseRepository: &base,
	}
}

func (r *staffRepository) List(ctx context.Context) ([]*model.StaffMember, error) {
	query := `SELECT * FROM staff_members ORDER BY created_at`
	var staff []*model.StaffMember
	if err := r.GetDB().SelectContext(ctx, &staff, query); err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *staffRepository) Get(ctx context.Context, id uuid.UUID) (*model.StaffMember, error) {
	query := `SELECT * FROM staff_members WHERE id = $1`
	var staff model.StaffMember
	if err := r.GetDB().GetContext(ctx, &staff, query, id); err != nil {
		return nil, fmt.Errorf("failed to get staff member: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) GetByEmail(ctx context.Context, email string) (*model.StaffMember, error) {
	query := `SELECT * FROM staff_members WHERE email = $1`
	var staff model.StaffMember
	if err := r.GetDB().GetContext(ctx, &staff, query, email); err != nil {
		return nil, fmt.Errorf("failed to get staff member by email: %w", err)
	}
	return &staff, nil
}

func (r *staffRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status model.StaffStatus) error {
	query := `UPDATE staff_members SET status = $1, updated_at = $2 WHERE id = $3`
	res, err := r.GetDB().ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to update staff status: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return fmt.Errorf("staff member not found")
	}
	return nil
}
