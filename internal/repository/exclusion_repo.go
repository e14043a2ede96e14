package repository

import (
	"context"

	"gorm.io/gorm"

	"salonbook/internal/domain"
)

type ExclusionRepository struct {
	db *gorm.DB
}

func NewExclusionRepository(db *gorm.DB) *ExclusionRepository {
	return &ExclusionRepository{db: db}
}

func (r *ExclusionRepository) Create(ctx context.Context, e *domain.Exclusion) error {
	return r.db.WithContext(ctx).Create(e).Error
}

// ListApplicable returns the active exclusions that can affect one staff
// member: the staff member's own rows plus the salon-wide ones (staff_id
// NULL). Date/weekday resolution happens in the schedule package.
func (r *ExclusionRepository) ListApplicable(ctx context.Context, salonID, staffID int64) ([]domain.Exclusion, error) {
	var out []domain.Exclusion
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND active = ? AND (staff_id IS NULL OR staff_id = ?)", salonID, true, staffID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *ExclusionRepository) ListBySalon(ctx context.Context, salonID int64) ([]domain.Exclusion, error) {
	var out []domain.Exclusion
	err := r.db.WithContext(ctx).
		Where("salon_id = ?", salonID).
		Order("id").
		Find(&out).Error
	return out, err
}
