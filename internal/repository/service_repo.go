package repository

import (
	"context"

	"gorm.io/gorm"

	"salonbook/internal/domain"
)

type ServiceRepository struct {
	db *gorm.DB
}

func NewServiceRepository(db *gorm.DB) *ServiceRepository {
	return &ServiceRepository{db: db}
}

func (r *ServiceRepository) Create(ctx context.Context, s *domain.Service) error {
	return r.db.WithContext(ctx).Create(s).Error
}

// GetBySalonAndIDs loads the requested active services of one salon. Callers
// detect unknown or inactive identifiers by comparing the result against the
// requested set; the repository does not error on partial matches.
func (r *ServiceRepository) GetBySalonAndIDs(ctx context.Context, salonID int64, ids []int64) ([]domain.Service, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var out []domain.Service
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND id IN ? AND active = ? AND deleted_at IS NULL", salonID, ids, true).
		Find(&out).Error
	return out, err
}

func (r *ServiceRepository) ListBySalon(ctx context.Context, salonID int64) ([]domain.Service, error) {
	var out []domain.Service
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND deleted_at IS NULL", salonID).
		Order("id").
		Find(&out).Error
	return out, err
}
