package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"salonbook/internal/domain"
)

type SalonRepository struct {
	db *gorm.DB
}

func NewSalonRepository(db *gorm.DB) *SalonRepository {
	return &SalonRepository{db: db}
}

func (r *SalonRepository) Create(ctx context.Context, s *domain.Salon) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *SalonRepository) GetByID(ctx context.Context, id int64) (*domain.Salon, error) {
	var s domain.Salon
	err := r.db.WithContext(ctx).Where("deleted_at IS NULL").First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *SalonRepository) List(ctx context.Context) ([]domain.Salon, error) {
	var out []domain.Salon
	err := r.db.WithContext(ctx).Where("deleted_at IS NULL").Order("id").Find(&out).Error
	return out, err
}

func (r *SalonRepository) Update(ctx context.Context, s *domain.Salon) error {
	return r.db.WithContext(ctx).Save(s).Error
}
