package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"salonbook/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	var s domain.Staff
	err := r.db.WithContext(ctx).Where("deleted_at IS NULL").First(&s, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) GetByEmail(ctx context.Context, email string) (*domain.Staff, error) {
	var s domain.Staff
	err := r.db.WithContext(ctx).
		Where("email = ? AND deleted_at IS NULL", email).
		First(&s).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) ListBySalon(ctx context.Context, salonID int64) ([]domain.Staff, error) {
	var out []domain.Staff
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND deleted_at IS NULL", salonID).
		Order("id").
		Find(&out).Error
	return out, err
}

func (r *StaffRepository) Update(ctx context.Context, s *domain.Staff) error {
	return r.db.WithContext(ctx).Save(s).Error
}
