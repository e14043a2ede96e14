package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"salonbook/internal/domain"
)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// Create inserts a new appointment. A violation of idx_no_double_booking is
// the storage layer's last line of defense against a double booking and is
// surfaced as ErrDuplicate, never as a generic error.
func (r *AppointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	if err := r.db.WithContext(ctx).Create(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *AppointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var a domain.Appointment
	err := r.db.WithContext(ctx).First(&a, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// ListForDay returns the occupying appointments of one staff member on one
// date, ordered by start time. This is the read the overlap checker runs on.
func (r *AppointmentRepository) ListForDay(ctx context.Context, staffID int64, date time.Time) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("staff_id = ? AND date = ? AND status IN ?", staffID, date, domain.OccupyingStatuses).
		Order("start_time").
		Find(&out).Error
	return out, err
}

func (r *AppointmentRepository) ListBySalonDate(ctx context.Context, salonID int64, date time.Time) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("salon_id = ? AND date = ?", salonID, date).
		Order("start_time").
		Find(&out).Error
	return out, err
}

// Update saves a rescheduled appointment. The unique index applies here
// exactly as on create.
func (r *AppointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	if err := r.db.WithContext(ctx).Save(a).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *AppointmentRepository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error {
	updates := map[string]any{
		"status":     string(status),
		"updated_at": time.Now().UTC(),
	}
	if status == domain.AppointmentCancelled {
		now := time.Now().UTC()
		updates["cancellation_reason"] = reason
		updates["cancelled_at"] = &now
	}
	return r.db.WithContext(ctx).
		Model(&domain.Appointment{}).
		Where("id = ?", id).
		Updates(updates).Error
}

// ListOccupying returns every appointment that currently blocks time, for
// the offline end-time consistency pass.
func (r *AppointmentRepository) ListOccupying(ctx context.Context) ([]domain.Appointment, error) {
	var out []domain.Appointment
	err := r.db.WithContext(ctx).
		Where("status IN ?", domain.OccupyingStatuses).
		Order("id").
		Find(&out).Error
	return out, err
}

// isUniqueViolation recognizes unique-constraint errors from both backends:
// gorm's translated error, the raw postgres 23505, and sqlite's message.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
