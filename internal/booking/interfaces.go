package booking

import (
	"context"
	"time"

	"salonbook/internal/domain"
)

type SalonRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Salon, error)
}

type StaffRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Staff, error)
}

type ServiceRepository interface {
	GetBySalonAndIDs(ctx context.Context, salonID int64, ids []int64) ([]domain.Service, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) error
	GetByID(ctx context.Context, id int64) (*domain.Appointment, error)
	ListForDay(ctx context.Context, staffID int64, date time.Time) ([]domain.Appointment, error)
	ListBySalonDate(ctx context.Context, salonID int64, date time.Time) ([]domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, reason string) error
	ListOccupying(ctx context.Context) ([]domain.Appointment, error)
}

type ExclusionRepository interface {
	ListApplicable(ctx context.Context, salonID, staffID int64) ([]domain.Exclusion, error)
}

// EventSink receives appointment lifecycle events for real-time fan-out.
// Implementations must not block.
type EventSink interface {
	AppointmentBooked(a *domain.Appointment)
	AppointmentRescheduled(a *domain.Appointment)
	AppointmentCancelled(a *domain.Appointment)
}
