package domain

import "time"

type AppointmentStatus string

const (
	AppointmentPending    AppointmentStatus = "pending"
	AppointmentConfirmed  AppointmentStatus = "confirmed"
	AppointmentInProgress AppointmentStatus = "in_progress"
	AppointmentCompleted  AppointmentStatus = "completed"
	AppointmentCancelled  AppointmentStatus = "cancelled"
	AppointmentNoShow     AppointmentStatus = "no_show"
)

// OccupyingStatuses are the statuses that block the staff member's time.
// Cancelled, completed and no-show appointments never conflict with new
// bookings.
var OccupyingStatuses = []AppointmentStatus{
	AppointmentPending,
	AppointmentConfirmed,
	AppointmentInProgress,
}

func (s AppointmentStatus) Occupies() bool {
	for _, o := range OccupyingStatuses {
		if s == o {
			return true
		}
	}
	return false
}

var legalTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentPending:    {AppointmentConfirmed, AppointmentCancelled},
	AppointmentConfirmed:  {AppointmentInProgress, AppointmentCompleted, AppointmentCancelled, AppointmentNoShow},
	AppointmentInProgress: {AppointmentCompleted, AppointmentCancelled},
}

// CanTransition reports whether from -> to is a legal status change.
// Completed, cancelled and no-show are terminal.
func CanTransition(from, to AppointmentStatus) bool {
	for _, t := range legalTransitions[from] {
		if t == to {
			return true
		}
	}
	return false
}

type Appointment struct {
	ID      int64 `json:"id" gorm:"primaryKey"`
	SalonID int64 `json:"salon_id" gorm:"index"`
	StaffID int64 `json:"staff_id" gorm:"index"`

	// ServiceIDs preserves the requested order of the service chain.
	// The appointment's duration was summed from these at write time.
	ServiceIDs []int64 `json:"service_ids" gorm:"serializer:json"`

	// Date is the calendar date, normalized to midnight UTC.
	Date time.Time `json:"date" gorm:"index"`

	// StartTime and EndTime are minute-precision clock times ("HH:MM").
	// EndTime is computed as start + total service duration at create and
	// reschedule time, never derived lazily.
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`

	Status AppointmentStatus `json:"status"`

	ClientName  string `json:"client_name"`
	ClientPhone string `json:"client_phone,omitempty"`
	ClientEmail string `json:"client_email,omitempty"`
	Notes       string `json:"notes,omitempty" gorm:"type:text"`

	CancellationReason string     `json:"cancellation_reason,omitempty" gorm:"type:text"`
	CancelledAt        *time.Time `json:"cancelled_at,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Appointment) TableName() string { return "appointments" }
