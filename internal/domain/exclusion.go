package domain

import "time"

type ExclusionType string

const (
	// ExclusionBreak removes a clock-time range (lunch, cleaning, ...).
	ExclusionBreak ExclusionType = "break"
	// ExclusionVacation removes whole calendar days.
	ExclusionVacation ExclusionType = "vacation"
)

type ExclusionKind string

const (
	// KindOneOff applies on a specific date or date range.
	KindOneOff ExclusionKind = "one_off"
	// KindRecurring applies on the listed weekdays, optionally bounded by
	// StartDate/EndDate.
	KindRecurring ExclusionKind = "recurring"
)

// Exclusion is a break or vacation, owned by a salon or by a single staff
// member. StaffID nil means salon-wide: it applies to every staff member of
// the salon.
type Exclusion struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	SalonID int64  `json:"salon_id" gorm:"index"`
	StaffID *int64 `json:"staff_id,omitempty" gorm:"index"`

	Type ExclusionType `json:"type"`
	Kind ExclusionKind `json:"kind"`

	// One-off: the covered date range (EndDate nil = single day).
	// Recurring: the optional bounding range the rule is valid within.
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`

	// Weekdays the rule fires on; recurring only.
	Weekdays []time.Weekday `json:"weekdays,omitempty" gorm:"serializer:json"`

	// Clock-time range for breaks ("HH:MM"). Empty for vacations, which
	// block the whole day.
	StartTime string `json:"start_time,omitempty"`
	EndTime   string `json:"end_time,omitempty"`

	Label  string `json:"label,omitempty"`
	Active bool   `json:"active" gorm:"default:true"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Exclusion) TableName() string { return "exclusions" }
