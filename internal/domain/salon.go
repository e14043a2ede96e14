package domain

import "time"

type Salon struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	Name    string `json:"name" validate:"required"`
	Address string `json:"address,omitempty"`
	City    string `json:"city,omitempty"`
	Phone   string `json:"phone,omitempty"`

	// AutoConfirm makes client-initiated bookings start life as confirmed
	// instead of pending.
	AutoConfirm bool `json:"auto_confirm"`

	// SlotGranularityMinutes is the step used when enumerating candidate
	// start times. It does not restrict explicitly requested start times.
	SlotGranularityMinutes int `json:"slot_granularity_minutes" gorm:"default:30"`

	Hours WeekSchedule `json:"hours" gorm:"serializer:json"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

func (Salon) TableName() string { return "salons" }
