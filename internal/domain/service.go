package domain

import "time"

type Service struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	SalonID int64  `json:"salon_id" gorm:"index" validate:"required"`
	Name    string `json:"name" validate:"required"`

	// DurationMinutes may be 0 for add-on services bundled with a primary
	// service. A standalone booking must still reserve time (see booking).
	DurationMinutes int `json:"duration_minutes" validate:"gte=0"`

	Price         float64  `json:"price" validate:"gte=0"`
	DiscountPrice *float64 `json:"discount_price,omitempty"`
	Active        bool     `json:"active" gorm:"default:true"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

func (Service) TableName() string { return "services" }
