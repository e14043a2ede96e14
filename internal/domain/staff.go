package domain

import "time"

type StaffRole string

const (
	RoleClient StaffRole = "client"
	RoleStaff  StaffRole = "staff"
	RoleOwner  StaffRole = "owner"
)

type Staff struct {
	ID      int64  `json:"id" gorm:"primaryKey"`
	SalonID int64  `json:"salon_id" gorm:"index" validate:"required"`
	Name    string `json:"name" validate:"required"`
	Active  bool   `json:"active" gorm:"default:true"`

	// Login identity for staff-initiated bookings.
	Email        string    `json:"email,omitempty" gorm:"uniqueIndex"`
	PasswordHash string    `json:"-"`
	Role         StaffRole `json:"role" gorm:"default:staff"`

	Hours WeekSchedule `json:"hours" gorm:"serializer:json"`

	// ServiceIDs is the capability set: services this staff member can perform.
	ServiceIDs []int64 `json:"service_ids" gorm:"serializer:json"`

	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"-"`
}

func (Staff) TableName() string { return "staff" }

func (s *Staff) CanPerform(serviceID int64) bool {
	for _, id := range s.ServiceIDs {
		if id == serviceID {
			return true
		}
	}
	return false
}
