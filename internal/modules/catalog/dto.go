package catalog

import "salonbook/internal/domain"

type CreateSalonRequest struct {
	Name                   string              `json:"name" binding:"required"`
	Address                string              `json:"address"`
	City                   string              `json:"city"`
	Phone                  string              `json:"phone"`
	AutoConfirm            bool                `json:"auto_confirm"`
	SlotGranularityMinutes int                 `json:"slot_granularity_minutes"`
	Hours                  domain.WeekSchedule `json:"hours"`
}

type CreateStaffRequest struct {
	Name       string              `json:"name" binding:"required"`
	Email      string              `json:"email"`
	Password   string              `json:"password"`
	Role       string              `json:"role"`
	Hours      domain.WeekSchedule `json:"hours"`
	ServiceIDs []int64             `json:"service_ids"`
}

type CreateServiceRequest struct {
	Name            string   `json:"name" binding:"required"`
	DurationMinutes int      `json:"duration_minutes" binding:"gte=0"`
	Price           float64  `json:"price" binding:"gte=0"`
	DiscountPrice   *float64 `json:"discount_price"`
}

type CreateExclusionRequest struct {
	StaffID   *int64 `json:"staff_id"`
	Type      string `json:"type" binding:"required,oneof=break vacation"`
	Kind      string `json:"kind" binding:"required,oneof=one_off recurring"`
	StartDate string `json:"start_date"` // "2006-01-02"
	EndDate   string `json:"end_date"`
	Weekdays  []int  `json:"weekdays"` // 0 = Sunday
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Label     string `json:"label"`
}
