package schedule

type ChainItem struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	StaffID   int64 `json:"staff_id" binding:"required"`
}

type SlotsRequest struct {
	Date  string      `json:"date" binding:"required"`
	Chain []ChainItem `json:"chain" binding:"required,min=1,dive"`
}

type DurationRequest struct {
	ServiceIDs []int64 `json:"service_ids" binding:"required,min=1"`
}
