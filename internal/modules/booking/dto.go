package booking

type ChainItem struct {
	ServiceID int64 `json:"service_id" binding:"required"`
	StaffID   int64 `json:"staff_id" binding:"required"`
}

type BookRequest struct {
	StaffID   int64       `json:"staff_id" binding:"required"`
	Date      string      `json:"date" binding:"required"`
	StartTime string      `json:"start_time" binding:"required"`
	Chain     []ChainItem `json:"chain" binding:"required,min=1,dive"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone"`
	ClientEmail string `json:"client_email"`
	Notes       string `json:"notes"`
}

type RescheduleRequest struct {
	Date      *string     `json:"date"`
	StartTime *string     `json:"start_time"`
	StaffID   *int64      `json:"staff_id"`
	Chain     []ChainItem `json:"chain"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}
