package leave

type CreateLeaveRequest struct {
	LeaveType string `json:"leaveType" binding:"required,oneof=ANNUAL SICK UNPAID"`
	StartDate string `json:"startDate" binding:"required,isodate"`
	EndDate   string `json:"endDate" binding:"required,isodate"`
	Reason    string `json:"reason" binding:"max=1000"`
}

type UpdateLeaveRequest struct {
	Status          string `json:"status" binding:"required,oneof=APPROVED REJECTED"`
	RejectionReason string `json:"rejectionReason"`
}

type ListQuery struct {
	UserID   string `form:"user_id"`
	Status   string `form:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED"`
	Page     int    `form:"page"`
	PageSize int    `form:"page_size"`
}

type LeaveResponse struct {
	ID              string `json:"id"`
	UserID          string `json:"userId"`
	UserName        string `json:"userName,omitempty"`
	LeaveType       string `json:"leaveType"`
	StartDate       string `json:"startDate"`
	EndDate         string `json:"endDate"`
	TotalDays       int    `json:"totalDays"`
	Reason          string `json:"reason,omitempty"`
	Status          string `json:"status"`
	RejectionReason string `json:"rejectionReason,omitempty"`
}
