package dto

// RevenueReportRequest parameters for the revenue report.
type RevenueReportRequest struct {
	Period    string `form:"period"`
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

// DateRangeRequest parameters for range-bounded reports.
type DateRangeRequest struct {
	StartDate string `form:"startDate" binding:"required"`
	EndDate   string `form:"endDate" binding:"required"`
}

// OptionalRangeRequest parameters for reports where both bounds may be
// omitted to cover the whole journal.
type OptionalRangeRequest struct {
	Period    string `form:"period"`
	StartDate string `form:"startDate"`
	EndDate   string `form:"endDate"`
}

// TotalCreationsResponse reports the creation count.
type TotalCreationsResponse struct {
	TotalCreations int `json:"totalCreations"`
}
