package promotion

type CriterionResult struct {
	Category      string `json:"category"`
	Requirement   string `json:"requirement"`
	CurrentStatus string `json:"current_status"`
	Met           bool   `json:"met"`
}

type Readiness struct {
	Criteria   []CriterionResult `json:"criteria"`
	MetCount   int               `json:"met_count"`
	TotalCount int               `json:"total_count"`
	PercentMet float64           `json:"percent_met"`
}

type TrainingSummary struct {
	Current   int `json:"current"`
	Completed int `json:"completed"`
	Upcoming  int `json:"upcoming"`
}

type ReadinessResponse struct {
	EmployeeID      string          `json:"employee_id"`
	CurrentPosition string          `json:"current_position"`
	Training        TrainingSummary `json:"training"`
	Readiness
}
