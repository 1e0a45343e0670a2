package dto

// ModuleAnalyticsResponse aggregates wellbeing and performance figures
// for one module.
type ModuleAnalyticsResponse struct {
	ModuleID       string   `json:"moduleId"`
	ModuleName     string   `json:"moduleName"`
	StudentCount   int      `json:"studentCount"`
	AttendanceRate float64  `json:"attendanceRate"`
	AverageGrade   *float64 `json:"averageGrade,omitempty"`
	AverageStress  *float64 `json:"averageStress,omitempty"`
	AverageSleep   *float64 `json:"averageSleep,omitempty"`
}

// WeeklyTrendPoint is one week of aggregated module figures
type WeeklyTrendPoint struct {
	WeekNo         int      `json:"weekNo"`
	AttendanceRate float64  `json:"attendanceRate"`
	AverageStress  *float64 `json:"averageStress,omitempty"`
	AverageSleep   *float64 `json:"averageSleep,omitempty"`
}

// AtRiskStudentResponse flags a student whose recent figures crossed a
// risk threshold, with the factors that triggered the flag.
type AtRiskStudentResponse struct {
	StudentID   string   `json:"studentId"`
	Name        string   `json:"name"`
	RiskFactors []string `json:"riskFactors"`
}

// StudentReportResponse is a welfare report on one student within one
// module, combining performance figures with wellbeing averages.
type StudentReportResponse struct {
	StudentID      string   `json:"studentId"`
	Name           string   `json:"name"`
	ModuleID       string   `json:"moduleId"`
	AttendanceRate float64  `json:"attendanceRate"`
	AverageGrade   *float64 `json:"averageGrade,omitempty"`
	AverageStress  *float64 `json:"averageStress,omitempty"`
	AverageSleep   *float64 `json:"averageSleep,omitempty"`
	RiskFactors    []string `json:"riskFactors"`
}
