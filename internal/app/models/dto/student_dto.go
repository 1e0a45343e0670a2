package dto

// SubmitSurveyRequest defines the weekly wellbeing survey payload
type SubmitSurveyRequest struct {
	WeekNo       int     `json:"weekNo" binding:"required,min=1,max=52"`
	ModuleID     string  `json:"moduleId" binding:"required,max=10"`
	StressLevels int     `json:"stressLevels" binding:"required,min=1,max=5"`
	HoursSlept   float64 `json:"hoursSlept" binding:"required,gt=0,lt=24"`
	Comments     string  `json:"comments,omitempty" binding:"max=255"`
}

// UpdateYearRequest defines the payload for a student updating their
// own year of study.
type UpdateYearRequest struct {
	Year int `json:"year" binding:"required,min=1,max=7"`
}

// StudentResponse is the public view of a student record
type StudentResponse struct {
	StudentID string  `json:"studentId"`
	Name      string  `json:"name"`
	Email     *string `json:"email,omitempty"`
	Year      int     `json:"year"`
	CourseID  *string `json:"courseId,omitempty"`
}

// StudentDashboardResponse aggregates a student's own overview
type StudentDashboardResponse struct {
	Student           StudentResponse `json:"student"`
	AttendanceRate    float64         `json:"attendanceRate"`
	AverageGrade      *float64        `json:"averageGrade,omitempty"`
	UpcomingDeadlines int             `json:"upcomingDeadlines"`
}
