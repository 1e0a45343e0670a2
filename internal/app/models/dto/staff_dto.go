package dto

// RecordAttendanceRequest defines the payload for recording attendance
type RecordAttendanceRequest struct {
	WeekNo    int    `json:"weekNo" binding:"required,min=1,max=52"`
	StudentID string `json:"studentId" binding:"required,max=10"`
	Date      string `json:"date" binding:"required" example:"2026-02-09"`
	Missed    bool   `json:"missed"`
}

// UpdateAttendanceRequest defines the payload for correcting attendance
type UpdateAttendanceRequest struct {
	WeekNo int  `json:"weekNo" binding:"required,min=1,max=52"`
	Missed bool `json:"missed"`
}

// RecordGradeRequest defines the payload for recording a module grade
type RecordGradeRequest struct {
	StudentID string `json:"studentId" binding:"required,max=10"`
	Grade     int    `json:"grade" binding:"min=0,max=100"`
}

// UpdateGradeRequest defines the payload for changing a module grade
type UpdateGradeRequest struct {
	Grade int `json:"grade" binding:"min=0,max=100"`
}

// CreateDeadlineRequest creates a deadline for every student enrolled in
// the module's course.
type CreateDeadlineRequest struct {
	WeekNo         int    `json:"weekNo" binding:"required,min=1,max=52"`
	AssessmentName string `json:"assessmentName" binding:"required,max=50" example:"Coursework 1"`
	DueDate        string `json:"dueDate" binding:"required" example:"2026-03-20"`
}
