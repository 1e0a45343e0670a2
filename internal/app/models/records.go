package models

import "time"

// Attendance defines a weekly attendance record based on the 'attendance' table.
// Keyed by (mod_id, stud_id, date).
type Attendance struct {
	WeekNo    int       `json:"weekNo" db:"week_no"`
	ModuleID  string    `json:"moduleId" db:"mod_id"`
	StudentID string    `json:"studentId" db:"stud_id"`
	Date      time.Time `json:"date" db:"date"`
	Missed    bool      `json:"missed" db:"missed"`
}

// Survey defines a wellbeing survey submission based on the 'surveys' table.
// Keyed by (week_no, stud_id, mod_id).
type Survey struct {
	WeekNo       int       `json:"weekNo" db:"week_no"`
	StudentID    string    `json:"studentId" db:"stud_id"`
	ModuleID     string    `json:"moduleId" db:"mod_id"`
	StressLevels int       `json:"stressLevels" db:"stress_levels"` // 1..5
	HoursSlept   float64   `json:"hoursSlept" db:"hours_slept"`     // < 24
	Comments     string    `json:"comments" db:"comments"`
	Date         time.Time `json:"date" db:"date"`
}

// Deadline defines an assessment deadline based on the 'deadlines' table.
// Keyed by (stud_id, mod_id, ass_name, due_date).
type Deadline struct {
	StudentID      string    `json:"studentId" db:"stud_id"`
	ModuleID       string    `json:"moduleId" db:"mod_id"`
	WeekNo         int       `json:"weekNo" db:"week_no"`
	AssessmentName string    `json:"assessmentName" db:"ass_name"`
	DueDate        time.Time `json:"dueDate" db:"due_date"`
	Submitted      bool      `json:"submitted" db:"submitted"`
}

// Grade defines a module grade based on the 'module_grades' table.
// Keyed by (stud_id, mod_id).
type Grade struct {
	StudentID string `json:"studentId" db:"stud_id"`
	ModuleID  string `json:"moduleId" db:"mod_id"`
	Grade     int    `json:"grade" db:"grade"` // 0..100
}
