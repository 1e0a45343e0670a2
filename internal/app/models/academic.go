package models

// Course defines the course model based on the 'course' table
type Course struct {
	ID   string `json:"id" db:"course_id" example:"CS101"`
	Name string `json:"name" db:"course_name" example:"Computer Science"`
}

// Module defines the module model based on the 'module' table.
// WelfareStaffID must reference a user with role welfare_staff and
// ModuleStaffID a user with role module_staff; both are re-validated
// on every insert and update.
type Module struct {
	ID             string `json:"id" db:"mod_id" example:"MOD1"`
	Name           string `json:"name" db:"mod_name" example:"Databases"`
	CourseID       string `json:"courseId" db:"course_id"`
	WelfareStaffID string `json:"welfareStaffId" db:"welfare_staff_id"`
	ModuleStaffID  string `json:"moduleStaffId" db:"module_staff_id"`
}
