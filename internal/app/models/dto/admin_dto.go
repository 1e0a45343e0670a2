package dto

// CreateUserRequest defines the admin payload for creating any user.
// The role is fixed at creation and cannot be changed later.
type CreateUserRequest struct {
	UserID   string  `json:"userId" binding:"required,max=10" example:"MS001"`
	Name     string  `json:"name" binding:"required,max=50" example:"John Smith"`
	Role     string  `json:"role" binding:"required,oneof=admin module_staff welfare_staff student" example:"module_staff"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password string  `json:"password" binding:"required,min=8"`
}

// UpdateUserRequest defines the admin payload for updating a user's
// profile. A role value is accepted only so the service can reject any
// attempt to change it; roles are fixed at creation.
type UpdateUserRequest struct {
	Name     string  `json:"name" binding:"required,max=50"`
	Email    *string `json:"email,omitempty" binding:"omitempty,email"`
	Password *string `json:"password,omitempty" binding:"omitempty,min=8"`
	Role     *string `json:"role,omitempty"`
}

// CreateCourseRequest defines the payload for creating a course
type CreateCourseRequest struct {
	CourseID string `json:"courseId" binding:"required,max=10" example:"CS101"`
	Name     string `json:"name" binding:"required,max=50" example:"Computer Science"`
}

// CreateStudentRequest enrolls an existing student-role user
type CreateStudentRequest struct {
	StudentID string  `json:"studentId" binding:"required,max=10" example:"ST001"`
	Year      int     `json:"year" binding:"required,min=1,max=7"`
	CourseID  *string `json:"courseId,omitempty"`
}

// UpdateStudentRequest defines the payload for updating a student record
type UpdateStudentRequest struct {
	Year     int     `json:"year" binding:"required,min=1,max=7"`
	CourseID *string `json:"courseId,omitempty"`
}

// CreateModuleRequest defines the payload for creating a module
type CreateModuleRequest struct {
	ModuleID       string `json:"moduleId" binding:"required,max=10" example:"MOD101"`
	Name           string `json:"name" binding:"required,max=50" example:"Databases"`
	CourseID       string `json:"courseId" binding:"required,max=10"`
	WelfareStaffID string `json:"welfareStaffId" binding:"required,max=10" example:"WS001"`
	ModuleStaffID  string `json:"moduleStaffId" binding:"required,max=10" example:"MS001"`
}

// UpdateModuleStaffRequest reassigns a module's staff members
type UpdateModuleStaffRequest struct {
	WelfareStaffID string `json:"welfareStaffId" binding:"required,max=10"`
	ModuleStaffID  string `json:"moduleStaffId" binding:"required,max=10"`
}
