package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/app/services"
	"github.com/mkaya/campusdesk/internal/middleware"
	"github.com/rs/zerolog"
)

// AdminController handles administrative operations. All routes are
// gated to the admin role by the router.
type AdminController struct {
	adminService *services.AdminService
	logger       zerolog.Logger
}

// NewAdminController creates a new AdminController
func NewAdminController(adminService *services.AdminService, logger zerolog.Logger) *AdminController {
	return &AdminController{
		adminService: adminService,
		logger:       logger,
	}
}

// CreateUser creates a user with a fixed role
// @Summary Create a user
// @Description Creates a user account. The role is assigned once here and cannot be changed afterwards.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateUserRequest true "User information"
// @Success 201 {object} dto.APIResponse{data=dto.UserResponse} "User created"
// @Failure 400 {object} dto.ErrorResponse "Invalid request or role"
// @Failure 409 {object} dto.ErrorResponse "User already exists"
// @Router /admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	user, err := c.adminService.CreateUser(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.UserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Role:  string(user.Role),
		Email: user.Email,
	}))
}

// GetUsers lists all users
// @Summary List users
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "All users"
// @Router /admin/users [get]
func (c *AdminController) GetUsers(ctx *gin.Context) {
	users, err := c.adminService.GetUsers(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		resp = append(resp, dto.UserResponse{ID: u.ID, Name: u.Name, Role: string(u.Role), Email: u.Email})
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// GetUser retrieves one user
// @Summary Get a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} dto.APIResponse{data=dto.UserResponse} "User"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [get]
func (c *AdminController) GetUser(ctx *gin.Context) {
	user, err := c.adminService.GetUser(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.UserResponse{
		ID: user.ID, Name: user.Name, Role: string(user.Role), Email: user.Email,
	}))
}

// UpdateUser updates a user's profile
// @Summary Update a user
// @Description Updates name and email. Any attempt to change the role is rejected with a conflict.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body dto.UpdateUserRequest true "Profile changes"
// @Success 204 "User updated"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Failure 409 {object} dto.ErrorResponse "Role cannot be changed"
// @Router /admin/users/{id} [put]
func (c *AdminController) UpdateUser(ctx *gin.Context) {
	var req dto.UpdateUserRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.adminService.UpdateUser(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteUser removes a user
// @Summary Delete a user
// @Tags admin
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 204 "User deleted"
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	if err := c.adminService.DeleteUser(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteSurvey removes a survey submission
// @Summary Delete a survey (moderation)
// @Tags admin
// @Security BearerAuth
// @Param weekNo query int true "Week number"
// @Param studentId query string true "Student ID"
// @Param moduleId query string true "Module ID"
// @Success 204 "Survey deleted"
// @Failure 404 {object} dto.ErrorResponse "Survey not found"
// @Router /admin/surveys [delete]
func (c *AdminController) DeleteSurvey(ctx *gin.Context) {
	weekNo, err := strconv.Atoi(ctx.Query("weekNo"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidation, "weekNo must be an integer")))
		return
	}

	if err := c.adminService.DeleteSurvey(ctx, weekNo, ctx.Query("studentId"), ctx.Query("moduleId")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateCourse creates a course
// @Summary Create a course
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse "Course created"
// @Failure 409 {object} dto.ErrorResponse "Course already exists"
// @Router /admin/courses [post]
func (c *AdminController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	course, err := c.adminService.CreateCourse(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(course))
}

// GetCourses lists all courses
// @Summary List courses
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "All courses"
// @Router /admin/courses [get]
func (c *AdminController) GetCourses(ctx *gin.Context) {
	courses, err := c.adminService.GetCourses(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// CreateStudent enrolls an existing student-role user
// @Summary Create a student record
// @Description Enrolls an existing user as a student. Rejected when the referenced user does not hold the student role.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateStudentRequest true "Student information"
// @Success 201 {object} dto.APIResponse "Student created"
// @Failure 400 {object} dto.ErrorResponse "Referenced user is not a student"
// @Router /admin/students [post]
func (c *AdminController) CreateStudent(ctx *gin.Context) {
	var req dto.CreateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	student, err := c.adminService.CreateStudent(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(student))
}

// GetStudents lists all students
// @Summary List students
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "All students"
// @Router /admin/students [get]
func (c *AdminController) GetStudents(ctx *gin.Context) {
	students, err := c.adminService.GetStudents(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetStudent retrieves one student record
// @Summary Get a student record
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 200 {object} dto.APIResponse "Student"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id} [get]
func (c *AdminController) GetStudent(ctx *gin.Context) {
	student, err := c.adminService.GetStudent(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(student))
}

// UpdateStudent updates a student's year and course
// @Summary Update a student record
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Param request body dto.UpdateStudentRequest true "Student changes"
// @Success 204 "Student updated"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id} [put]
func (c *AdminController) UpdateStudent(ctx *gin.Context) {
	var req dto.UpdateStudentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.adminService.UpdateStudent(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteStudent removes a student record
// @Summary Delete a student record
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Student ID"
// @Success 204 "Student deleted"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /admin/students/{id} [delete]
func (c *AdminController) DeleteStudent(ctx *gin.Context) {
	if err := c.adminService.DeleteStudent(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateModule creates a module
// @Summary Create a module
// @Description Creates a module. Both staff references must hold the role their column demands; the welfare reference is checked first.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateModuleRequest true "Module information"
// @Success 201 {object} dto.APIResponse "Module created"
// @Failure 400 {object} dto.ErrorResponse "Staff reference does not hold the required role"
// @Router /admin/modules [post]
func (c *AdminController) CreateModule(ctx *gin.Context) {
	var req dto.CreateModuleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	module, err := c.adminService.CreateModule(ctx, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(module))
}

// GetModules lists all modules
// @Summary List modules
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "All modules"
// @Router /admin/modules [get]
func (c *AdminController) GetModules(ctx *gin.Context) {
	modules, err := c.adminService.GetModules(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(modules))
}

// GetModule retrieves one module
// @Summary Get a module
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Module"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /admin/modules/{id} [get]
func (c *AdminController) GetModule(ctx *gin.Context) {
	module, err := c.adminService.GetModule(ctx, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(module))
}

// UpdateModuleStaff reassigns a module's staff
// @Summary Reassign module staff
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param request body dto.UpdateModuleStaffRequest true "New staff assignment"
// @Success 204 "Staff reassigned"
// @Failure 400 {object} dto.ErrorResponse "Staff reference does not hold the required role"
// @Router /admin/modules/{id}/staff [put]
func (c *AdminController) UpdateModuleStaff(ctx *gin.Context) {
	var req dto.UpdateModuleStaffRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.adminService.UpdateModuleStaff(ctx, ctx.Param("id"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// DeleteModule removes a module
// @Summary Delete a module
// @Tags admin
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 204 "Module deleted"
// @Failure 404 {object} dto.ErrorResponse "Module not found"
// @Router /admin/modules/{id} [delete]
func (c *AdminController) DeleteModule(ctx *gin.Context) {
	if err := c.adminService.DeleteModule(ctx, ctx.Param("id")); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
