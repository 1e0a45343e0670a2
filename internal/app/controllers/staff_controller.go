package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/app/services"
	"github.com/mkaya/campusdesk/internal/middleware"
	"github.com/rs/zerolog"
)

// StaffController handles the module staff surface. Every module-scoped
// route verifies the caller is assigned to that module.
type StaffController struct {
	staffService     *services.StaffService
	analyticsService *services.AnalyticsService
	logger           zerolog.Logger
}

// NewStaffController creates a new StaffController
func NewStaffController(staffService *services.StaffService, analyticsService *services.AnalyticsService, logger zerolog.Logger) *StaffController {
	return &StaffController{
		staffService:     staffService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetModules lists the caller's assigned modules
// @Summary List assigned modules
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Assigned modules"
// @Router /staff/modules [get]
func (c *StaffController) GetModules(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	modules, err := c.staffService.GetModules(ctx, ident)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(modules))
}

// GetModuleStudents lists the students of a module
// @Summary List module students
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Students"
// @Failure 403 {object} dto.ErrorResponse "Not assigned to this module"
// @Router /staff/modules/{id}/students [get]
func (c *StaffController) GetModuleStudents(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	students, err := c.staffService.GetModuleStudents(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetModuleAttendance lists a module's attendance records
// @Summary List module attendance
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Attendance records"
// @Router /staff/modules/{id}/attendance [get]
func (c *StaffController) GetModuleAttendance(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	records, err := c.staffService.GetModuleAttendance(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records))
}

// RecordAttendance records a weekly attendance entry
// @Summary Record attendance
// @Description Records one attendance entry. Rejected when the referenced user does not hold the student role.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param request body dto.RecordAttendanceRequest true "Attendance entry"
// @Success 201 {object} dto.APIResponse "Attendance recorded"
// @Failure 400 {object} dto.ErrorResponse "Referenced user is not a student"
// @Router /staff/modules/{id}/attendance [post]
func (c *StaffController) RecordAttendance(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	var req dto.RecordAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	att, err := c.staffService.RecordAttendance(ctx, ident, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(att))
}

// UpdateAttendance corrects an attendance record
// @Summary Update attendance
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param studentId path string true "Student ID"
// @Param date query string true "Record date (YYYY-MM-DD)"
// @Param request body dto.UpdateAttendanceRequest true "Attendance changes"
// @Success 204 "Attendance updated"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Router /staff/modules/{id}/attendance/{studentId} [put]
func (c *StaffController) UpdateAttendance(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	err := c.staffService.UpdateAttendance(ctx, ident, ctx.Param("id"), ctx.Param("studentId"), ctx.Query("date"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetModuleGrades lists a module's grades
// @Summary List module grades
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Grades"
// @Router /staff/modules/{id}/grades [get]
func (c *StaffController) GetModuleGrades(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	grades, err := c.staffService.GetModuleGrades(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades))
}

// RecordGrade records a student's module grade
// @Summary Record a grade
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param request body dto.RecordGradeRequest true "Grade entry"
// @Success 201 {object} dto.APIResponse "Grade recorded"
// @Failure 400 {object} dto.ErrorResponse "Referenced user is not a student"
// @Router /staff/modules/{id}/grades [post]
func (c *StaffController) RecordGrade(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	var req dto.RecordGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	grade, err := c.staffService.RecordGrade(ctx, ident, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("moduleId", ctx.Param("id")).Str("studentId", req.StudentID).Msg("Grade recorded")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(grade))
}

// UpdateGrade changes a student's module grade
// @Summary Update a grade
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param studentId path string true "Student ID"
// @Param request body dto.UpdateGradeRequest true "Grade change"
// @Success 204 "Grade updated"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Router /staff/modules/{id}/grades/{studentId} [put]
func (c *StaffController) UpdateGrade(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.staffService.UpdateGrade(ctx, ident, ctx.Param("id"), ctx.Param("studentId"), &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetModuleAnalytics aggregates a module's overall figures
// @Summary Get module analytics
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse{data=dto.ModuleAnalyticsResponse} "Module analytics"
// @Router /staff/modules/{id}/analytics [get]
func (c *StaffController) GetModuleAnalytics(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	analytics, err := c.analyticsService.GetModuleAnalytics(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analytics))
}

// GetModuleDeadlines lists a module's deadlines
// @Summary List module deadlines
// @Tags staff
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Deadlines"
// @Router /staff/modules/{id}/deadlines [get]
func (c *StaffController) GetModuleDeadlines(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	deadlines, err := c.staffService.GetModuleDeadlines(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(deadlines))
}

// CreateDeadline creates a deadline for every enrolled student
// @Summary Create a deadline
// @Description Fans the deadline out to every student enrolled in the module's course. All rows land in one transaction.
// @Tags staff
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param request body dto.CreateDeadlineRequest true "Deadline"
// @Success 201 {object} dto.APIResponse "Deadline created for enrolled students"
// @Router /staff/modules/{id}/deadlines [post]
func (c *StaffController) CreateDeadline(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	var req dto.CreateDeadlineRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	count, err := c.staffService.CreateDeadline(ctx, ident, ctx.Param("id"), &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{"studentsAffected": count}))
}

// DeleteDeadline removes one student's deadline row
// @Summary Delete a deadline
// @Tags staff
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param studentId path string true "Student ID"
// @Param assessment query string true "Assessment name"
// @Param dueDate query string true "Due date (YYYY-MM-DD)"
// @Success 204 "Deadline deleted"
// @Failure 404 {object} dto.ErrorResponse "Deadline not found"
// @Router /staff/modules/{id}/deadlines/{studentId} [delete]
func (c *StaffController) DeleteDeadline(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	dueDate, err := time.Parse("2006-01-02", ctx.Query("dueDate"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidation, "dueDate must be in YYYY-MM-DD format")))
		return
	}

	deadline := &models.Deadline{
		StudentID:      ctx.Param("studentId"),
		ModuleID:       ctx.Param("id"),
		AssessmentName: ctx.Query("assessment"),
		DueDate:        dueDate,
	}
	if err := c.staffService.DeleteDeadline(ctx, ident, deadline); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
