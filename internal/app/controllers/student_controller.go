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

// StudentController handles the student self-service surface. The
// identity always comes from the token; a student can only reach their
// own records.
type StudentController struct {
	studentService *services.StudentService
	logger         zerolog.Logger
}

// NewStudentController creates a new StudentController
func NewStudentController(studentService *services.StudentService, logger zerolog.Logger) *StudentController {
	return &StudentController{
		studentService: studentService,
		logger:         logger,
	}
}

// GetDashboard returns the student's own overview
// @Summary Get own dashboard
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.StudentDashboardResponse} "Dashboard"
// @Failure 403 {object} dto.ErrorResponse "Not the record owner"
// @Router /student/dashboard [get]
func (c *StudentController) GetDashboard(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	dashboard, err := c.studentService.GetDashboard(ctx, ident, ident.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// GetAttendance returns the student's own attendance records
// @Summary Get own attendance
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Attendance records"
// @Router /student/attendance [get]
func (c *StudentController) GetAttendance(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	records, err := c.studentService.GetAttendance(ctx, ident, ident.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records))
}

// SubmitSurvey stores a weekly wellbeing survey
// @Summary Submit a wellbeing survey
// @Description Stores the weekly survey for the calling student. One submission per week and module.
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.SubmitSurveyRequest true "Survey answers"
// @Success 201 {object} dto.APIResponse "Survey stored"
// @Failure 409 {object} dto.ErrorResponse "Survey already submitted for this week"
// @Router /student/surveys [post]
func (c *StudentController) SubmitSurvey(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	var req dto.SubmitSurveyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	survey, err := c.studentService.SubmitSurvey(ctx, ident, ident.ID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	c.logger.Info().Str("studentId", ident.ID).Str("moduleId", req.ModuleID).
		Int("weekNo", req.WeekNo).Msg("Survey submitted")
	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(survey))
}

// GetSurveys returns the student's own survey submissions
// @Summary Get own surveys
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Survey submissions"
// @Router /student/surveys [get]
func (c *StudentController) GetSurveys(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	surveys, err := c.studentService.GetSurveys(ctx, ident, ident.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(surveys))
}

// UpdateYear updates the student's own year of study
// @Summary Update own year of study
// @Tags student
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateYearRequest true "New year"
// @Success 204 "Year updated"
// @Router /student/year [put]
func (c *StudentController) UpdateYear(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	var req dto.UpdateYearRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	if err := c.studentService.UpdateYear(ctx, ident, ident.ID, req.Year); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetUpcomingDeadlines returns the student's upcoming deadlines
// @Summary Get own upcoming deadlines
// @Description Lists unsubmitted deadlines that are not yet past due.
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Upcoming deadlines"
// @Router /student/deadlines/upcoming [get]
func (c *StudentController) GetUpcomingDeadlines(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	deadlines, err := c.studentService.GetUpcomingDeadlines(ctx, ident, ident.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(deadlines))
}

// GetDeadlines returns the student's own deadlines
// @Summary Get own deadlines
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Deadlines"
// @Router /student/deadlines [get]
func (c *StudentController) GetDeadlines(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	deadlines, err := c.studentService.GetDeadlines(ctx, ident, ident.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(deadlines))
}

// MarkDeadlineSubmitted flags one of the student's deadlines as done
// @Summary Mark a deadline submitted
// @Tags student
// @Produce json
// @Security BearerAuth
// @Param moduleId query string true "Module ID"
// @Param assessment query string true "Assessment name"
// @Param dueDate query string true "Due date (YYYY-MM-DD)"
// @Success 204 "Deadline marked submitted"
// @Failure 404 {object} dto.ErrorResponse "Deadline not found"
// @Router /student/deadlines/submit [post]
func (c *StudentController) MarkDeadlineSubmitted(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)

	moduleID := ctx.Query("moduleId")
	assessment := ctx.Query("assessment")
	dueDateStr := ctx.Query("dueDate")
	if moduleID == "" || assessment == "" || dueDateStr == "" {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidation, "moduleId, assessment and dueDate are required")))
		return
	}

	dueDate, err := time.Parse("2006-01-02", dueDateStr)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeValidation, "dueDate must be in YYYY-MM-DD format")))
		return
	}

	deadline := &models.Deadline{
		StudentID:      ident.ID,
		ModuleID:       moduleID,
		AssessmentName: assessment,
		DueDate:        dueDate,
	}
	if err := c.studentService.MarkDeadlineSubmitted(ctx, ident, deadline); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// GetGrades returns the student's own grades
// @Summary Get own grades
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Grades"
// @Router /student/grades [get]
func (c *StudentController) GetGrades(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	grades, err := c.studentService.GetGrades(ctx, ident, ident.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades))
}

// GetModules returns the modules of the student's course
// @Summary Get own course modules
// @Tags student
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Modules"
// @Router /student/modules [get]
func (c *StudentController) GetModules(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	modules, err := c.studentService.GetModules(ctx, ident, ident.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(modules))
}
