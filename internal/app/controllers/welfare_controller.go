package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/app/services"
	"github.com/mkaya/campusdesk/internal/middleware"
	"github.com/rs/zerolog"
)

// WelfareController handles the welfare staff surface, including the
// wellbeing analytics views.
type WelfareController struct {
	welfareService   *services.WelfareService
	analyticsService *services.AnalyticsService
	logger           zerolog.Logger
}

// NewWelfareController creates a new WelfareController
func NewWelfareController(welfareService *services.WelfareService, analyticsService *services.AnalyticsService, logger zerolog.Logger) *WelfareController {
	return &WelfareController{
		welfareService:   welfareService,
		analyticsService: analyticsService,
		logger:           logger,
	}
}

// GetModules lists the caller's covered modules
// @Summary List covered modules
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "Covered modules"
// @Router /welfare/modules [get]
func (c *WelfareController) GetModules(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	modules, err := c.welfareService.GetModules(ctx, ident)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(modules))
}

// GetModuleStudents lists the students of a covered module
// @Summary List module students
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Students"
// @Failure 403 {object} dto.ErrorResponse "Not assigned to this module"
// @Router /welfare/modules/{id}/students [get]
func (c *WelfareController) GetModuleStudents(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	students, err := c.welfareService.GetModuleStudents(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetModuleAttendance lists a covered module's attendance records
// @Summary List module attendance
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Attendance records"
// @Router /welfare/modules/{id}/attendance [get]
func (c *WelfareController) GetModuleAttendance(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	records, err := c.welfareService.GetModuleAttendance(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(records))
}

// GetModuleSurveys lists a covered module's wellbeing surveys
// @Summary List module surveys
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Surveys"
// @Router /welfare/modules/{id}/surveys [get]
func (c *WelfareController) GetModuleSurveys(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	surveys, err := c.welfareService.GetModuleSurveys(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(surveys))
}

// GetStudentSurveys lists one student's surveys within a covered module
// @Summary List a student's surveys
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse "Surveys"
// @Router /welfare/modules/{id}/surveys/{studentId} [get]
func (c *WelfareController) GetStudentSurveys(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	surveys, err := c.welfareService.GetStudentSurveys(ctx, ident, ctx.Param("id"), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(surveys))
}

// GetAllAtRiskStudents flags at-risk students across every covered module
// @Summary List at-risk students across all modules
// @Description Flags students whose aggregated figures crossed a risk threshold, over the caller's whole coverage rather than one module.
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse "At-risk students"
// @Router /welfare/students/at-risk [get]
func (c *WelfareController) GetAllAtRiskStudents(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	students, err := c.analyticsService.GetAllAtRiskStudents(ctx, ident)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// GetStudentReport builds a welfare report for one student within a
// covered module
// @Summary Get a student's welfare report
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.StudentReportResponse} "Student report"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Router /welfare/modules/{id}/students/{studentId}/report [get]
func (c *WelfareController) GetStudentReport(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	report, err := c.analyticsService.GetStudentReport(ctx, ident, ctx.Param("id"), ctx.Param("studentId"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}

// GetModuleGrades lists a covered module's grades
// @Summary List module grades
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Grades"
// @Router /welfare/modules/{id}/grades [get]
func (c *WelfareController) GetModuleGrades(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	grades, err := c.welfareService.GetModuleGrades(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(grades))
}

// GetModuleDeadlines lists a covered module's deadlines
// @Summary List module deadlines
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Deadlines"
// @Router /welfare/modules/{id}/deadlines [get]
func (c *WelfareController) GetModuleDeadlines(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	deadlines, err := c.welfareService.GetModuleDeadlines(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(deadlines))
}

// GetModuleAnalytics aggregates a module's overall figures
// @Summary Get module analytics
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse{data=dto.ModuleAnalyticsResponse} "Module analytics"
// @Router /welfare/modules/{id}/analytics [get]
func (c *WelfareController) GetModuleAnalytics(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	analytics, err := c.analyticsService.GetModuleAnalytics(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(analytics))
}

// GetWeeklyTrends aggregates a module's figures per teaching week
// @Summary Get weekly trends
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "Weekly trend points"
// @Router /welfare/modules/{id}/analytics/weekly [get]
func (c *WelfareController) GetWeeklyTrends(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	trends, err := c.analyticsService.GetWeeklyTrends(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(trends))
}

// GetAtRiskStudents flags students whose figures crossed a risk threshold
// @Summary List at-risk students
// @Description Flags students with high average stress, low average sleep or a low module grade.
// @Tags welfare
// @Produce json
// @Security BearerAuth
// @Param id path string true "Module ID"
// @Success 200 {object} dto.APIResponse "At-risk students with their risk factors"
// @Router /welfare/modules/{id}/analytics/at-risk [get]
func (c *WelfareController) GetAtRiskStudents(ctx *gin.Context) {
	ident := middleware.GetIdentity(ctx)
	students, err := c.analyticsService.GetAtRiskStudents(ctx, ident, ctx.Param("id"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}
