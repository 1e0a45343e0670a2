// Package routes wires controllers to the HTTP surface
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/controllers"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/middleware"
	pkgauth "github.com/mkaya/campusdesk/internal/pkg/auth"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	jwtService *pkgauth.JWTService,
	authController *controllers.AuthController,
	adminController *controllers.AdminController,
	studentController *controllers.StudentController,
	staffController *controllers.StaffController,
	welfareController *controllers.WelfareController,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := router.Group("/api/v1")

	// --- Public auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
	}

	// --- Authenticated routes ---
	authenticated := v1.Group("")
	authenticated.Use(middleware.JWTAuthMiddleware(jwtService))
	{
		authenticated.GET("/auth/me", authController.Me)
		authenticated.POST("/auth/logout", authController.Logout)
		authenticated.PUT("/auth/password", authController.ChangePassword)

		// Admin surface
		admin := authenticated.Group("/admin")
		admin.Use(middleware.RoleRequired(models.RoleAdmin))
		{
			admin.POST("/users", adminController.CreateUser)
			admin.GET("/users", adminController.GetUsers)
			admin.GET("/users/:id", adminController.GetUser)
			admin.PUT("/users/:id", adminController.UpdateUser)
			admin.DELETE("/users/:id", adminController.DeleteUser)

			admin.POST("/courses", adminController.CreateCourse)
			admin.GET("/courses", adminController.GetCourses)

			admin.DELETE("/surveys", adminController.DeleteSurvey)

			admin.POST("/students", adminController.CreateStudent)
			admin.GET("/students", adminController.GetStudents)
			admin.GET("/students/:id", adminController.GetStudent)
			admin.PUT("/students/:id", adminController.UpdateStudent)
			admin.DELETE("/students/:id", adminController.DeleteStudent)

			admin.POST("/modules", adminController.CreateModule)
			admin.GET("/modules", adminController.GetModules)
			admin.GET("/modules/:id", adminController.GetModule)
			admin.PUT("/modules/:id/staff", adminController.UpdateModuleStaff)
			admin.DELETE("/modules/:id", adminController.DeleteModule)
		}

		// Student self-service surface
		student := authenticated.Group("/student")
		student.Use(middleware.RoleRequired(models.RoleStudent))
		{
			student.GET("/dashboard", studentController.GetDashboard)
			student.PUT("/year", studentController.UpdateYear)
			student.GET("/attendance", studentController.GetAttendance)
			student.POST("/surveys", studentController.SubmitSurvey)
			student.GET("/surveys", studentController.GetSurveys)
			student.GET("/deadlines", studentController.GetDeadlines)
			student.GET("/deadlines/upcoming", studentController.GetUpcomingDeadlines)
			student.POST("/deadlines/submit", studentController.MarkDeadlineSubmitted)
			student.GET("/grades", studentController.GetGrades)
			student.GET("/modules", studentController.GetModules)
		}

		// Module staff surface, admin may also operate it
		staff := authenticated.Group("/staff")
		staff.Use(middleware.RoleRequired(models.RoleModuleStaff, models.RoleAdmin))
		{
			staff.GET("/modules", staffController.GetModules)
			staff.GET("/modules/:id/students", staffController.GetModuleStudents)
			staff.GET("/modules/:id/attendance", staffController.GetModuleAttendance)
			staff.POST("/modules/:id/attendance", staffController.RecordAttendance)
			staff.PUT("/modules/:id/attendance/:studentId", staffController.UpdateAttendance)
			staff.GET("/modules/:id/grades", staffController.GetModuleGrades)
			staff.POST("/modules/:id/grades", staffController.RecordGrade)
			staff.PUT("/modules/:id/grades/:studentId", staffController.UpdateGrade)
			staff.GET("/modules/:id/analytics", staffController.GetModuleAnalytics)
			staff.GET("/modules/:id/deadlines", staffController.GetModuleDeadlines)
			staff.POST("/modules/:id/deadlines", staffController.CreateDeadline)
			staff.DELETE("/modules/:id/deadlines/:studentId", staffController.DeleteDeadline)
		}

		// Welfare staff surface, admin may also operate it
		welfare := authenticated.Group("/welfare")
		welfare.Use(middleware.RoleRequired(models.RoleWelfareStaff, models.RoleAdmin))
		{
			welfare.GET("/students/at-risk", welfareController.GetAllAtRiskStudents)
			welfare.GET("/modules", welfareController.GetModules)
			welfare.GET("/modules/:id/students", welfareController.GetModuleStudents)
			welfare.GET("/modules/:id/students/:studentId/report", welfareController.GetStudentReport)
			welfare.GET("/modules/:id/attendance", welfareController.GetModuleAttendance)
			welfare.GET("/modules/:id/surveys", welfareController.GetModuleSurveys)
			welfare.GET("/modules/:id/surveys/:studentId", welfareController.GetStudentSurveys)
			welfare.GET("/modules/:id/grades", welfareController.GetModuleGrades)
			welfare.GET("/modules/:id/deadlines", welfareController.GetModuleDeadlines)
			welfare.GET("/modules/:id/analytics", welfareController.GetModuleAnalytics)
			welfare.GET("/modules/:id/analytics/weekly", welfareController.GetWeeklyTrends)
			welfare.GET("/modules/:id/analytics/at-risk", welfareController.GetAtRiskStudents)
		}
	}
}
