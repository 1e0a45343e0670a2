package services

import (
	"context"
	"time"

	"github.com/mkaya/campusdesk/internal/app/auth"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/app/repositories"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	"github.com/mkaya/campusdesk/internal/pkg/logger"
)

// StaffService handles the module staff surface: attendance, grades and
// deadlines for modules the staff member is assigned to.
type StaffService struct {
	repos  *repositories.Repositories
	policy *auth.Policy
}

// NewStaffService creates a new StaffService
func NewStaffService(repos *repositories.Repositories, policy *auth.Policy) *StaffService {
	return &StaffService{repos: repos, policy: policy}
}

// checkModuleAccess verifies the identity teaches the module. Admin
// passes; everyone else must be the module's assigned module staff.
func (s *StaffService) checkModuleAccess(ctx context.Context, ident *auth.Identity, moduleID string) (*models.Module, error) {
	module, err := s.repos.Modules.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if ident.Role == models.RoleAdmin {
		return module, nil
	}
	if module.ModuleStaffID != ident.ID {
		return nil, apperrors.ErrNotAssignedToModule
	}
	return module, nil
}

// GetModules lists the modules the staff member is assigned to
func (s *StaffService) GetModules(ctx context.Context, ident *auth.Identity) ([]*models.Module, error) {
	if ident.Role == models.RoleAdmin {
		return s.repos.Modules.GetAll(ctx)
	}
	return s.repos.Modules.GetByStaff(ctx, ident.ID)
}

// GetModuleStudents lists the students enrolled in a module's course
func (s *StaffService) GetModuleStudents(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Student, error) {
	if err := s.policy.Require(ident, auth.ActionViewStudents, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Students.GetByModule(ctx, moduleID)
}

// GetModuleAttendance lists all attendance records within a module
func (s *StaffService) GetModuleAttendance(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Attendance, error) {
	if err := s.policy.Require(ident, auth.ActionViewAttendance, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Attendance.GetByModule(ctx, moduleID)
}

// RecordAttendance records a weekly attendance entry
func (s *StaffService) RecordAttendance(ctx context.Context, ident *auth.Identity, moduleID string, req *dto.RecordAttendanceRequest) (*models.Attendance, error) {
	if err := s.policy.Require(ident, auth.ActionEditAttendance, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError("date must be in YYYY-MM-DD format")
	}

	att := &models.Attendance{
		WeekNo:    req.WeekNo,
		ModuleID:  moduleID,
		StudentID: req.StudentID,
		Date:      date,
		Missed:    req.Missed,
	}
	if err := s.repos.Attendance.Create(ctx, att); err != nil {
		return nil, err
	}
	return att, nil
}

// UpdateAttendance corrects an existing attendance record
func (s *StaffService) UpdateAttendance(ctx context.Context, ident *auth.Identity, moduleID, studentID, dateStr string, req *dto.UpdateAttendanceRequest) error {
	if err := s.policy.Require(ident, auth.ActionEditAttendance, ""); err != nil {
		return err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return err
	}

	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return apperrors.NewBadRequestError("date must be in YYYY-MM-DD format")
	}

	att := &models.Attendance{
		WeekNo:    req.WeekNo,
		ModuleID:  moduleID,
		StudentID: studentID,
		Date:      date,
		Missed:    req.Missed,
	}
	return s.repos.Attendance.Update(ctx, att)
}

// GetModuleGrades lists all grades within a module
func (s *StaffService) GetModuleGrades(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Grade, error) {
	if err := s.policy.Require(ident, auth.ActionViewGrades, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Grades.GetByModule(ctx, moduleID)
}

// RecordGrade records a student's module grade
func (s *StaffService) RecordGrade(ctx context.Context, ident *auth.Identity, moduleID string, req *dto.RecordGradeRequest) (*models.Grade, error) {
	if err := s.policy.Require(ident, auth.ActionEditGrades, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		StudentID: req.StudentID,
		ModuleID:  moduleID,
		Grade:     req.Grade,
	}
	if err := s.repos.Grades.Create(ctx, grade); err != nil {
		return nil, err
	}
	return grade, nil
}

// UpdateGrade changes a student's module grade
func (s *StaffService) UpdateGrade(ctx context.Context, ident *auth.Identity, moduleID, studentID string, req *dto.UpdateGradeRequest) error {
	if err := s.policy.Require(ident, auth.ActionEditGrades, ""); err != nil {
		return err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return err
	}

	grade := &models.Grade{
		StudentID: studentID,
		ModuleID:  moduleID,
		Grade:     req.Grade,
	}
	return s.repos.Grades.Update(ctx, grade)
}

// GetModuleDeadlines lists all deadlines within a module
func (s *StaffService) GetModuleDeadlines(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Deadline, error) {
	if err := s.policy.Require(ident, auth.ActionViewDeadlines, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Deadlines.GetByModule(ctx, moduleID)
}

// CreateDeadline fans a deadline out to every student enrolled in the
// module's course. All rows land in one transaction.
func (s *StaffService) CreateDeadline(ctx context.Context, ident *auth.Identity, moduleID string, req *dto.CreateDeadlineRequest) (int, error) {
	if err := s.policy.Require(ident, auth.ActionEditDeadlines, ""); err != nil {
		return 0, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return 0, err
	}

	dueDate, err := time.Parse("2006-01-02", req.DueDate)
	if err != nil {
		return 0, apperrors.NewBadRequestError("dueDate must be in YYYY-MM-DD format")
	}

	students, err := s.repos.Students.GetByModule(ctx, moduleID)
	if err != nil {
		return 0, err
	}
	if len(students) == 0 {
		return 0, nil
	}

	studentIDs := make([]string, 0, len(students))
	for _, st := range students {
		studentIDs = append(studentIDs, st.ID)
	}

	deadline := &models.Deadline{
		ModuleID:       moduleID,
		WeekNo:         req.WeekNo,
		AssessmentName: req.AssessmentName,
		DueDate:        dueDate,
	}
	if err := s.repos.Deadlines.CreateForStudents(ctx, deadline, studentIDs); err != nil {
		return 0, err
	}

	logger.Info().Str("moduleId", moduleID).Str("assessment", req.AssessmentName).
		Int("students", len(studentIDs)).Msg("Deadline created")
	return len(studentIDs), nil
}

// DeleteDeadline removes one student's deadline row
func (s *StaffService) DeleteDeadline(ctx context.Context, ident *auth.Identity, deadline *models.Deadline) error {
	if err := s.policy.Require(ident, auth.ActionEditDeadlines, ""); err != nil {
		return err
	}
	if _, err := s.checkModuleAccess(ctx, ident, deadline.ModuleID); err != nil {
		return err
	}
	return s.repos.Deadlines.Delete(ctx, deadline)
}
