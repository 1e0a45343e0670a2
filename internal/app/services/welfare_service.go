package services

import (
	"context"

	"github.com/mkaya/campusdesk/internal/app/auth"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/app/repositories"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
)

// WelfareService handles the welfare staff surface. Welfare staff read
// attendance, surveys, grades and deadlines for their modules but never
// write academic records.
type WelfareService struct {
	repos  *repositories.Repositories
	policy *auth.Policy
}

// NewWelfareService creates a new WelfareService
func NewWelfareService(repos *repositories.Repositories, policy *auth.Policy) *WelfareService {
	return &WelfareService{repos: repos, policy: policy}
}

// checkModuleAccess verifies the identity is the module's welfare staff.
// Admin passes.
func (s *WelfareService) checkModuleAccess(ctx context.Context, ident *auth.Identity, moduleID string) (*models.Module, error) {
	module, err := s.repos.Modules.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if ident.Role == models.RoleAdmin {
		return module, nil
	}
	if module.WelfareStaffID != ident.ID {
		return nil, apperrors.ErrNotAssignedToModule
	}
	return module, nil
}

// GetModules lists the modules the welfare staff member covers
func (s *WelfareService) GetModules(ctx context.Context, ident *auth.Identity) ([]*models.Module, error) {
	if ident.Role == models.RoleAdmin {
		return s.repos.Modules.GetAll(ctx)
	}
	return s.repos.Modules.GetByStaff(ctx, ident.ID)
}

// GetModuleStudents lists the students enrolled in a module's course
func (s *WelfareService) GetModuleStudents(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Student, error) {
	if err := s.policy.Require(ident, auth.ActionViewStudents, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Students.GetByModule(ctx, moduleID)
}

// GetModuleAttendance lists all attendance records within a module
func (s *WelfareService) GetModuleAttendance(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Attendance, error) {
	if err := s.policy.Require(ident, auth.ActionViewAttendance, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Attendance.GetByModule(ctx, moduleID)
}

// GetModuleSurveys lists the wellbeing surveys submitted within a module
func (s *WelfareService) GetModuleSurveys(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Survey, error) {
	if err := s.policy.Require(ident, auth.ActionViewSurveys, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Surveys.GetByModule(ctx, moduleID)
}

// GetStudentSurveys lists one student's surveys within a module
func (s *WelfareService) GetStudentSurveys(ctx context.Context, ident *auth.Identity, moduleID, studentID string) ([]*models.Survey, error) {
	if err := s.policy.Require(ident, auth.ActionViewSurveys, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Surveys.GetByStudentModule(ctx, studentID, moduleID)
}

// GetModuleGrades lists all grades within a module
func (s *WelfareService) GetModuleGrades(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Grade, error) {
	if err := s.policy.Require(ident, auth.ActionViewGrades, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Grades.GetByModule(ctx, moduleID)
}

// GetModuleDeadlines lists all deadlines within a module
func (s *WelfareService) GetModuleDeadlines(ctx context.Context, ident *auth.Identity, moduleID string) ([]*models.Deadline, error) {
	if err := s.policy.Require(ident, auth.ActionViewDeadlines, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}
	return s.repos.Deadlines.GetByModule(ctx, moduleID)
}
