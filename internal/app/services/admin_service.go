package services

import (
	"context"

	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/app/repositories"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	pkgauth "github.com/mkaya/campusdesk/internal/pkg/auth"
	"github.com/mkaya/campusdesk/internal/pkg/logger"
)

// AdminService handles administrative operations over users, courses,
// students and modules.
type AdminService struct {
	repos *repositories.Repositories
}

// NewAdminService creates a new AdminService
func NewAdminService(repos *repositories.Repositories) *AdminService {
	return &AdminService{repos: repos}
}

// CreateUser creates a user with a fixed role
func (s *AdminService) CreateUser(ctx context.Context, req *dto.CreateUserRequest) (*models.User, error) {
	role := models.Role(req.Role)
	if !role.Valid() {
		return nil, apperrors.ErrInvalidRole
	}

	hash, err := pkgauth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:       req.UserID,
		Name:     req.Name,
		Role:     role,
		Email:    req.Email,
		HashPass: hash,
	}

	if err := s.repos.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	logger.Info().Str("userId", user.ID).Str("role", string(user.Role)).Msg("User created")
	return user, nil
}

// GetUsers lists all users
func (s *AdminService) GetUsers(ctx context.Context) ([]*models.User, error) {
	return s.repos.Users.GetAll(ctx)
}

// GetUser retrieves one user
func (s *AdminService) GetUser(ctx context.Context, id string) (*models.User, error) {
	return s.repos.Users.GetByID(ctx, id)
}

// UpdateUser updates a user's profile. Any attempt to assign a different
// role is rejected; the role column is immutable after creation.
func (s *AdminService) UpdateUser(ctx context.Context, id string, req *dto.UpdateUserRequest) error {
	user, err := s.repos.Users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if req.Role != nil && models.Role(*req.Role) != user.Role {
		return apperrors.ErrRoleImmutable
	}

	if req.Password != nil {
		hash, err := pkgauth.HashPassword(*req.Password)
		if err != nil {
			return err
		}
		if err := s.repos.Users.UpdatePassword(ctx, id, hash); err != nil {
			return err
		}
	}

	return s.repos.Users.UpdateProfile(ctx, id, req.Name, req.Email)
}

// DeleteUser removes a user and, via database cascades, any dependent
// student records.
func (s *AdminService) DeleteUser(ctx context.Context, id string) error {
	if err := s.repos.Users.Delete(ctx, id); err != nil {
		return err
	}
	logger.Info().Str("userId", id).Msg("User deleted")
	return nil
}

// CreateCourse creates a course
func (s *AdminService) CreateCourse(ctx context.Context, req *dto.CreateCourseRequest) (*models.Course, error) {
	course := &models.Course{ID: req.CourseID, Name: req.Name}
	if err := s.repos.Courses.Create(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

// GetCourses lists all courses
func (s *AdminService) GetCourses(ctx context.Context) ([]*models.Course, error) {
	return s.repos.Courses.GetAll(ctx)
}

// CreateStudent enrolls an existing student-role user. The role guard
// rejects the write when the referenced user is not a student.
func (s *AdminService) CreateStudent(ctx context.Context, req *dto.CreateStudentRequest) (*models.Student, error) {
	if req.CourseID != nil {
		if _, err := s.repos.Courses.GetByID(ctx, *req.CourseID); err != nil {
			return nil, err
		}
	}

	student := &models.Student{
		ID:       req.StudentID,
		Year:     req.Year,
		CourseID: req.CourseID,
	}
	if err := s.repos.Students.Create(ctx, student); err != nil {
		return nil, err
	}
	return s.repos.Students.GetByID(ctx, student.ID)
}

// GetStudents lists all students
func (s *AdminService) GetStudents(ctx context.Context) ([]*models.Student, error) {
	return s.repos.Students.GetAll(ctx)
}

// GetStudent retrieves one student
func (s *AdminService) GetStudent(ctx context.Context, id string) (*models.Student, error) {
	return s.repos.Students.GetByID(ctx, id)
}

// UpdateStudent updates a student's year and course
func (s *AdminService) UpdateStudent(ctx context.Context, id string, req *dto.UpdateStudentRequest) error {
	if req.CourseID != nil {
		if _, err := s.repos.Courses.GetByID(ctx, *req.CourseID); err != nil {
			return err
		}
	}
	return s.repos.Students.Update(ctx, id, req.Year, req.CourseID)
}

// DeleteStudent removes a student record
func (s *AdminService) DeleteStudent(ctx context.Context, id string) error {
	return s.repos.Students.Delete(ctx, id)
}

// CreateModule creates a module. Both staff references are verified by
// the role guard inside the write transaction.
func (s *AdminService) CreateModule(ctx context.Context, req *dto.CreateModuleRequest) (*models.Module, error) {
	if _, err := s.repos.Courses.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	module := &models.Module{
		ID:             req.ModuleID,
		Name:           req.Name,
		CourseID:       req.CourseID,
		WelfareStaffID: req.WelfareStaffID,
		ModuleStaffID:  req.ModuleStaffID,
	}
	if err := s.repos.Modules.Create(ctx, module); err != nil {
		return nil, err
	}

	logger.Info().Str("moduleId", module.ID).Msg("Module created")
	return module, nil
}

// GetModules lists all modules
func (s *AdminService) GetModules(ctx context.Context) ([]*models.Module, error) {
	return s.repos.Modules.GetAll(ctx)
}

// GetModule retrieves one module
func (s *AdminService) GetModule(ctx context.Context, id string) (*models.Module, error) {
	return s.repos.Modules.GetByID(ctx, id)
}

// UpdateModuleStaff reassigns a module's staff members
func (s *AdminService) UpdateModuleStaff(ctx context.Context, moduleID string, req *dto.UpdateModuleStaffRequest) error {
	return s.repos.Modules.UpdateStaff(ctx, moduleID, req.WelfareStaffID, req.ModuleStaffID)
}

// DeleteModule removes a module
func (s *AdminService) DeleteModule(ctx context.Context, id string) error {
	return s.repos.Modules.Delete(ctx, id)
}

// DeleteSurvey removes a survey submission (moderation)
func (s *AdminService) DeleteSurvey(ctx context.Context, weekNo int, studentID, moduleID string) error {
	if err := s.repos.Surveys.Delete(ctx, weekNo, studentID, moduleID); err != nil {
		return err
	}
	logger.Info().Int("weekNo", weekNo).Str("studentId", studentID).
		Str("moduleId", moduleID).Msg("Survey removed by admin")
	return nil
}
