package services

import (
	"context"
	"time"

	"github.com/mkaya/campusdesk/internal/app/auth"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/app/repositories"
)

// StudentService handles the student self-service surface. Every
// operation is owner-scoped: the policy rejects access to records that
// do not belong to the calling identity.
type StudentService struct {
	repos  *repositories.Repositories
	policy *auth.Policy
}

// NewStudentService creates a new StudentService
func NewStudentService(repos *repositories.Repositories, policy *auth.Policy) *StudentService {
	return &StudentService{repos: repos, policy: policy}
}

// GetDashboard aggregates a student's own overview
func (s *StudentService) GetDashboard(ctx context.Context, ident *auth.Identity, studentID string) (*dto.StudentDashboardResponse, error) {
	if err := s.policy.Require(ident, auth.ActionViewOwnData, studentID); err != nil {
		return nil, err
	}

	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	attendance, err := s.repos.Attendance.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	grades, err := s.repos.Grades.GetByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	upcoming, err := s.repos.Deadlines.GetUpcomingByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentDashboardResponse{
		Student: dto.StudentResponse{
			StudentID: student.ID,
			Name:      student.User.Name,
			Email:     student.User.Email,
			Year:      student.Year,
			CourseID:  student.CourseID,
		},
		AttendanceRate:    attendanceRate(attendance),
		UpcomingDeadlines: len(upcoming),
	}

	if len(grades) > 0 {
		avg := gradeAverage(grades)
		resp.AverageGrade = &avg
	}

	return resp, nil
}

// GetAttendance retrieves the student's own attendance records
func (s *StudentService) GetAttendance(ctx context.Context, ident *auth.Identity, studentID string) ([]*models.Attendance, error) {
	if err := s.policy.Require(ident, auth.ActionViewOwnData, studentID); err != nil {
		return nil, err
	}
	return s.repos.Attendance.GetByStudent(ctx, studentID)
}

// SubmitSurvey stores a weekly wellbeing survey for the calling student
func (s *StudentService) SubmitSurvey(ctx context.Context, ident *auth.Identity, studentID string, req *dto.SubmitSurveyRequest) (*models.Survey, error) {
	if err := s.policy.Require(ident, auth.ActionSubmitSurvey, studentID); err != nil {
		return nil, err
	}

	if _, err := s.repos.Modules.GetByID(ctx, req.ModuleID); err != nil {
		return nil, err
	}

	survey := &models.Survey{
		WeekNo:       req.WeekNo,
		StudentID:    studentID,
		ModuleID:     req.ModuleID,
		StressLevels: req.StressLevels,
		HoursSlept:   req.HoursSlept,
		Comments:     req.Comments,
		Date:         time.Now(),
	}
	if survey.Comments == "" {
		survey.Comments = "NO COMMENTS"
	}

	if err := s.repos.Surveys.Create(ctx, survey); err != nil {
		return nil, err
	}
	return survey, nil
}

// GetSurveys retrieves the student's own survey submissions
func (s *StudentService) GetSurveys(ctx context.Context, ident *auth.Identity, studentID string) ([]*models.Survey, error) {
	if err := s.policy.Require(ident, auth.ActionViewOwnData, studentID); err != nil {
		return nil, err
	}
	return s.repos.Surveys.GetByStudent(ctx, studentID)
}

// UpdateYear lets a student correct their own year of study
func (s *StudentService) UpdateYear(ctx context.Context, ident *auth.Identity, studentID string, year int) error {
	if err := s.policy.Require(ident, auth.ActionViewOwnData, studentID); err != nil {
		return err
	}

	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return err
	}
	return s.repos.Students.Update(ctx, studentID, year, student.CourseID)
}

// GetUpcomingDeadlines retrieves the student's unsubmitted, not yet due
// deadlines.
func (s *StudentService) GetUpcomingDeadlines(ctx context.Context, ident *auth.Identity, studentID string) ([]*models.Deadline, error) {
	if err := s.policy.Require(ident, auth.ActionViewOwnDeadlines, studentID); err != nil {
		return nil, err
	}
	return s.repos.Deadlines.GetUpcomingByStudent(ctx, studentID)
}

// GetDeadlines retrieves the student's own deadlines
func (s *StudentService) GetDeadlines(ctx context.Context, ident *auth.Identity, studentID string) ([]*models.Deadline, error) {
	if err := s.policy.Require(ident, auth.ActionViewOwnDeadlines, studentID); err != nil {
		return nil, err
	}
	return s.repos.Deadlines.GetByStudent(ctx, studentID)
}

// MarkDeadlineSubmitted flags one of the student's own deadlines as done
func (s *StudentService) MarkDeadlineSubmitted(ctx context.Context, ident *auth.Identity, deadline *models.Deadline) error {
	if err := s.policy.Require(ident, auth.ActionViewOwnDeadlines, deadline.StudentID); err != nil {
		return err
	}
	return s.repos.Deadlines.MarkSubmitted(ctx, deadline)
}

// GetGrades retrieves the student's own grades
func (s *StudentService) GetGrades(ctx context.Context, ident *auth.Identity, studentID string) ([]*models.Grade, error) {
	if err := s.policy.Require(ident, auth.ActionViewOwnGrades, studentID); err != nil {
		return nil, err
	}
	return s.repos.Grades.GetByStudent(ctx, studentID)
}

// GetModules retrieves the modules of the student's own course
func (s *StudentService) GetModules(ctx context.Context, ident *auth.Identity, studentID string) ([]*models.Module, error) {
	if err := s.policy.Require(ident, auth.ActionViewModules, ""); err != nil {
		return nil, err
	}
	if err := auth.RequireOwn(ident, studentID); err != nil {
		return nil, err
	}

	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if student.CourseID == nil {
		return nil, nil
	}
	return s.repos.Modules.GetByCourse(ctx, *student.CourseID)
}

func attendanceRate(records []*models.Attendance) float64 {
	if len(records) == 0 {
		return 0
	}
	attended := 0
	for _, r := range records {
		if !r.Missed {
			attended++
		}
	}
	return 100 * float64(attended) / float64(len(records))
}

func gradeAverage(grades []*models.Grade) float64 {
	if len(grades) == 0 {
		return 0
	}
	sum := 0
	for _, g := range grades {
		sum += g.Grade
	}
	return float64(sum) / float64(len(grades))
}
