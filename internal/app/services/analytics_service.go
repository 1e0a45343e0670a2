package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaya/campusdesk/internal/app/auth"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	"github.com/mkaya/campusdesk/internal/app/repositories"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
)

// Risk thresholds. A student is flagged when any figure crosses its
// threshold.
const (
	riskStressThreshold = 4.0
	riskSleepThreshold  = 6.0
	riskGradeThreshold  = 50
)

// AnalyticsService aggregates attendance, grade and wellbeing figures
// per module. Read-only; queries run directly against the pool.
type AnalyticsService struct {
	db     *pgxpool.Pool
	repos  *repositories.Repositories
	policy *auth.Policy
}

// NewAnalyticsService creates a new AnalyticsService
func NewAnalyticsService(db *pgxpool.Pool, repos *repositories.Repositories, policy *auth.Policy) *AnalyticsService {
	return &AnalyticsService{db: db, repos: repos, policy: policy}
}

// checkModuleAccess verifies the identity is assigned to the module in
// either staff capacity. Admin passes.
func (s *AnalyticsService) checkModuleAccess(ctx context.Context, ident *auth.Identity, moduleID string) (*models.Module, error) {
	module, err := s.repos.Modules.GetByID(ctx, moduleID)
	if err != nil {
		return nil, err
	}
	if ident.Role == models.RoleAdmin {
		return module, nil
	}
	if module.ModuleStaffID != ident.ID && module.WelfareStaffID != ident.ID {
		return nil, apperrors.ErrNotAssignedToModule
	}
	return module, nil
}

// GetModuleAnalytics aggregates a module's overall figures
func (s *AnalyticsService) GetModuleAnalytics(ctx context.Context, ident *auth.Identity, moduleID string) (*dto.ModuleAnalyticsResponse, error) {
	if err := s.policy.Require(ident, auth.ActionViewAttendance, ""); err != nil {
		return nil, err
	}
	module, err := s.checkModuleAccess(ctx, ident, moduleID)
	if err != nil {
		return nil, err
	}

	resp := &dto.ModuleAnalyticsResponse{
		ModuleID:   module.ID,
		ModuleName: module.Name,
	}

	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*)
		FROM student s
		JOIN module m ON m.course_id = s.course_id
		WHERE m.mod_id = $1`,
		moduleID).Scan(&resp.StudentCount)
	if err != nil {
		return nil, fmt.Errorf("error counting module students: %w", err)
	}

	var total, missed int
	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE missed)
		FROM attendance
		WHERE mod_id = $1`,
		moduleID).Scan(&total, &missed)
	if err != nil {
		return nil, fmt.Errorf("error aggregating attendance: %w", err)
	}
	if total > 0 {
		resp.AttendanceRate = 100 * float64(total-missed) / float64(total)
	}

	err = s.db.QueryRow(ctx, `
		SELECT AVG(grade)
		FROM module_grades
		WHERE mod_id = $1`,
		moduleID).Scan(&resp.AverageGrade)
	if err != nil {
		return nil, fmt.Errorf("error aggregating grades: %w", err)
	}

	// Wellbeing figures are only included for identities allowed to see
	// surveys; module staff get attendance and grades without them.
	if s.policy.Check(ident, auth.ActionViewSurveys, "") {
		err = s.db.QueryRow(ctx, `
			SELECT AVG(stress_levels), AVG(hours_slept)
			FROM surveys
			WHERE mod_id = $1`,
			moduleID).Scan(&resp.AverageStress, &resp.AverageSleep)
		if err != nil {
			return nil, fmt.Errorf("error aggregating surveys: %w", err)
		}
	}

	return resp, nil
}

// GetWeeklyTrends aggregates a module's figures per teaching week
func (s *AnalyticsService) GetWeeklyTrends(ctx context.Context, ident *auth.Identity, moduleID string) ([]*dto.WeeklyTrendPoint, error) {
	if err := s.policy.Require(ident, auth.ActionViewAttendance, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}

	points := make(map[int]*dto.WeeklyTrendPoint)

	rows, err := s.db.Query(ctx, `
		SELECT week_no, COUNT(*), COUNT(*) FILTER (WHERE missed)
		FROM attendance
		WHERE mod_id = $1
		GROUP BY week_no`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating weekly attendance: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var week, total, missed int
		if err := rows.Scan(&week, &total, &missed); err != nil {
			return nil, fmt.Errorf("error scanning weekly attendance: %w", err)
		}
		point := &dto.WeeklyTrendPoint{WeekNo: week}
		if total > 0 {
			point.AttendanceRate = 100 * float64(total-missed) / float64(total)
		}
		points[week] = point
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	surveyRows, err := s.db.Query(ctx, `
		SELECT week_no, AVG(stress_levels), AVG(hours_slept)
		FROM surveys
		WHERE mod_id = $1
		GROUP BY week_no`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("error aggregating weekly surveys: %w", err)
	}
	defer surveyRows.Close()
	for surveyRows.Next() {
		var week int
		var stress, sleep *float64
		if err := surveyRows.Scan(&week, &stress, &sleep); err != nil {
			return nil, fmt.Errorf("error scanning weekly surveys: %w", err)
		}
		point, ok := points[week]
		if !ok {
			point = &dto.WeeklyTrendPoint{WeekNo: week}
			points[week] = point
		}
		point.AverageStress = stress
		point.AverageSleep = sleep
	}
	if err := surveyRows.Err(); err != nil {
		return nil, err
	}

	trend := make([]*dto.WeeklyTrendPoint, 0, len(points))
	for _, p := range points {
		trend = append(trend, p)
	}
	sort.Slice(trend, func(i, j int) bool { return trend[i].WeekNo < trend[j].WeekNo })

	return trend, nil
}

// GetAtRiskStudents flags students whose recent figures crossed a risk
// threshold, with the factors that triggered each flag.
func (s *AnalyticsService) GetAtRiskStudents(ctx context.Context, ident *auth.Identity, moduleID string) ([]*dto.AtRiskStudentResponse, error) {
	if err := s.policy.Require(ident, auth.ActionViewSurveys, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}

	rows, err := s.db.Query(ctx, `
		SELECT s.stud_id, u.user_name,
		       AVG(sv.stress_levels), AVG(sv.hours_slept),
		       MAX(g.grade)
		FROM student s
		JOIN users u ON u.user_id = s.stud_id
		JOIN module m ON m.course_id = s.course_id
		LEFT JOIN surveys sv ON sv.stud_id = s.stud_id AND sv.mod_id = m.mod_id
		LEFT JOIN module_grades g ON g.stud_id = s.stud_id AND g.mod_id = m.mod_id
		WHERE m.mod_id = $1
		GROUP BY s.stud_id, u.user_name
		ORDER BY s.stud_id`, moduleID)
	if err != nil {
		return nil, fmt.Errorf("error querying at-risk students: %w", err)
	}
	defer rows.Close()

	return collectAtRiskStudents(rows)
}

// GetAllAtRiskStudents flags students across all modules rather than one.
// Welfare staff see students on the courses they cover; admin sees every
// student.
func (s *AnalyticsService) GetAllAtRiskStudents(ctx context.Context, ident *auth.Identity) ([]*dto.AtRiskStudentResponse, error) {
	if err := s.policy.Require(ident, auth.ActionViewSurveys, ""); err != nil {
		return nil, err
	}

	query := `
		SELECT s.stud_id, u.user_name,
		       AVG(sv.stress_levels), AVG(sv.hours_slept),
		       MAX(g.grade)
		FROM student s
		JOIN users u ON u.user_id = s.stud_id
		LEFT JOIN surveys sv ON sv.stud_id = s.stud_id
		LEFT JOIN module_grades g ON g.stud_id = s.stud_id
		GROUP BY s.stud_id, u.user_name
		ORDER BY s.stud_id`
	var args []any
	if ident.Role != models.RoleAdmin {
		query = `
		SELECT s.stud_id, u.user_name,
		       AVG(sv.stress_levels), AVG(sv.hours_slept),
		       MAX(g.grade)
		FROM student s
		JOIN users u ON u.user_id = s.stud_id
		LEFT JOIN surveys sv ON sv.stud_id = s.stud_id
		LEFT JOIN module_grades g ON g.stud_id = s.stud_id
		WHERE EXISTS (
			SELECT 1 FROM module m
			WHERE m.course_id = s.course_id AND m.welfare_staff_id = $1)
		GROUP BY s.stud_id, u.user_name
		ORDER BY s.stud_id`
		args = append(args, ident.ID)
	}

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying at-risk students: %w", err)
	}
	defer rows.Close()

	return collectAtRiskStudents(rows)
}

// collectAtRiskStudents scans aggregated figures and keeps only students
// with at least one risk factor.
func collectAtRiskStudents(rows pgx.Rows) ([]*dto.AtRiskStudentResponse, error) {
	var flagged []*dto.AtRiskStudentResponse
	for rows.Next() {
		var studentID, name string
		var avgStress, avgSleep *float64
		var grade *int
		if err := rows.Scan(&studentID, &name, &avgStress, &avgSleep, &grade); err != nil {
			return nil, fmt.Errorf("error scanning at-risk student: %w", err)
		}

		factors := riskFactors(avgStress, avgSleep, grade)
		if len(factors) == 0 {
			continue
		}
		flagged = append(flagged, &dto.AtRiskStudentResponse{
			StudentID:   studentID,
			Name:        name,
			RiskFactors: factors,
		})
	}

	return flagged, rows.Err()
}

// GetStudentReport builds a welfare report for one student within one
// module.
func (s *AnalyticsService) GetStudentReport(ctx context.Context, ident *auth.Identity, moduleID, studentID string) (*dto.StudentReportResponse, error) {
	if err := s.policy.Require(ident, auth.ActionViewSurveys, ""); err != nil {
		return nil, err
	}
	if _, err := s.checkModuleAccess(ctx, ident, moduleID); err != nil {
		return nil, err
	}

	student, err := s.repos.Students.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	resp := &dto.StudentReportResponse{
		StudentID: student.ID,
		Name:      student.User.Name,
		ModuleID:  moduleID,
	}

	var total, missed int
	err = s.db.QueryRow(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE missed)
		FROM attendance
		WHERE mod_id = $1 AND stud_id = $2`,
		moduleID, studentID).Scan(&total, &missed)
	if err != nil {
		return nil, fmt.Errorf("error aggregating student attendance: %w", err)
	}
	if total > 0 {
		resp.AttendanceRate = 100 * float64(total-missed) / float64(total)
	}

	err = s.db.QueryRow(ctx, `
		SELECT AVG(grade)
		FROM module_grades
		WHERE mod_id = $1 AND stud_id = $2`,
		moduleID, studentID).Scan(&resp.AverageGrade)
	if err != nil {
		return nil, fmt.Errorf("error aggregating student grades: %w", err)
	}

	err = s.db.QueryRow(ctx, `
		SELECT AVG(stress_levels), AVG(hours_slept)
		FROM surveys
		WHERE mod_id = $1 AND stud_id = $2`,
		moduleID, studentID).Scan(&resp.AverageStress, &resp.AverageSleep)
	if err != nil {
		return nil, fmt.Errorf("error aggregating student surveys: %w", err)
	}

	var grade *int
	if resp.AverageGrade != nil {
		g := int(*resp.AverageGrade)
		grade = &g
	}
	resp.RiskFactors = riskFactors(resp.AverageStress, resp.AverageSleep, grade)

	return resp, nil
}

// riskFactors classifies a student's aggregated figures against the risk
// thresholds. Missing figures contribute no factor.
func riskFactors(avgStress, avgSleep *float64, grade *int) []string {
	var factors []string
	if avgStress != nil && *avgStress >= riskStressThreshold {
		factors = append(factors, "high stress")
	}
	if avgSleep != nil && *avgSleep <= riskSleepThreshold {
		factors = append(factors, "low sleep")
	}
	if grade != nil && *grade <= riskGradeThreshold {
		factors = append(factors, "low grade")
	}
	return factors
}
