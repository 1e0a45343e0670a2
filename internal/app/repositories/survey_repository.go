package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaya/campusdesk/internal/app/integrity"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/db"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	"github.com/mkaya/campusdesk/internal/pkg/dberrors"
)

// SurveyRepository handles wellbeing survey database operations
type SurveyRepository struct {
	db    *pgxpool.Pool
	guard *integrity.RoleGuard
}

// NewSurveyRepository creates a new SurveyRepository
func NewSurveyRepository(db *pgxpool.Pool, guard *integrity.RoleGuard) *SurveyRepository {
	return &SurveyRepository{db: db, guard: guard}
}

// Create stores a survey submission
func (r *SurveyRepository) Create(ctx context.Context, survey *models.Survey) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guard.CheckStudentRef(ctx, tx, "surveys", survey.StudentID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO surveys (week_no, stud_id, mod_id, stress_levels, hours_slept, comments, date)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			survey.WeekNo, survey.StudentID, survey.ModuleID,
			survey.StressLevels, survey.HoursSlept, survey.Comments, survey.Date)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrSurveyAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NewBadRequestError("referenced student or module does not exist")
			}
			return fmt.Errorf("error creating survey: %w", err)
		}
		return nil
	})
}

// GetByStudent retrieves all surveys submitted by a student
func (r *SurveyRepository) GetByStudent(ctx context.Context, studentID string) ([]*models.Survey, error) {
	return r.querySurveys(ctx, `
		SELECT week_no, stud_id, mod_id, stress_levels, hours_slept, comments, date
		FROM surveys
		WHERE stud_id = $1
		ORDER BY week_no`, studentID)
}

// GetByModule retrieves all surveys submitted within a module
func (r *SurveyRepository) GetByModule(ctx context.Context, moduleID string) ([]*models.Survey, error) {
	return r.querySurveys(ctx, `
		SELECT week_no, stud_id, mod_id, stress_levels, hours_slept, comments, date
		FROM surveys
		WHERE mod_id = $1
		ORDER BY week_no, stud_id`, moduleID)
}

// GetByStudentModule retrieves a student's surveys within one module
func (r *SurveyRepository) GetByStudentModule(ctx context.Context, studentID, moduleID string) ([]*models.Survey, error) {
	return r.querySurveys(ctx, `
		SELECT week_no, stud_id, mod_id, stress_levels, hours_slept, comments, date
		FROM surveys
		WHERE stud_id = $1 AND mod_id = $2
		ORDER BY week_no`, studentID, moduleID)
}

func (r *SurveyRepository) querySurveys(ctx context.Context, sql string, args ...any) ([]*models.Survey, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing surveys: %w", err)
	}
	defer rows.Close()

	var surveys []*models.Survey
	for rows.Next() {
		survey := &models.Survey{}
		if err := rows.Scan(&survey.WeekNo, &survey.StudentID, &survey.ModuleID,
			&survey.StressLevels, &survey.HoursSlept, &survey.Comments, &survey.Date); err != nil {
			return nil, fmt.Errorf("error scanning survey: %w", err)
		}
		surveys = append(surveys, survey)
	}

	return surveys, rows.Err()
}

// Delete removes a survey submission
func (r *SurveyRepository) Delete(ctx context.Context, weekNo int, studentID, moduleID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM surveys
		WHERE week_no = $1 AND stud_id = $2 AND mod_id = $3`,
		weekNo, studentID, moduleID)
	if err != nil {
		return fmt.Errorf("error deleting survey: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrSurveyNotFound
	}
	return nil
}
