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

// DeadlineRepository handles assessment deadline database operations
type DeadlineRepository struct {
	db    *pgxpool.Pool
	guard *integrity.RoleGuard
}

// NewDeadlineRepository creates a new DeadlineRepository
func NewDeadlineRepository(db *pgxpool.Pool, guard *integrity.RoleGuard) *DeadlineRepository {
	return &DeadlineRepository{db: db, guard: guard}
}

// Create inserts a deadline for a single student
func (r *DeadlineRepository) Create(ctx context.Context, deadline *models.Deadline) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		return r.createInTx(ctx, tx, deadline)
	})
}

// CreateForStudents fans a deadline out to every given student in one
// transaction. Either all rows land or none do.
func (r *DeadlineRepository) CreateForStudents(ctx context.Context, deadline *models.Deadline, studentIDs []string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, studentID := range studentIDs {
			d := *deadline
			d.StudentID = studentID
			if err := r.createInTx(ctx, tx, &d); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *DeadlineRepository) createInTx(ctx context.Context, tx pgx.Tx, deadline *models.Deadline) error {
	if err := r.guard.CheckStudentRef(ctx, tx, "deadlines", deadline.StudentID); err != nil {
		return err
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO deadlines (stud_id, mod_id, week_no, ass_name, due_date, submitted)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		deadline.StudentID, deadline.ModuleID, deadline.WeekNo,
		deadline.AssessmentName, deadline.DueDate, deadline.Submitted)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDeadlineAlreadyExists
		}
		if dberrors.IsForeignKeyViolation(err) {
			return apperrors.NewBadRequestError("referenced student or module does not exist")
		}
		return fmt.Errorf("error creating deadline: %w", err)
	}
	return nil
}

// MarkSubmitted flags a deadline as submitted
func (r *DeadlineRepository) MarkSubmitted(ctx context.Context, deadline *models.Deadline) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE deadlines
		SET submitted = TRUE
		WHERE stud_id = $1 AND mod_id = $2 AND ass_name = $3 AND due_date = $4`,
		deadline.StudentID, deadline.ModuleID, deadline.AssessmentName, deadline.DueDate)
	if err != nil {
		return fmt.Errorf("error updating deadline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDeadlineNotFound
	}
	return nil
}

// GetByStudent retrieves all deadlines for a student
func (r *DeadlineRepository) GetByStudent(ctx context.Context, studentID string) ([]*models.Deadline, error) {
	return r.queryDeadlines(ctx, `
		SELECT stud_id, mod_id, week_no, ass_name, due_date, submitted
		FROM deadlines
		WHERE stud_id = $1
		ORDER BY due_date`, studentID)
}

// GetByStudentModule retrieves a student's deadlines within one module
func (r *DeadlineRepository) GetByStudentModule(ctx context.Context, studentID, moduleID string) ([]*models.Deadline, error) {
	return r.queryDeadlines(ctx, `
		SELECT stud_id, mod_id, week_no, ass_name, due_date, submitted
		FROM deadlines
		WHERE stud_id = $1 AND mod_id = $2
		ORDER BY due_date`, studentID, moduleID)
}

// GetByModule retrieves all deadlines within a module
func (r *DeadlineRepository) GetByModule(ctx context.Context, moduleID string) ([]*models.Deadline, error) {
	return r.queryDeadlines(ctx, `
		SELECT stud_id, mod_id, week_no, ass_name, due_date, submitted
		FROM deadlines
		WHERE mod_id = $1
		ORDER BY due_date, stud_id`, moduleID)
}

// GetUpcomingByStudent retrieves a student's unsubmitted deadlines that
// are not yet past due.
func (r *DeadlineRepository) GetUpcomingByStudent(ctx context.Context, studentID string) ([]*models.Deadline, error) {
	return r.queryDeadlines(ctx, `
		SELECT stud_id, mod_id, week_no, ass_name, due_date, submitted
		FROM deadlines
		WHERE stud_id = $1 AND submitted = FALSE AND due_date >= CURRENT_DATE
		ORDER BY due_date`, studentID)
}

func (r *DeadlineRepository) queryDeadlines(ctx context.Context, sql string, args ...any) ([]*models.Deadline, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing deadlines: %w", err)
	}
	defer rows.Close()

	var deadlines []*models.Deadline
	for rows.Next() {
		deadline := &models.Deadline{}
		if err := rows.Scan(&deadline.StudentID, &deadline.ModuleID, &deadline.WeekNo,
			&deadline.AssessmentName, &deadline.DueDate, &deadline.Submitted); err != nil {
			return nil, fmt.Errorf("error scanning deadline: %w", err)
		}
		deadlines = append(deadlines, deadline)
	}

	return deadlines, rows.Err()
}

// Delete removes a deadline
func (r *DeadlineRepository) Delete(ctx context.Context, deadline *models.Deadline) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM deadlines
		WHERE stud_id = $1 AND mod_id = $2 AND ass_name = $3 AND due_date = $4`,
		deadline.StudentID, deadline.ModuleID, deadline.AssessmentName, deadline.DueDate)
	if err != nil {
		return fmt.Errorf("error deleting deadline: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrDeadlineNotFound
	}
	return nil
}
