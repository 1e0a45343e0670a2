package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaya/campusdesk/internal/app/integrity"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/db"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	"github.com/mkaya/campusdesk/internal/pkg/dberrors"
)

// GradeRepository handles module grade database operations
type GradeRepository struct {
	db    *pgxpool.Pool
	guard *integrity.RoleGuard
}

// NewGradeRepository creates a new GradeRepository
func NewGradeRepository(db *pgxpool.Pool, guard *integrity.RoleGuard) *GradeRepository {
	return &GradeRepository{db: db, guard: guard}
}

// Create records a student's grade for a module
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guard.CheckStudentRef(ctx, tx, "module_grades", grade.StudentID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO module_grades (stud_id, mod_id, grade)
			VALUES ($1, $2, $3)`,
			grade.StudentID, grade.ModuleID, grade.Grade)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrGradeAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NewBadRequestError("referenced student or module does not exist")
			}
			return fmt.Errorf("error creating grade: %w", err)
		}
		return nil
	})
}

// Update changes a student's grade for a module
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guard.CheckStudentRef(ctx, tx, "module_grades", grade.StudentID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE module_grades
			SET grade = $1
			WHERE stud_id = $2 AND mod_id = $3`,
			grade.Grade, grade.StudentID, grade.ModuleID)
		if err != nil {
			return fmt.Errorf("error updating grade: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrGradeNotFound
		}
		return nil
	})
}

// GetByStudent retrieves all grades for a student
func (r *GradeRepository) GetByStudent(ctx context.Context, studentID string) ([]*models.Grade, error) {
	return r.queryGrades(ctx, `
		SELECT stud_id, mod_id, grade
		FROM module_grades
		WHERE stud_id = $1
		ORDER BY mod_id`, studentID)
}

// GetByModule retrieves all grades recorded within a module
func (r *GradeRepository) GetByModule(ctx context.Context, moduleID string) ([]*models.Grade, error) {
	return r.queryGrades(ctx, `
		SELECT stud_id, mod_id, grade
		FROM module_grades
		WHERE mod_id = $1
		ORDER BY stud_id`, moduleID)
}

// GetByStudentModule retrieves one grade row
func (r *GradeRepository) GetByStudentModule(ctx context.Context, studentID, moduleID string) (*models.Grade, error) {
	grade := &models.Grade{}
	err := r.db.QueryRow(ctx, `
		SELECT stud_id, mod_id, grade
		FROM module_grades
		WHERE stud_id = $1 AND mod_id = $2`,
		studentID, moduleID).Scan(&grade.StudentID, &grade.ModuleID, &grade.Grade)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}
	return grade, nil
}

func (r *GradeRepository) queryGrades(ctx context.Context, sql string, args ...any) ([]*models.Grade, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade := &models.Grade{}
		if err := rows.Scan(&grade.StudentID, &grade.ModuleID, &grade.Grade); err != nil {
			return nil, fmt.Errorf("error scanning grade: %w", err)
		}
		grades = append(grades, grade)
	}

	return grades, rows.Err()
}

// Delete removes a grade row
func (r *GradeRepository) Delete(ctx context.Context, studentID, moduleID string) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM module_grades
		WHERE stud_id = $1 AND mod_id = $2`,
		studentID, moduleID)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}
	return nil
}
