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

// StudentRepository handles student database operations
type StudentRepository struct {
	db    *pgxpool.Pool
	guard *integrity.RoleGuard
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db *pgxpool.Pool, guard *integrity.RoleGuard) *StudentRepository {
	return &StudentRepository{db: db, guard: guard}
}

// Create inserts a student record. The role check and the insert run in one
// transaction so a rejected reference leaves no partial state.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guard.CheckStudentRef(ctx, tx, "student", student.ID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO student (stud_id, year, course_id)
			VALUES ($1, $2, $3)`,
			student.ID, student.Year, student.CourseID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrStudentAlreadyExists
			}
			return fmt.Errorf("error creating student: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a student with its user details
func (r *StudentRepository) GetByID(ctx context.Context, id string) (*models.Student, error) {
	student := &models.Student{User: &models.User{}}
	err := r.db.QueryRow(ctx, `
		SELECT s.stud_id, s.year, s.course_id, u.user_name, u.role, u.email
		FROM student s
		JOIN users u ON u.user_id = s.stud_id
		WHERE s.stud_id = $1`,
		id).Scan(&student.ID, &student.Year, &student.CourseID,
		&student.User.Name, &student.User.Role, &student.User.Email)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	student.User.ID = student.ID

	return student, nil
}

// GetAll retrieves all students with user details
func (r *StudentRepository) GetAll(ctx context.Context) ([]*models.Student, error) {
	return r.queryStudents(ctx, `
		SELECT s.stud_id, s.year, s.course_id, u.user_name, u.role, u.email
		FROM student s
		JOIN users u ON u.user_id = s.stud_id
		ORDER BY s.stud_id`)
}

// GetByCourse retrieves all students enrolled in a course
func (r *StudentRepository) GetByCourse(ctx context.Context, courseID string) ([]*models.Student, error) {
	return r.queryStudents(ctx, `
		SELECT s.stud_id, s.year, s.course_id, u.user_name, u.role, u.email
		FROM student s
		JOIN users u ON u.user_id = s.stud_id
		WHERE s.course_id = $1
		ORDER BY s.stud_id`, courseID)
}

// GetByModule retrieves the students enrolled in the course a module
// belongs to, which is the audience for that module's deadlines.
func (r *StudentRepository) GetByModule(ctx context.Context, moduleID string) ([]*models.Student, error) {
	return r.queryStudents(ctx, `
		SELECT s.stud_id, s.year, s.course_id, u.user_name, u.role, u.email
		FROM student s
		JOIN users u ON u.user_id = s.stud_id
		JOIN module m ON m.course_id = s.course_id
		WHERE m.mod_id = $1
		ORDER BY s.stud_id`, moduleID)
}

func (r *StudentRepository) queryStudents(ctx context.Context, sql string, args ...any) ([]*models.Student, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student := &models.Student{User: &models.User{}}
		if err := rows.Scan(&student.ID, &student.Year, &student.CourseID,
			&student.User.Name, &student.User.Role, &student.User.Email); err != nil {
			return nil, fmt.Errorf("error scanning student: %w", err)
		}
		student.User.ID = student.ID
		students = append(students, student)
	}

	return students, rows.Err()
}

// Update changes a student's year and course enrollment
func (r *StudentRepository) Update(ctx context.Context, id string, year int, courseID *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE student
		SET year = $1, course_id = $2
		WHERE stud_id = $3`,
		year, courseID, id)
	if err != nil {
		return fmt.Errorf("error updating student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}

// Delete removes a student record. Attendance, surveys, deadlines and
// grades cascade at the database level.
func (r *StudentRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM student WHERE stud_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}
	return nil
}
