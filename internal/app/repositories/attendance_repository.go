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

// AttendanceRepository handles attendance database operations
type AttendanceRepository struct {
	db    *pgxpool.Pool
	guard *integrity.RoleGuard
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *pgxpool.Pool, guard *integrity.RoleGuard) *AttendanceRepository {
	return &AttendanceRepository{db: db, guard: guard}
}

// Create records a weekly attendance entry for a student
func (r *AttendanceRepository) Create(ctx context.Context, att *models.Attendance) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guard.CheckStudentRef(ctx, tx, "attendance", att.StudentID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO attendance (week_no, mod_id, stud_id, date, missed)
			VALUES ($1, $2, $3, $4, $5)`,
			att.WeekNo, att.ModuleID, att.StudentID, att.Date, att.Missed)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrAttendanceAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NewBadRequestError("referenced student or module does not exist")
			}
			return fmt.Errorf("error creating attendance record: %w", err)
		}
		return nil
	})
}

// Update changes the missed flag of an existing attendance record
func (r *AttendanceRepository) Update(ctx context.Context, att *models.Attendance) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guard.CheckStudentRef(ctx, tx, "attendance", att.StudentID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE attendance
			SET week_no = $1, missed = $2
			WHERE mod_id = $3 AND stud_id = $4 AND date = $5`,
			att.WeekNo, att.Missed, att.ModuleID, att.StudentID, att.Date)
		if err != nil {
			return fmt.Errorf("error updating attendance record: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrAttendanceNotFound
		}
		return nil
	})
}

// GetByStudent retrieves all attendance records for a student
func (r *AttendanceRepository) GetByStudent(ctx context.Context, studentID string) ([]*models.Attendance, error) {
	return r.queryAttendance(ctx, `
		SELECT week_no, mod_id, stud_id, date, missed
		FROM attendance
		WHERE stud_id = $1
		ORDER BY date`, studentID)
}

// GetByStudentModule retrieves a student's attendance within one module
func (r *AttendanceRepository) GetByStudentModule(ctx context.Context, studentID, moduleID string) ([]*models.Attendance, error) {
	return r.queryAttendance(ctx, `
		SELECT week_no, mod_id, stud_id, date, missed
		FROM attendance
		WHERE stud_id = $1 AND mod_id = $2
		ORDER BY date`, studentID, moduleID)
}

// GetByModule retrieves all attendance records within a module
func (r *AttendanceRepository) GetByModule(ctx context.Context, moduleID string) ([]*models.Attendance, error) {
	return r.queryAttendance(ctx, `
		SELECT week_no, mod_id, stud_id, date, missed
		FROM attendance
		WHERE mod_id = $1
		ORDER BY stud_id, date`, moduleID)
}

func (r *AttendanceRepository) queryAttendance(ctx context.Context, sql string, args ...any) ([]*models.Attendance, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing attendance: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		att := &models.Attendance{}
		if err := rows.Scan(&att.WeekNo, &att.ModuleID, &att.StudentID, &att.Date, &att.Missed); err != nil {
			return nil, fmt.Errorf("error scanning attendance: %w", err)
		}
		records = append(records, att)
	}

	return records, rows.Err()
}

// Delete removes an attendance record
func (r *AttendanceRepository) Delete(ctx context.Context, att *models.Attendance) error {
	tag, err := r.db.Exec(ctx, `
		DELETE FROM attendance
		WHERE mod_id = $1 AND stud_id = $2 AND date = $3`,
		att.ModuleID, att.StudentID, att.Date)
	if err != nil {
		return fmt.Errorf("error deleting attendance record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}
	return nil
}
