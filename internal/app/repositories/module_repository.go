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

// ModuleRepository handles module database operations
type ModuleRepository struct {
	db    *pgxpool.Pool
	guard *integrity.RoleGuard
}

// NewModuleRepository creates a new ModuleRepository
func NewModuleRepository(db *pgxpool.Pool, guard *integrity.RoleGuard) *ModuleRepository {
	return &ModuleRepository{db: db, guard: guard}
}

// Create inserts a module after verifying both staff references carry the
// role their column demands. Check order is fixed, welfare staff first, so
// a double mismatch always reports the same violation.
func (r *ModuleRepository) Create(ctx context.Context, module *models.Module) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guard.CheckModuleStaff(ctx, tx, module.WelfareStaffID, module.ModuleStaffID); err != nil {
			return err
		}

		_, err := tx.Exec(ctx, `
			INSERT INTO module (mod_id, mod_name, course_id, welfare_staff_id, module_staff_id)
			VALUES ($1, $2, $3, $4, $5)`,
			module.ID, module.Name, module.CourseID, module.WelfareStaffID, module.ModuleStaffID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrModuleAlreadyExists
			}
			if dberrors.IsForeignKeyViolation(err) {
				return apperrors.NewBadRequestError("referenced course or staff does not exist")
			}
			return fmt.Errorf("error creating module: %w", err)
		}
		return nil
	})
}

// GetByID retrieves a module by ID
func (r *ModuleRepository) GetByID(ctx context.Context, id string) (*models.Module, error) {
	module := &models.Module{}
	err := r.db.QueryRow(ctx, `
		SELECT mod_id, mod_name, course_id, welfare_staff_id, module_staff_id
		FROM module
		WHERE mod_id = $1`,
		id).Scan(&module.ID, &module.Name, &module.CourseID, &module.WelfareStaffID, &module.ModuleStaffID)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrModuleNotFound
		}
		return nil, fmt.Errorf("error retrieving module: %w", err)
	}

	return module, nil
}

// GetAll retrieves all modules
func (r *ModuleRepository) GetAll(ctx context.Context) ([]*models.Module, error) {
	return r.queryModules(ctx, `
		SELECT mod_id, mod_name, course_id, welfare_staff_id, module_staff_id
		FROM module
		ORDER BY mod_id`)
}

// GetByCourse retrieves all modules belonging to a course
func (r *ModuleRepository) GetByCourse(ctx context.Context, courseID string) ([]*models.Module, error) {
	return r.queryModules(ctx, `
		SELECT mod_id, mod_name, course_id, welfare_staff_id, module_staff_id
		FROM module
		WHERE course_id = $1
		ORDER BY mod_id`, courseID)
}

// GetByStaff retrieves the modules a staff member is assigned to, in
// either capacity.
func (r *ModuleRepository) GetByStaff(ctx context.Context, staffID string) ([]*models.Module, error) {
	return r.queryModules(ctx, `
		SELECT mod_id, mod_name, course_id, welfare_staff_id, module_staff_id
		FROM module
		WHERE welfare_staff_id = $1 OR module_staff_id = $1
		ORDER BY mod_id`, staffID)
}

func (r *ModuleRepository) queryModules(ctx context.Context, sql string, args ...any) ([]*models.Module, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing modules: %w", err)
	}
	defer rows.Close()

	var modules []*models.Module
	for rows.Next() {
		module := &models.Module{}
		if err := rows.Scan(&module.ID, &module.Name, &module.CourseID,
			&module.WelfareStaffID, &module.ModuleStaffID); err != nil {
			return nil, fmt.Errorf("error scanning module: %w", err)
		}
		modules = append(modules, module)
	}

	return modules, rows.Err()
}

// UpdateStaff reassigns a module's staff. Both references are re-verified
// inside the transaction before the row changes.
func (r *ModuleRepository) UpdateStaff(ctx context.Context, moduleID, welfareStaffID, moduleStaffID string) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if err := r.guard.CheckModuleStaff(ctx, tx, welfareStaffID, moduleStaffID); err != nil {
			return err
		}

		tag, err := tx.Exec(ctx, `
			UPDATE module
			SET welfare_staff_id = $1, module_staff_id = $2
			WHERE mod_id = $3`,
			welfareStaffID, moduleStaffID, moduleID)
		if err != nil {
			return fmt.Errorf("error updating module staff: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrModuleNotFound
		}
		return nil
	})
}

// Delete removes a module. Dependent attendance, surveys, deadlines and
// grades cascade at the database level.
func (r *ModuleRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM module WHERE mod_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting module: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrModuleNotFound
	}
	return nil
}
