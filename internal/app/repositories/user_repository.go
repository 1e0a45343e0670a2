package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/pkg/apperrors"
	"github.com/mkaya/campusdesk/internal/pkg/dberrors"
)

// UserRepository handles user database operations
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user. The role is written once here and no update
// path exists for it.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (user_id, user_name, role, email, hash_pass)
		VALUES ($1, $2, $3, $4, $5)`,
		user.ID, user.Name, user.Role, user.Email, user.HashPass)

	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrUserAlreadyExists
		}
		return fmt.Errorf("error creating user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	user := &models.User{}
	err := r.db.QueryRow(ctx, `
		SELECT user_id, user_name, role, email, hash_pass
		FROM users
		WHERE user_id = $1`,
		id).Scan(&user.ID, &user.Name, &user.Role, &user.Email, &user.HashPass)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return user, nil
}

// GetAll retrieves all users
func (r *UserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, `
		SELECT user_id, user_name, role, email, hash_pass
		FROM users
		ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		user := &models.User{}
		if err := rows.Scan(&user.ID, &user.Name, &user.Role, &user.Email, &user.HashPass); err != nil {
			return nil, fmt.Errorf("error scanning user: %w", err)
		}
		users = append(users, user)
	}

	return users, rows.Err()
}

// UpdateProfile updates a user's name and email. The role column is
// deliberately not part of any UPDATE statement.
func (r *UserRepository) UpdateProfile(ctx context.Context, id, name string, email *string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET user_name = $1, email = $2
		WHERE user_id = $3`,
		name, email, id)
	if err != nil {
		return fmt.Errorf("error updating user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// UpdatePassword replaces a user's credential hash
func (r *UserRepository) UpdatePassword(ctx context.Context, id, hashPass string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users
		SET hash_pass = $1
		WHERE user_id = $2`,
		hashPass, id)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}

// Delete removes a user
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrUserNotFound
	}
	return nil
}
