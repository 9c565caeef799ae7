package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

var _ model.UserStore = (*UserRepository)(nil)

const userColumns = `id, full_name, username, email, is_veterinary, password_hash, password_salt, created_at, updated_at`

type UserRepository struct {
	db *Connection
}

func NewUserRepository(db *Connection) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`

	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetRoles(ctx context.Context, userID uuid.UUID) ([]string, error) {
	query := `SELECT r.name FROM roles r
			  JOIN user_roles ur ON ur.role_id = r.id
			  WHERE ur.user_id = $1
			  ORDER BY r.name`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query user roles: %w", err)
	}

	roles, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to read user roles: %w", err)
	}

	return roles, nil
}

// Create inserts the user and its role membership in one transaction.
func (r *UserRepository) Create(ctx context.Context, user model.User, role model.Role) (model.User, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	insertUser := `INSERT INTO users (id, full_name, username, email, is_veterinary, password_hash, password_salt, created_at, updated_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			  RETURNING ` + userColumns

	saved, err := scanUser(tx.QueryRow(ctx, insertUser,
		user.ID, user.FullName, user.Username, user.Email, user.IsVeterinary,
		user.PasswordHash, user.PasswordSalt, user.CreatedAt, user.UpdatedAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return model.User{}, model.ErrAlreadyExists
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	assignRole := `INSERT INTO user_roles (user_id, role_id)
			  SELECT $1, id FROM roles WHERE name = $2`

	cmd, err := tx.Exec(ctx, assignRole, saved.ID, string(role))
	if err != nil {
		return model.User{}, fmt.Errorf("failed to assign role: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.User{}, fmt.Errorf("failed to assign role %q: %w", role, model.ErrNotFound)
	}

	if err := tx.Commit(ctx); err != nil {
		return model.User{}, fmt.Errorf("failed to commit user creation: %w", err)
	}

	return saved, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.FullName, &user.Username, &user.Email, &user.IsVeterinary,
		&user.PasswordHash, &user.PasswordSalt, &user.CreatedAt, &user.UpdatedAt,
	)
	return user, err
}
