package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/Brayanhenaor/vetquestions/internal/model"
)

var _ model.OtpStore = (*OtpRepository)(nil)

type OtpRepository struct {
	db *Connection
}

func NewOtpRepository(db *Connection) *OtpRepository {
	return &OtpRepository{
		db: db,
	}
}

func (r *OtpRepository) Create(ctx context.Context, code model.OtpCode) (model.OtpCode, error) {
	query := `INSERT INTO otp_codes (user_id, code, generated_at, expires_at)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, user_id, code, generated_at, expires_at`

	var saved model.OtpCode
	err := r.db.QueryRow(ctx, query, code.UserID, code.Code, code.GeneratedAt, code.ExpiresAt).Scan(
		&saved.ID, &saved.UserID, &saved.Code, &saved.GeneratedAt, &saved.ExpiresAt,
	)
	if err != nil {
		return model.OtpCode{}, fmt.Errorf("failed to create otp code: %w", err)
	}

	return saved, nil
}

func (r *OtpRepository) GetLatestByUser(ctx context.Context, userID uuid.UUID) (model.OtpCode, error) {
	query := `SELECT id, user_id, code, generated_at, expires_at
			  FROM otp_codes WHERE user_id = $1
			  ORDER BY generated_at DESC, id DESC
			  LIMIT 1`

	var code model.OtpCode
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&code.ID, &code.UserID, &code.Code, &code.GeneratedAt, &code.ExpiresAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.OtpCode{}, model.ErrNotFound
		}
		return model.OtpCode{}, fmt.Errorf("failed to get latest otp code: %w", err)
	}

	return code, nil
}

func (r *OtpRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM otp_codes WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete otp code: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *OtpRepository) DeleteExpired(ctx context.Context, before time.Time) (int64, error) {
	query := `DELETE FROM otp_codes WHERE expires_at < $1`

	cmd, err := r.db.Exec(ctx, query, before)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired otp codes: %w", err)
	}

	return cmd.RowsAffected(), nil
}
