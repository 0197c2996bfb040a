package user

import (
	"context"
	"errors"
	"time"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/user"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"
)

const RESET_TOKEN_CONSTRAINT_NAME = "password_reset_token_pkey"

const resetTokenColumns = `token, user_id, expires_at, created_at`

type PgxResetTokenRepository struct {
	db DBTX
}

func NewPgxResetTokenRepository(db DBTX) *PgxResetTokenRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxResetTokenRepository{db: db}
}

func (r *PgxResetTokenRepository) Create(
	ctx context.Context,
	input user.CreateResetTokenInput,
) (t user.ResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO password_reset_token (token, user_id, expires_at, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+resetTokenColumns,
		string(input.Token),
		int64(input.UserID),
		input.ExpiresAt,
		input.CreatedAt,
	)
	t, err = scanResetToken(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == RESET_TOKEN_CONSTRAINT_NAME {
			return t, user.ErrResetTokenAlreadyExists
		}
	}
	return t, err
}

func (r *PgxResetTokenRepository) GetByToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (t user.ResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`SELECT `+resetTokenColumns+` FROM password_reset_token WHERE token = $1`,
		string(token),
	)
	t, err = scanResetToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, user.ErrResetTokenDoesNotExist
	}
	return t, err
}

// DeleteByToken removes the token row and returns it. The row delete is the
// consume operation: when two transactions race for the same token, only one
// DELETE reports the row, the other gets ErrResetTokenDoesNotExist.
func (r *PgxResetTokenRepository) DeleteByToken(
	ctx context.Context,
	token user.PasswordResetToken,
) (t user.ResetToken, err error) {
	row := r.db.QueryRow(
		ctx,
		`DELETE FROM password_reset_token WHERE token = $1 RETURNING `+resetTokenColumns,
		string(token),
	)
	t, err = scanResetToken(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, user.ErrResetTokenDoesNotExist
	}
	return t, err
}

func scanResetToken(row pgx.Row) (t user.ResetToken, err error) {
	var (
		token     string
		userID    int64
		expiresAt time.Time
		createdAt time.Time
	)
	err = row.Scan(&token, &userID, &expiresAt, &createdAt)
	if err != nil {
		return t, err
	}
	return user.ResetToken{
		Token:     user.PasswordResetToken(token),
		UserID:    user.ID(userID),
		ExpiresAt: expiresAt,
		CreatedAt: createdAt,
	}, nil
}
