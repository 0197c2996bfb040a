package user

import (
	"context"
	"database/sql"
	"errors"
	"time"
	c "userapi/internal/core/domain/common"
	e "userapi/internal/core/domain/errors"
	"userapi/internal/core/domain/user"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgtype"
	"github.com/jackc/pgx/v4"
)

const PG_UNIQUE_CONSTRAINT_ERR_CODE = "23505"
const EMAIL_CONSTRAINT_NAME = "user_email_idx"

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so the repositories
// work standalone and inside a unit of work.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...interface{}) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

const userColumns = `id, email, username, password_hash, created_at, last_login_at`

type PgxUserRepository struct {
	db DBTX
}

func NewPgxRepository(db DBTX) *PgxUserRepository {
	if db == nil {
		panic(e.NewNilArgumentError("db"))
	}
	return &PgxUserRepository{db: db}
}

func (r *PgxUserRepository) Create(ctx context.Context, input user.CreateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`INSERT INTO "user" (email, username, password_hash, created_at)
		 VALUES ($1, $2, $3, $4)
		 RETURNING `+userColumns,
		string(input.Email),
		string(input.Username),
		string(input.PasswordHash),
		input.CreatedAt,
	)
	u, err = scanUser(row)

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == PG_UNIQUE_CONSTRAINT_ERR_CODE && pgErr.ConstraintName == EMAIL_CONSTRAINT_NAME {
			return u, user.ErrEmailAlreadyExists
		}
	}
	if err != nil {
		return u, err
	}
	if err := u.Validate(); err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByID(ctx context.Context, id user.ID) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE id = $1`, int64(id))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) GetByEmail(ctx context.Context, email c.Email) (u user.User, err error) {
	row := r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM "user" WHERE email = $1`, string(email))
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) List(ctx context.Context, query user.ListUsersQuery) ([]user.User, error) {
	rows, err := r.db.Query(
		ctx,
		`SELECT `+userColumns+` FROM "user"
		 WHERE ($1::text IS NULL OR username ILIKE '%' || $1 || '%')
		 ORDER BY id
		 LIMIT NULLIF($2::bigint, 0) OFFSET $3`,
		encodeUsernameFilter(query.UsernameContains),
		int64(query.Limit),
		int64(query.Offset),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]user.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *PgxUserRepository) Count(ctx context.Context, query user.ListUsersQuery) (uint, error) {
	var count int64
	err := r.db.QueryRow(
		ctx,
		`SELECT COUNT(*) FROM "user"
		 WHERE ($1::text IS NULL OR username ILIKE '%' || $1 || '%')`,
		encodeUsernameFilter(query.UsernameContains),
	).Scan(&count)
	if err != nil {
		return 0, err
	}
	return uint(count), nil
}

func (r *PgxUserRepository) Update(ctx context.Context, input user.UpdateUserInput) (u user.User, err error) {
	row := r.db.QueryRow(
		ctx,
		`UPDATE "user"
		 SET username = CASE WHEN $2 THEN $3 ELSE username END
		 WHERE id = $1
		 RETURNING `+userColumns,
		int64(input.ID),
		input.DoUsernameUpdate,
		string(input.Username),
	)
	u, err = scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return u, user.ErrUserDoesNotExist
	}
	if err != nil {
		return u, err
	}
	return u, nil
}

func (r *PgxUserRepository) SetPassword(ctx context.Context, id user.ID, password user.PasswordHash) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET password_hash = $2 WHERE id = $1`,
		int64(id),
		string(password),
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) SetLastLoginAt(ctx context.Context, id user.ID, at time.Time) error {
	tag, err := r.db.Exec(
		ctx,
		`UPDATE "user" SET last_login_at = $2 WHERE id = $1`,
		int64(id),
		at,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func (r *PgxUserRepository) Delete(ctx context.Context, id user.ID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM "user" WHERE id = $1`, int64(id))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return user.ErrUserDoesNotExist
	}
	return nil
}

func encodeUsernameFilter(filter c.Optional[string]) sql.NullString {
	return sql.NullString{String: filter.Value, Valid: filter.IsPresent}
}

func scanUser(row pgx.Row) (u user.User, err error) {
	var (
		id           int64
		email        string
		username     string
		passwordHash string
		createdAt    time.Time
		lastLoginAt  pgtype.Timestamptz
	)
	err = row.Scan(&id, &email, &username, &passwordHash, &createdAt, &lastLoginAt)
	if err != nil {
		return u, err
	}
	return user.User{
		ID:           user.ID(id),
		Email:        c.Email(email),
		Username:     user.Username(username),
		PasswordHash: user.PasswordHash(passwordHash),
		CreatedAt:    createdAt,
		LastLoginAt:  c.NewOptional(lastLoginAt.Time, lastLoginAt.Status == pgtype.Present),
	}, nil
}
