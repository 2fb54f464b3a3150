package auth

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PGRepo struct{ DB *pgxpool.Pool }

const adminCols = `id, username, email, role, password_hash, last_login, created_at`

func scanAdmin(row pgx.Row) (*Admin, error) {
	var a Admin
	err := row.Scan(&a.ID, &a.Username, &a.Email, &a.Role, &a.PasswordHash, &a.LastLogin, &a.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PGRepo) ByUsername(ctx context.Context, username string) (*Admin, error) {
	return scanAdmin(r.DB.QueryRow(ctx,
		`SELECT `+adminCols+` FROM admins WHERE username=$1`, username))
}

func (r *PGRepo) ByID(ctx context.Context, id string) (*Admin, error) {
	return scanAdmin(r.DB.QueryRow(ctx,
		`SELECT `+adminCols+` FROM admins WHERE id=$1`, id))
}

func (r *PGRepo) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	_, err := r.DB.Exec(ctx, `UPDATE admins SET last_login=$1 WHERE id=$2`, at, id)
	return err
}

func (r *PGRepo) UpdateProfile(ctx context.Context, id, username, email string) (*Admin, error) {
	a, err := scanAdmin(r.DB.QueryRow(ctx, `
		UPDATE admins SET username=$1, email=$2 WHERE id=$3
		RETURNING `+adminCols, username, email, id))
	if isUniqueViolation(err) {
		return nil, ErrTaken
	}
	return a, err
}

func (r *PGRepo) UpdatePasswordHash(ctx context.Context, id, hash string) error {
	tag, err := r.DB.Exec(ctx, `UPDATE admins SET password_hash=$1 WHERE id=$2`, hash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
