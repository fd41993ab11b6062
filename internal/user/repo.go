package user

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrNotFound  = errors.New("user not found")
	ErrDuplicate = errors.New("user already exists")
)

type Repo struct {
	Pool *pgxpool.Pool
}

func NewRepo(pool *pgxpool.Pool) *Repo {
	return &Repo{Pool: pool}
}

// Create inserts a new account. The email must already be normalized.
func (r *Repo) Create(ctx context.Context, u *User) (string, error) {
	var id string
	err := r.Pool.QueryRow(ctx,
		`INSERT INTO users (full_name, email, password_hash, phone)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id`,
		u.FullName, u.Email, u.PasswordHash, u.Phone,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return "", ErrDuplicate
		}
		return "", err
	}
	return id, nil
}

// FindByEmail resolves an account by its normalized email.
func (r *Repo) FindByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	err := r.Pool.QueryRow(ctx,
		`SELECT id, full_name, email, password_hash, phone, created_at, updated_at
		 FROM users
		 WHERE email = $1`,
		NormalizeEmail(email),
	).Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Phone, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}
