package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/techinventory-api/internal/domain"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, username, name, role, password_hash, avatar, created_at, last_access_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario; username repetido devuelve domain.ErrDuplicate.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (id, username, name, role, password_hash, avatar, created_at, last_access_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		u.ID, u.Username, u.Name, u.Role, u.PasswordHash, u.Avatar, u.CreatedAt, u.LastAccessAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return storageErr("insert user", err)
	}
	return nil
}

// GetByUsername nil, nil si no existe.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	u, err := scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, storageErr("get user", err)
	}
	return u, nil
}

// List usuarios ordenados por username.
func (r *UserRepo) List(ctx context.Context) ([]entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY username`)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	defer rows.Close()

	out := make([]entity.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, storageErr("scan user", err)
		}
		out = append(out, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, storageErr("list users", err)
	}
	return out, nil
}

// UpdateLastAccess registra el último login.
func (r *UserRepo) UpdateLastAccess(ctx context.Context, id string, at time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE users SET last_access_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return storageErr("update last access", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	if err := row.Scan(&u.ID, &u.Username, &u.Name, &u.Role, &u.PasswordHash, &u.Avatar,
		&u.CreatedAt, &u.LastAccessAt); err != nil {
		return nil, err
	}
	return &u, nil
}
