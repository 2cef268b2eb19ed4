package postgres

import (
	"context"
	"database/sql"
	"strings"

	"dhara-backend/internal/domain"
	"dhara-backend/internal/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, role, village, created_at`

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	query := `INSERT INTO users (id, email, password_hash, name, role, village)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING created_at`
	err := r.db.QueryRowContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.Village).Scan(&u.CreatedAt)
	return mapError(err)
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE LOWER(email) = LOWER($1)`
	return scanUser(r.db.QueryRowContext(ctx, query, strings.TrimSpace(email)))
}

func scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.Village, &u.CreatedAt); err != nil {
		return nil, mapError(err)
	}
	return u, nil
}
