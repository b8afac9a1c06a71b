package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"taskmanager/internal/core/domain"
	"taskmanager/internal/core/ports"
)

const userColumns = `id, name, title, role, email, is_admin, is_active, created_at`

// UserRepository reads the users table. Accounts are managed elsewhere;
// Create only exists for seeding.
type UserRepository struct {
	db *sqlx.DB
}

type userRow struct {
	ID        string    `db:"id"`
	Name      string    `db:"name"`
	Title     string    `db:"title"`
	Role      string    `db:"role"`
	Email     string    `db:"email"`
	IsAdmin   bool      `db:"is_admin"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

var _ ports.UserDirectory = (*UserRepository)(nil)

func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.db.ExecContext(ctx, r.db.Rebind(`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`),
		user.ID, user.Name, user.Title, user.Role, user.Email, user.IsAdmin, user.IsActive, user.CreatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindUsers(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query, args, err := sqlx.In(`SELECT `+userColumns+` FROM users WHERE id IN (?)`, ids)
	if err != nil {
		return nil, err
	}
	return r.selectUsers(ctx, r.db.Rebind(query), args...)
}

func (r *UserRepository) ListActiveUsers(ctx context.Context, limit int) ([]domain.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE is_active = ? ORDER BY created_at DESC, id LIMIT ?`)
	return r.selectUsers(ctx, query, true, limit)
}

func (r *UserRepository) selectUsers(ctx context.Context, query string, args ...any) ([]domain.User, error) {
	var rows []userRow
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, domain.User{
			ID:        row.ID,
			Name:      row.Name,
			Title:     row.Title,
			Role:      row.Role,
			Email:     row.Email,
			IsAdmin:   row.IsAdmin,
			IsActive:  row.IsActive,
			CreatedAt: row.CreatedAt.UTC(),
		})
	}
	return users, nil
}
