package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ghayamathia/course-catalog/internal/core/domain"
	"github.com/ghayamathia/course-catalog/internal/core/ports"
)

const userColumns = `id, email, password_hash, role, is_active, created_at`

type UserRepository struct {
	store *Store
}

var _ ports.UserRepository = (*UserRepository)(nil)

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.IsActive, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	row := r.store.db.QueryRowContext(ctx,
		r.store.rebind(`SELECT `+userColumns+` FROM users WHERE email = $1`), email)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	created := *user
	err := r.store.db.QueryRowContext(ctx, r.store.rebind(`
		INSERT INTO users (email, password_hash, role, is_active, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`),
		user.Email, user.PasswordHash, user.Role, user.IsActive, user.CreatedAt,
	).Scan(&created.ID)
	if err != nil {
		if r.store.dialect.IsUniqueViolation(err) {
			return nil, domain.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *UserRepository) Update(ctx context.Context, user *domain.User) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.store.db.ExecContext(ctx, r.store.rebind(`
		UPDATE users SET email = $1, password_hash = $2, role = $3, is_active = $4
		WHERE id = $5`),
		user.Email, user.PasswordHash, user.Role, user.IsActive, user.ID,
	)
	if err != nil {
		if r.store.dialect.IsUniqueViolation(err) {
			return domain.ErrDuplicateEmail
		}
		return fmt.Errorf("update user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if n == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}
