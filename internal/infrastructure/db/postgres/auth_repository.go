package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/schoolevents/eventhub/internal/core/domain"
)

type CredentialRepository struct {
	pool *pgxpool.Pool
}

func NewCredentialRepository(pool *pgxpool.Pool) *CredentialRepository {
	return &CredentialRepository{pool: pool}
}

func (r *CredentialRepository) Create(ctx context.Context, cred *domain.Credential) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO auth_users (id, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
	`, cred.ID, cred.Email, cred.PasswordHash, cred.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert credential: %w", err)
	}
	return nil
}

func (r *CredentialRepository) FindByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var cred domain.Credential
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, password_hash, created_at
		FROM auth_users
		WHERE email = $1
	`, email).Scan(&cred.ID, &cred.Email, &cred.PasswordHash, &cred.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find credential: %w", err)
	}
	return &cred, nil
}

// Delete removes the credential; the foreign keys cascade to everything the user owns.
func (r *CredentialRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	tag, err := r.pool.Exec(ctx, `DELETE FROM auth_users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	_, err := r.pool.Exec(ctx, `
		INSERT INTO users (id, email, role, created_at)
		VALUES ($1, $2, $3, $4)
	`, user.ID, user.Email, user.Role, user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUserExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var user domain.User
	err := r.pool.QueryRow(ctx, `
		SELECT id, email, role, created_at FROM users WHERE id = $1
	`, id).Scan(&user.ID, &user.Email, &user.Role, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	rows, err := r.pool.Query(ctx, `SELECT id, email, role, created_at FROM users ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	users, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (*domain.User, error) {
		var u domain.User
		err := row.Scan(&u.ID, &u.Email, &u.Role, &u.CreatedAt)
		return &u, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan users: %w", err)
	}
	return users, nil
}

// Delete removes the profile together with the user's registrations and
// reminders in one transaction. The credential row is left to its own repository.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
		if err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrUserNotFound
		}
		if _, err := tx.Exec(ctx, `DELETE FROM event_registrations WHERE student_id = $1`, id); err != nil {
			return fmt.Errorf("delete user registrations: %w", err)
		}
		if _, err := tx.Exec(ctx, `DELETE FROM reminders WHERE user_id = $1`, id); err != nil {
			return fmt.Errorf("delete user reminders: %w", err)
		}
		return nil
	})
}
