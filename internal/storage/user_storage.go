package storage

import (
	"context"
	"fmt"

	"github.com/budgettracker/expense-api/internal/models"
)

func (s *session) CreateUser(ctx context.Context, req *models.CreateUserRequest, passwordHash string) (*models.User, error) {
	query := `
		INSERT INTO users (name, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, password_hash, created_at
	`

	var user models.User
	err := s.tx.queryRow(ctx, s.q(query),
		req.Name,
		req.Email,
		passwordHash,
		now(),
	).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		s.d.timeDest(&user.CreatedAt),
	)

	if err != nil {
		if s.d.isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// GetUserByEmail returns nil, nil when no user has that email.
func (s *session) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password_hash, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := s.tx.queryRow(ctx, s.q(query), email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		s.d.timeDest(&user.CreatedAt),
	)

	if s.d.isNoRows(err) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &user, nil
}
