package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/budgettracker/expense-api/internal/auth"
	"github.com/budgettracker/expense-api/internal/models"
	"github.com/budgettracker/expense-api/internal/storage"
	"github.com/budgettracker/expense-api/internal/validation"
)

const TokenType = "bearer"

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type UserService struct {
	jwtManager *auth.JWTManager

	dummyOnce sync.Once
	dummyHash string
}

func NewUserService(jwtManager *auth.JWTManager) *UserService {
	return &UserService{
		jwtManager: jwtManager,
	}
}

func (s *UserService) Register(ctx context.Context, sess storage.Session, req *models.CreateUserRequest) (*models.User, error) {
	if err := validation.ValidateSignup(req); err != nil {
		return nil, err
	}

	existingUser, err := sess.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if existingUser != nil {
		return nil, ErrEmailTaken
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user, err := sess.CreateUser(ctx, req, passwordHash)
	if errors.Is(err, storage.ErrDuplicateEmail) {
		// Lost a race with a concurrent signup for the same address.
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// Login returns ErrInvalidCredentials for an unknown email and for a wrong
// password alike, and spends a bcrypt comparison in both cases.
func (s *UserService) Login(ctx context.Context, sess storage.Session, req *models.LoginRequest) (*models.TokenResponse, error) {
	if err := validation.ValidateLogin(req); err != nil {
		return nil, err
	}

	user, err := sess.GetUserByEmail(ctx, req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if user == nil {
		auth.VerifyPassword(s.unknownUserHash(), req.Password)
		return nil, ErrInvalidCredentials
	}

	if !auth.VerifyPassword(user.PasswordHash, req.Password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.jwtManager.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}

	return &models.TokenResponse{
		AccessToken: token,
		TokenType:   TokenType,
		ExpiresAt:   expiresAt,
	}, nil
}

func (s *UserService) unknownUserHash() string {
	s.dummyOnce.Do(func() {
		s.dummyHash, _ = auth.HashPassword("unknown-user-placeholder")
	})
	return s.dummyHash
}
