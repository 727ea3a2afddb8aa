package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/budgettracker/expense-api/internal/auth"
	"github.com/budgettracker/expense-api/internal/logger"
	"github.com/budgettracker/expense-api/internal/models"
)

var (
	ErrUnauthorized = errors.New("invalid or expired token")
	ErrUserNotFound = errors.New("user not found")
)

// UserLookup resolves a user by email; storage.Session satisfies it.
type UserLookup interface {
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type Authenticator struct {
	jwtManager *auth.JWTManager
	log        *logger.Logger
}

func NewAuthenticator(jwtManager *auth.JWTManager, log *logger.Logger) *Authenticator {
	return &Authenticator{
		jwtManager: jwtManager,
		log:        log,
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>"
// header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := strings.TrimSpace(r.Header.Get("Authorization"))
	scheme, token, found := strings.Cut(authHeader, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate resolves the request's bearer token to a user. Identity is
// never cached; every call verifies the token and reads the user.
func (a *Authenticator) Authenticate(ctx context.Context, users UserLookup, r *http.Request) (*models.User, error) {
	token, ok := BearerToken(r)
	if !ok {
		return nil, ErrUnauthorized
	}

	claims, err := a.jwtManager.ValidateToken(token)
	if err != nil {
		a.log.Debug("Rejected bearer token: %v", err)
		return nil, ErrUnauthorized
	}

	user, err := users.GetUserByEmail(ctx, claims.Email())
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}
