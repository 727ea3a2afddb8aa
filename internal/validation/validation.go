package validation

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/budgettracker/expense-api/internal/auth"
	"github.com/budgettracker/expense-api/internal/models"
)

// ErrInvalid matches every FieldError via errors.Is.
var ErrInvalid = errors.New("validation failed")

type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + " " + e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalid
}

func fieldError(field, message string) *FieldError {
	return &FieldError{Field: field, Message: message}
}

var (
	ErrNameRequired     = fieldError("name", "is required")
	ErrNameTooLong      = fieldError("name", "must be at most 255 characters")
	ErrEmailRequired    = fieldError("email", "is required")
	ErrEmailInvalid     = fieldError("email", "is not a valid address")
	ErrEmailTooLong     = fieldError("email", "must be at most 255 characters")
	ErrPasswordRequired = fieldError("password", "is required")
	ErrPasswordTooLong  = fieldError("password", "must be at most 72 bytes")
	ErrCategoryRequired = fieldError("category", "is required")
	ErrCategoryTooLong  = fieldError("category", "must be at most 100 characters")
	ErrAmountRequired   = fieldError("amount", "is required")
	ErrDateInvalid      = fieldError("date", "must be formatted as YYYY-MM-DD")
	ErrNoteTooLong      = fieldError("note", "must be at most 255 characters")
)

const (
	maxNameLen     = 255
	maxEmailLen    = 255
	maxCategoryLen = 100
	maxNoteLen     = 255
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+$`)

// NormalizeEmail trims and lowercases an address so lookups and the unique
// constraint treat case variants as one account.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func ValidateEmail(email string) error {
	if email == "" {
		return ErrEmailRequired
	}
	if len([]rune(email)) > maxEmailLen {
		return ErrEmailTooLong
	}
	if !emailRegex.MatchString(email) {
		return ErrEmailInvalid
	}
	return nil
}

// ValidateSignup normalizes req in place and reports the first invalid field.
func ValidateSignup(req *models.CreateUserRequest) error {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = NormalizeEmail(req.Email)

	if req.Name == "" {
		return ErrNameRequired
	}
	if len([]rune(req.Name)) > maxNameLen {
		return ErrNameTooLong
	}
	if err := ValidateEmail(req.Email); err != nil {
		return err
	}
	if req.Password == "" {
		return ErrPasswordRequired
	}
	if len(req.Password) > auth.MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	return nil
}

func ValidateLogin(req *models.LoginRequest) error {
	req.Email = NormalizeEmail(req.Email)

	if req.Email == "" {
		return ErrEmailRequired
	}
	if req.Password == "" {
		return ErrPasswordRequired
	}
	return nil
}

// ParseExpense turns a create request into an Expense with no owner set.
// A missing date defaults to today's UTC date.
func ParseExpense(req *models.CreateExpenseRequest, now time.Time) (*models.Expense, error) {
	category := strings.TrimSpace(req.Category)
	if category == "" {
		return nil, ErrCategoryRequired
	}
	if len([]rune(category)) > maxCategoryLen {
		return nil, ErrCategoryTooLong
	}

	if req.Amount == nil {
		return nil, ErrAmountRequired
	}

	now = now.UTC()
	date := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if raw := strings.TrimSpace(req.Date); raw != "" {
		parsed, err := time.Parse(models.DateLayout, raw)
		if err != nil {
			return nil, ErrDateInvalid
		}
		date = parsed
	}

	note := req.Note
	if note == nil {
		note = req.Title
	}
	if note != nil {
		trimmed := strings.TrimSpace(*note)
		if len([]rune(trimmed)) > maxNoteLen {
			return nil, ErrNoteTooLong
		}
		if trimmed == "" {
			note = nil
		} else {
			note = &trimmed
		}
	}

	return &models.Expense{
		Category: category,
		Amount:   *req.Amount,
		Date:     date,
		Note:     note,
	}, nil
}
