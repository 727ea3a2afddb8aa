package service

import (
	"context"
	"errors"
	"time"

	"github.com/budgettracker/expense-api/internal/models"
	"github.com/budgettracker/expense-api/internal/storage"
	"github.com/budgettracker/expense-api/internal/validation"
)

var ErrExpenseNotFound = errors.New("expense not found")

type ExpenseService struct {
	now func() time.Time
}

func NewExpenseService() *ExpenseService {
	return &ExpenseService{now: time.Now}
}

func (s *ExpenseService) Create(ctx context.Context, sess storage.Session, owner *models.User, req *models.CreateExpenseRequest) (*models.Expense, error) {
	expense, err := validation.ParseExpense(req, s.now())
	if err != nil {
		return nil, err
	}
	expense.UserID = owner.ID

	return sess.CreateExpense(ctx, expense)
}

func (s *ExpenseService) List(ctx context.Context, sess storage.Session, owner *models.User) ([]models.Expense, error) {
	return sess.ListExpenses(ctx, owner.ID)
}

// Delete removes an expense owned by owner. Expenses owned by anyone else
// are reported as not found.
func (s *ExpenseService) Delete(ctx context.Context, sess storage.Session, owner *models.User, id int64) error {
	err := sess.DeleteExpense(ctx, id, owner.ID)
	if errors.Is(err, storage.ErrNotFound) {
		return ErrExpenseNotFound
	}
	return err
}
