package storage

import (
	"context"
	"fmt"

	"github.com/budgettracker/expense-api/internal/models"
)

const expenseColumns = `id, user_id, category, amount, date, note, created_at`

func (s *session) scanExpense(row rowScanner, e *models.Expense) error {
	return row.Scan(
		&e.ID,
		&e.UserID,
		&e.Category,
		&e.Amount,
		s.d.timeDest(&e.Date),
		&e.Note,
		s.d.timeDest(&e.CreatedAt),
	)
}

func (s *session) CreateExpense(ctx context.Context, expense *models.Expense) (*models.Expense, error) {
	query := `
		INSERT INTO expenses (user_id, category, amount, date, note, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + expenseColumns

	var created models.Expense
	err := s.scanExpense(s.tx.queryRow(ctx, s.q(query),
		expense.UserID,
		expense.Category,
		expense.Amount,
		expense.Date,
		expense.Note,
		now(),
	), &created)
	if err != nil {
		return nil, fmt.Errorf("failed to create expense: %w", err)
	}

	return &created, nil
}

// ListExpenses returns the user's expenses, newest first.
func (s *session) ListExpenses(ctx context.Context, userID int64) ([]models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := s.tx.query(ctx, s.q(query), userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses for user %d: %w", userID, err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		if err := s.scanExpense(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		expenses = append(expenses, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating expenses: %w", err)
	}

	return expenses, nil
}

// GetExpense returns nil, nil when the expense does not exist or belongs to
// another user.
func (s *session) GetExpense(ctx context.Context, id, userID int64) (*models.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE id = $1 AND user_id = $2
	`

	var e models.Expense
	err := s.scanExpense(s.tx.queryRow(ctx, s.q(query), id, userID), &e)
	if s.d.isNoRows(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}

	return &e, nil
}

func (s *session) DeleteExpense(ctx context.Context, id, userID int64) error {
	query := `
		DELETE FROM expenses
		WHERE id = $1 AND user_id = $2
	`

	affected, err := s.tx.exec(ctx, s.q(query), id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}

	if affected == 0 {
		return ErrNotFound
	}

	return nil
}
