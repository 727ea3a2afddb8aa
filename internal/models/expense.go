package models

import "time"

// DateLayout is the wire format of an expense date.
const DateLayout = "2006-01-02"

type Expense struct {
	ID        int64
	UserID    int64
	Category  string
	Amount    float64
	Date      time.Time
	Note      *string
	CreatedAt time.Time
}

type ExpenseResponse struct {
	ID        int64     `json:"id"`
	Category  string    `json:"category"`
	Amount    float64   `json:"amount"`
	Date      string    `json:"date"`
	Note      *string   `json:"note"`
	CreatedAt time.Time `json:"created_at"`
}

func (e *Expense) Response() ExpenseResponse {
	return ExpenseResponse{
		ID:        e.ID,
		Category:  e.Category,
		Amount:    e.Amount,
		Date:      e.Date.Format(DateLayout),
		Note:      e.Note,
		CreatedAt: e.CreatedAt,
	}
}

// CreateExpenseRequest is the body of POST /expenses. Title is a legacy
// alias for Note and is only used when Note is absent.
type CreateExpenseRequest struct {
	Category string   `json:"category"`
	Amount   *float64 `json:"amount"`
	Date     string   `json:"date,omitempty"`
	Note     *string  `json:"note,omitempty"`
	Title    *string  `json:"title,omitempty"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
