package handlers

import (
	"net/http"
	"strconv"

	"github.com/budgettracker/expense-api/internal/models"
	"github.com/budgettracker/expense-api/internal/storage"

	"github.com/go-chi/chi/v5"
)

func (a *API) CreateExpense(r *http.Request, sess storage.Session, user *models.User) (int, interface{}, error) {
	var req models.CreateExpenseRequest
	if err := decodeJSON(r, &req); err != nil {
		return 0, nil, err
	}

	expense, err := a.expenses.Create(r.Context(), sess, user, &req)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusCreated, expense.Response(), nil
}

func (a *API) ListExpenses(r *http.Request, sess storage.Session, user *models.User) (int, interface{}, error) {
	expenses, err := a.expenses.List(r.Context(), sess, user)
	if err != nil {
		return 0, nil, err
	}

	resp := make([]models.ExpenseResponse, len(expenses))
	for i := range expenses {
		resp[i] = expenses[i].Response()
	}

	return http.StatusOK, resp, nil
}

func (a *API) DeleteExpense(r *http.Request, sess storage.Session, user *models.User) (int, interface{}, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, nil, errInvalidID
	}

	if err := a.expenses.Delete(r.Context(), sess, user, id); err != nil {
		return 0, nil, err
	}

	a.log.Info("User %d deleted expense %d", user.ID, id)
	return http.StatusOK, models.MessageResponse{Message: "Expense deleted"}, nil
}
