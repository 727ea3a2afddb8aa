package handlers

import (
	"net/http"

	"github.com/budgettracker/expense-api/internal/models"
	"github.com/budgettracker/expense-api/internal/storage"
)

func (a *API) Signup(r *http.Request, sess storage.Session) (int, interface{}, error) {
	var req models.CreateUserRequest
	if err := decodeJSON(r, &req); err != nil {
		return 0, nil, err
	}

	user, err := a.users.Register(r.Context(), sess, &req)
	if err != nil {
		return 0, nil, err
	}

	a.log.Info("Registered user %d", user.ID)
	return http.StatusCreated, user.Response(), nil
}

func (a *API) Login(r *http.Request, sess storage.Session) (int, interface{}, error) {
	var req models.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		return 0, nil, err
	}

	token, err := a.users.Login(r.Context(), sess, &req)
	if err != nil {
		return 0, nil, err
	}

	return http.StatusOK, token, nil
}

func (a *API) Me(r *http.Request, sess storage.Session, user *models.User) (int, interface{}, error) {
	return http.StatusOK, user.Response(), nil
}
