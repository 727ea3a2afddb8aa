package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/budgettracker/expense-api/internal/middleware"
	"github.com/budgettracker/expense-api/internal/models"
	"github.com/budgettracker/expense-api/internal/service"
	"github.com/budgettracker/expense-api/internal/validation"
)

const maxBodyBytes = 1 << 20

var (
	errInvalidBody = errors.New("invalid request body")
	errInvalidID   = errors.New("invalid expense id")
)

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	errResp := models.ErrorResponse{
		Error:   code,
		Message: message,
	}
	respondJSON(w, status, errResp)
}

// decodeJSON reads a single JSON object from the body into dst.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	if err := dec.Decode(dst); err != nil {
		return errInvalidBody
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errInvalidBody
	}
	return nil
}

// writeError maps err onto a status code. Anything unrecognised is logged
// and reported as a generic 500.
func (a *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr *validation.FieldError

	switch {
	case errors.As(err, &fieldErr):
		respondError(w, http.StatusBadRequest, "validation_error", fieldErr.Error())
	case errors.Is(err, errInvalidBody), errors.Is(err, errInvalidID):
		respondError(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		respondError(w, http.StatusBadRequest, "email_taken", "Email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		respondError(w, http.StatusBadRequest, "invalid_credentials", "Invalid email or password")
	case errors.Is(err, middleware.ErrUnauthorized):
		w.Header().Set("WWW-Authenticate", "Bearer")
		respondError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
	case errors.Is(err, middleware.ErrUserNotFound):
		respondError(w, http.StatusNotFound, "not_found", "User not found")
	case errors.Is(err, service.ErrExpenseNotFound):
		respondError(w, http.StatusNotFound, "not_found", "Expense not found")
	default:
		a.log.Error("Request %s %s failed (request_id=%s): %v",
			r.Method, r.URL.Path, middleware.GetRequestID(r.Context()), err)
		respondError(w, http.StatusInternalServerError, "internal_error", "Internal server error")
	}
}
