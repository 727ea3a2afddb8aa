package handlers

import (
	"context"
	"net/http"

	"github.com/budgettracker/expense-api/internal/logger"
	"github.com/budgettracker/expense-api/internal/middleware"
	"github.com/budgettracker/expense-api/internal/models"
	"github.com/budgettracker/expense-api/internal/service"
	"github.com/budgettracker/expense-api/internal/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// API holds the dependencies shared by every route.
type API struct {
	store         storage.Store
	users         *service.UserService
	expenses      *service.ExpenseService
	authenticator *middleware.Authenticator
	log           *logger.Logger
}

func NewAPI(
	store storage.Store,
	users *service.UserService,
	expenses *service.ExpenseService,
	authenticator *middleware.Authenticator,
	log *logger.Logger,
) *API {
	return &API{
		store:         store,
		users:         users,
		expenses:      expenses,
		authenticator: authenticator,
		log:           log,
	}
}

// NewRouter wires the routes behind request ID, access log, panic recovery
// and CORS middleware.
func (a *API) NewRouter(allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog(a.log))
	r.Use(chimw.Recoverer)
	r.Use(chimw.RequestSize(maxBodyBytes))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS", "HEAD"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/", a.Home)
	r.Get("/health/db", a.DBHealth)
	r.Get("/test-db", a.DBHealth)

	docs := NewSwaggerHandler()
	r.Get("/docs", docs.ServeSwaggerUI)
	r.Get("/openapi.yaml", docs.ServeSpec)

	r.Post("/signup", a.withSession(false, a.Signup))
	// Login reads the primary so a fresh signup is always visible.
	r.Post("/login", a.withSession(false, a.Login))
	r.Get("/me", a.withUser(true, a.Me))

	r.Route("/expenses", func(r chi.Router) {
		r.Post("/", a.withUser(false, a.CreateExpense))
		r.Get("/", a.withUser(true, a.ListExpenses))
		r.Delete("/{id}", a.withUser(false, a.DeleteExpense))
	})

	return r
}

// sessionFunc handles a request inside an open session and returns the
// status and body to send once the session commits.
type sessionFunc func(r *http.Request, sess storage.Session) (int, interface{}, error)

// userFunc is a sessionFunc for routes that need the caller's identity.
type userFunc func(r *http.Request, sess storage.Session, user *models.User) (int, interface{}, error)

// withSession gives fn a session that is committed, or rolled back on
// failure, and released before the response is written.
func (a *API) withSession(readOnly bool, fn sessionFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		sess, err := a.store.Begin(ctx, readOnly)
		if err != nil {
			a.writeError(w, r, err)
			return
		}
		release := func() {
			if err := sess.Close(context.WithoutCancel(ctx)); err != nil {
				a.log.Warn("Failed to close session: %v", err)
			}
		}
		// Close is a no-op once released; this only matters if fn panics.
		defer release()

		status, body, err := fn(r, sess)
		if err == nil {
			err = sess.Commit(ctx)
		}
		release()

		if err != nil {
			a.writeError(w, r, err)
			return
		}
		respondJSON(w, status, body)
	}
}

func (a *API) withUser(readOnly bool, fn userFunc) http.HandlerFunc {
	return a.withSession(readOnly, func(r *http.Request, sess storage.Session) (int, interface{}, error) {
		user, err := a.authenticator.Authenticate(r.Context(), sess, r)
		if err != nil {
			return 0, nil, err
		}
		return fn(r, sess, user)
	})
}
