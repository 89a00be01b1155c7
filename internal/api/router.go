// Package api exposes the page-level HTTP surface. Every route
// authenticates through the guard before touching the stores.
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nhle/whop-starter/internal/guard"
	"github.com/nhle/whop-starter/internal/store"
	"github.com/nhle/whop-starter/internal/whop"
)

// Platform is the subset of the platform client the pages read from.
type Platform interface {
	RetrieveExperience(ctx context.Context, id string) (*whop.Experience, error)
	RetrieveCompany(ctx context.Context, id string) (*whop.Company, error)
	RetrieveUser(ctx context.Context, id string) (*whop.User, error)
}

// Deps are the collaborators shared by all handlers.
type Deps struct {
	Guard    *guard.Guard
	Platform Platform
	Store    store.Store
}

// Handler serves the HTTP routes.
type Handler struct {
	log     *slog.Logger
	deps    Deps
	timeout time.Duration
}

// NewRouter registers every route on a new gorilla/mux router.
func NewRouter(log *slog.Logger, deps Deps, timeout time.Duration) *mux.Router {
	h := &Handler{log: log, deps: deps, timeout: timeout}

	r := mux.NewRouter()
	r.Use(logRequests(log))

	r.HandleFunc("/healthz", h.health).Methods("GET")

	// pages
	r.HandleFunc("/experiences/{experienceId}", h.experiencePage).Methods("GET")
	r.HandleFunc("/experiences/{experienceId}/edit", h.experienceEditPage).Methods("GET")
	r.HandleFunc("/experiences/{experienceId}/create", h.experienceCreatePage).Methods("GET")
	r.HandleFunc("/dashboard/{companyId}", h.dashboardPage).Methods("GET")

	// counter
	r.HandleFunc("/experiences/{experienceId}/counter", h.getCounter).Methods("GET")
	r.HandleFunc("/experiences/{experienceId}/counter/increment", h.incrementCounter).Methods("POST")
	r.HandleFunc("/experiences/{experienceId}/counter/reset", h.resetCounter).Methods("POST")

	// todos
	r.HandleFunc("/experiences/{experienceId}/todos", h.listTodos).Methods("GET")
	r.HandleFunc("/experiences/{experienceId}/todos", h.createTodo).Methods("POST")
	r.HandleFunc("/experiences/{experienceId}/todos/{todoId}", h.updateTodo).Methods("PATCH")
	r.HandleFunc("/experiences/{experienceId}/todos/{todoId}", h.removeTodo).Methods("DELETE")
	r.HandleFunc("/experiences/{experienceId}/todos/{todoId}/toggle", h.toggleTodo).Methods("POST")

	// users
	r.HandleFunc("/experiences/{experienceId}/users", h.listUsers).Methods("GET")
	r.HandleFunc("/experiences/{experienceId}/users", h.createUser).Methods("POST")

	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "not found", http.StatusNotFound)
	})
	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, "method not allowed", http.StatusMethodNotAllowed)
	})

	return r
}

// authenticate bounds the request context and resolves the calling user.
// The returned cancel func must always be called.
func (h *Handler) authenticate(r *http.Request) (context.Context, context.CancelFunc, string, error) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	userID, err := h.deps.Guard.VerifyCurrentUser(ctx, r.Header)
	return ctx, cancel, userID, err
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	if err := h.deps.Store.Ping(ctx); err != nil {
		h.log.Error("health check failed", "error", err)
		writeError(w, "database unavailable", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, map[string]any{"ok": true}, http.StatusOK)
}
