package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/nhle/whop-starter/internal/store"
)

type createUserIn struct {
	Name  string  `json:"name"`
	Email *string `json:"email"`
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, _, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	users, err := h.deps.Store.ListUsers(ctx)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, map[string]any{"users": users}, http.StatusOK)
}

// createUser adds a directory entry. Without an email, one is derived
// from the name.
func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, _, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	var in createUserIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeErr(w, h.log, fmt.Errorf("invalid json: %w", store.ErrInvalidArgument))
		return
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		writeErr(w, h.log, fmt.Errorf("name is required: %w", store.ErrInvalidArgument))
		return
	}
	email := in.Email
	if email == nil {
		derived := DefaultEmail(name)
		email = &derived
	}

	id, err := h.deps.Store.CreateUser(ctx, name, email)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, map[string]any{"id": id}, http.StatusCreated)
}

// DefaultEmail derives a placeholder address from a display name.
func DefaultEmail(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), ".")) + "@example.com"
}
