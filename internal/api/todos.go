package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/store"
)

type todoTextIn struct {
	Text string `json:"text"`
}

// decodeTodoText reads {"text": ...} and returns the trimmed text.
func decodeTodoText(r *http.Request) (string, error) {
	var in todoTextIn
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		return "", fmt.Errorf("invalid json: %w", store.ErrInvalidArgument)
	}
	text := strings.TrimSpace(in.Text)
	if text == "" {
		return "", fmt.Errorf("text is required: %w", store.ErrInvalidArgument)
	}
	return text, nil
}

// ownedTodo loads a todo and hides it unless it belongs to the caller's scope.
func (h *Handler) ownedTodo(
	ctx context.Context,
	todoID, experienceID, userID string,
) (*model.Todo, error) {
	todo, err := h.deps.Store.GetTodo(ctx, todoID)
	if err != nil {
		return nil, err
	}
	if !todo.OwnedBy(experienceID, userID) {
		return nil, fmt.Errorf("todo %s: %w", todoID, store.ErrNotFound)
	}
	return todo, nil
}

func (h *Handler) listTodos(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	todos, err := h.deps.Store.ListTodos(ctx, mux.Vars(r)["experienceId"], userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, map[string]any{"todos": todos}, http.StatusOK)
}

func (h *Handler) createTodo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	text, err := decodeTodoText(r)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	id, err := h.deps.Store.CreateTodo(ctx, text, mux.Vars(r)["experienceId"], userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, map[string]any{"id": id}, http.StatusCreated)
}

// updateTodo replaces the text. Unchanged text is answered without a write.
func (h *Handler) updateTodo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	vars := mux.Vars(r)

	text, err := decodeTodoText(r)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	todo, err := h.ownedTodo(ctx, vars["todoId"], vars["experienceId"], userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	if todo.Text == text {
		writeJSON(w, todo, http.StatusOK)
		return
	}

	updated, err := h.deps.Store.UpdateTodoText(ctx, todo.ID, text)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, updated, http.StatusOK)
}

func (h *Handler) toggleTodo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	vars := mux.Vars(r)

	todo, err := h.ownedTodo(ctx, vars["todoId"], vars["experienceId"], userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	toggled, err := h.deps.Store.ToggleTodo(ctx, todo.ID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, toggled, http.StatusOK)
}

func (h *Handler) removeTodo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	vars := mux.Vars(r)

	todo, err := h.ownedTodo(ctx, vars["todoId"], vars["experienceId"], userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	removed, err := h.deps.Store.RemoveTodo(ctx, todo.ID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, removed, http.StatusOK)
}
