package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nhle/whop-starter/internal/model"
)

// getCounter returns the caller's counter for the experience, or the sum
// of every counter with ?scope=all.
func (h *Handler) getCounter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	if r.URL.Query().Get("scope") == "all" {
		total, err := h.deps.Store.GetCounterTotal(ctx)
		if err != nil {
			writeErr(w, h.log, err)
			return
		}
		writeJSON(w, map[string]any{"value": total}, http.StatusOK)
		return
	}

	label := model.ScopedCounterLabel(mux.Vars(r)["experienceId"], userID)
	value, err := h.deps.Store.GetCounter(ctx, label)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, counterView{Label: label, Value: value}, http.StatusOK)
}

func (h *Handler) incrementCounter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	label := model.ScopedCounterLabel(mux.Vars(r)["experienceId"], userID)
	value, err := h.deps.Store.IncrementCounter(ctx, label)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, counterView{Label: label, Value: value}, http.StatusOK)
}

func (h *Handler) resetCounter(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	label := model.ScopedCounterLabel(mux.Vars(r)["experienceId"], userID)
	value, err := h.deps.Store.ResetCounter(ctx, label)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	writeJSON(w, counterView{Label: label, Value: value}, http.StatusOK)
}
