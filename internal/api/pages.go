package api

import (
	"net/http"

	"github.com/gorilla/mux"
	"golang.org/x/sync/errgroup"

	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/whop"
)

type counterView struct {
	Label string `json:"label"`
	Value int64  `json:"value"`
}

type experiencePageView struct {
	Experience  *whop.Experience `json:"experience"`
	User        *whop.User       `json:"user"`
	DisplayName string           `json:"display_name"`
	Access      whop.AccessCheck `json:"access"`
	Counter     counterView      `json:"counter"`
	Todos       []model.Todo     `json:"todos"`
}

// experiencePage serves the main experience view: platform data, the
// caller's access status, their counter and their todos.
func (h *Handler) experiencePage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	experienceID := mux.Vars(r)["experienceId"]
	label := model.ScopedCounterLabel(experienceID, userID)

	view := experiencePageView{Counter: counterView{Label: label}}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.Experience, err = h.deps.Platform.RetrieveExperience(gctx, experienceID)
		return err
	})
	g.Go(func() (err error) {
		view.User, err = h.deps.Platform.RetrieveUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		view.Access, err = h.deps.Guard.CheckResourceAccess(gctx, experienceID, userID)
		return err
	})
	g.Go(func() (err error) {
		view.Counter.Value, err = h.deps.Store.GetCounter(gctx, label)
		return err
	})
	g.Go(func() (err error) {
		view.Todos, err = h.deps.Store.ListTodos(gctx, experienceID, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		writeErr(w, h.log, err)
		return
	}

	view.DisplayName = view.User.DisplayName()
	writeJSON(w, view, http.StatusOK)
}

type experienceEditView struct {
	Experience *whop.Experience       `json:"experience"`
	Access     model.ExperienceAccess `json:"access"`
}

// experienceEditPage is admin-only.
func (h *Handler) experienceEditPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	experienceID := mux.Vars(r)["experienceId"]

	access, err := h.deps.Guard.RequireExperienceAdmin(ctx, experienceID, userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	experience, err := h.deps.Platform.RetrieveExperience(ctx, experienceID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	writeJSON(w, experienceEditView{Experience: experience, Access: access}, http.StatusOK)
}

type experienceCreateView struct {
	Experience  *whop.Experience  `json:"experience"`
	DisplayName string            `json:"display_name"`
	AccessLevel model.AccessLevel `json:"access_level"`
}

// experienceCreatePage only needs a logged-in user; it reports the access
// level for display.
func (h *Handler) experienceCreatePage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	experienceID := mux.Vars(r)["experienceId"]

	var (
		view  experienceCreateView
		user  *whop.User
		check whop.AccessCheck
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.Experience, err = h.deps.Platform.RetrieveExperience(gctx, experienceID)
		return err
	})
	g.Go(func() (err error) {
		user, err = h.deps.Platform.RetrieveUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		check, err = h.deps.Guard.CheckResourceAccess(gctx, experienceID, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		writeErr(w, h.log, err)
		return
	}

	view.DisplayName = user.DisplayName()
	view.AccessLevel = check.AccessLevel
	writeJSON(w, view, http.StatusOK)
}

type dashboardView struct {
	Company     *whop.Company       `json:"company"`
	User        *whop.User          `json:"user"`
	DisplayName string              `json:"display_name"`
	Access      model.CompanyAccess `json:"access"`
}

// dashboardPage is restricted to members of the company.
func (h *Handler) dashboardPage(w http.ResponseWriter, r *http.Request) {
	ctx, cancel, userID, err := h.authenticate(r)
	defer cancel()
	if err != nil {
		writeErr(w, h.log, err)
		return
	}
	companyID := mux.Vars(r)["companyId"]

	access, err := h.deps.Guard.RequireCompanyAccess(ctx, companyID, userID)
	if err != nil {
		writeErr(w, h.log, err)
		return
	}

	view := dashboardView{Access: access}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		view.Company, err = h.deps.Platform.RetrieveCompany(gctx, companyID)
		return err
	})
	g.Go(func() (err error) {
		view.User, err = h.deps.Platform.RetrieveUser(gctx, userID)
		return err
	})
	if err := g.Wait(); err != nil {
		writeErr(w, h.log, err)
		return
	}

	view.DisplayName = view.User.DisplayName()
	writeJSON(w, view, http.StatusOK)
}
