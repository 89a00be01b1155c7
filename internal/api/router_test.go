package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nhle/whop-starter/internal/guard"
	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/whop"
	"github.com/nhle/whop-starter/tests/testutil"
)

const testUserHeader = "X-Test-User"

// fakePlatform resolves identity from a plain header and answers access
// checks and lookups from maps.
type fakePlatform struct {
	access      map[string]whop.AccessCheck
	experiences map[string]whop.Experience
	companies   map[string]whop.Company
}

func (f *fakePlatform) VerifyUserToken(_ context.Context, h http.Header) (string, error) {
	if id := h.Get(testUserHeader); id != "" {
		return id, nil
	}
	return "", whop.ErrMissingToken
}

func (f *fakePlatform) CheckAccess(_ context.Context, resourceID, userID string) (whop.AccessCheck, error) {
	return f.access[resourceID+"/"+userID], nil
}

func (f *fakePlatform) RetrieveExperience(_ context.Context, id string) (*whop.Experience, error) {
	exp, ok := f.experiences[id]
	if !ok {
		return nil, &whop.APIError{StatusCode: http.StatusNotFound, Method: "GET", Path: "/experiences/" + id}
	}
	return &exp, nil
}

func (f *fakePlatform) RetrieveCompany(_ context.Context, id string) (*whop.Company, error) {
	company, ok := f.companies[id]
	if !ok {
		return nil, &whop.APIError{StatusCode: http.StatusNotFound, Method: "GET", Path: "/companies/" + id}
	}
	return &company, nil
}

func (f *fakePlatform) RetrieveUser(_ context.Context, id string) (*whop.User, error) {
	return &whop.User{ID: id, Username: id}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	platform := &fakePlatform{
		access: map[string]whop.AccessCheck{
			"exp_1/admin":    {HasAccess: true, AccessLevel: model.AccessLevelAdmin},
			"exp_1/customer": {HasAccess: true, AccessLevel: model.AccessLevelCustomer},
			"biz_1/admin":    {HasAccess: true},
			"biz_1/customer": {HasAccess: false},
		},
		experiences: map[string]whop.Experience{"exp_1": {ID: "exp_1", Name: "Course"}},
		companies:   map[string]whop.Company{"biz_1": {ID: "biz_1", Title: "Acme", MemberCount: 3}},
	}
	deps := Deps{
		Guard:    guard.New(platform),
		Platform: platform,
		Store:    testutil.NewTestStore(t),
	}
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	srv := httptest.NewServer(NewRouter(log, deps, 5*time.Second))
	t.Cleanup(srv.Close)
	return srv
}

func doRequest(t *testing.T, srv *httptest.Server, method, path, user string, body any) (int, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling body: %v", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	if err != nil {
		t.Fatalf("building request: %v", err)
	}
	if user != "" {
		req.Header.Set(testUserHeader, user)
	}

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var out map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decoding %s %s response: %v", method, path, err)
	}
	return resp.StatusCode, out
}

func TestUnauthenticatedRequestsRejected(t *testing.T) {
	srv := newTestServer(t)

	paths := []string{
		"/experiences/exp_1",
		"/experiences/exp_1/edit",
		"/experiences/exp_1/todos",
		"/experiences/exp_1/counter",
		"/dashboard/biz_1",
	}
	for _, path := range paths {
		status, body := doRequest(t, srv, http.MethodGet, path, "", nil)
		if status != http.StatusUnauthorized {
			t.Errorf("%s: status %d, want 401", path, status)
		}
		if body["error"] != "not logged in" {
			t.Errorf("%s: error = %v", path, body["error"])
		}
	}
}

func TestEditPageRequiresAdmin(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doRequest(t, srv, http.MethodGet, "/experiences/exp_1/edit", "customer", nil)
	if status != http.StatusForbidden {
		t.Fatalf("customer: status %d, want 403", status)
	}

	status, body := doRequest(t, srv, http.MethodGet, "/experiences/exp_1/edit", "admin", nil)
	if status != http.StatusOK {
		t.Fatalf("admin: status %d, want 200", status)
	}
	access := body["access"].(map[string]any)
	if access["access_level"] != "admin" {
		t.Fatalf("access = %v", access)
	}
}

func TestDashboardRequiresCompanyAccess(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doRequest(t, srv, http.MethodGet, "/dashboard/biz_1", "customer", nil)
	if status != http.StatusForbidden {
		t.Fatalf("customer: status %d, want 403", status)
	}

	status, body := doRequest(t, srv, http.MethodGet, "/dashboard/biz_1", "admin", nil)
	if status != http.StatusOK {
		t.Fatalf("admin: status %d, want 200", status)
	}
	company := body["company"].(map[string]any)
	if company["title"] != "Acme" {
		t.Fatalf("company = %v", company)
	}
	if body["display_name"] != "@admin" {
		t.Fatalf("display_name = %v", body["display_name"])
	}
}

func TestExperiencePage(t *testing.T) {
	srv := newTestServer(t)

	doRequest(t, srv, http.MethodPost, "/experiences/exp_1/counter/increment", "customer", nil)
	doRequest(t, srv, http.MethodPost, "/experiences/exp_1/todos", "customer", map[string]string{"text": "read chapter 1"})

	status, body := doRequest(t, srv, http.MethodGet, "/experiences/exp_1", "customer", nil)
	if status != http.StatusOK {
		t.Fatalf("status %d, body %v", status, body)
	}
	counter := body["counter"].(map[string]any)
	if counter["label"] != "exp_1-customer" || counter["value"] != float64(1) {
		t.Fatalf("counter = %v", counter)
	}
	todos := body["todos"].([]any)
	if len(todos) != 1 {
		t.Fatalf("todos = %v", todos)
	}
	access := body["access"].(map[string]any)
	if access["has_access"] != true || access["access_level"] != "customer" {
		t.Fatalf("access = %v", access)
	}
}

func TestExperiencePageUnknownExperience(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doRequest(t, srv, http.MethodGet, "/experiences/exp_missing", "customer", nil)
	if status != http.StatusNotFound {
		t.Fatalf("status %d, want 404", status)
	}
}

func TestCounterEndpoints(t *testing.T) {
	srv := newTestServer(t)

	for i := 1; i <= 3; i++ {
		status, body := doRequest(t, srv, http.MethodPost, "/experiences/exp_1/counter/increment", "admin", nil)
		if status != http.StatusOK || body["value"] != float64(i) {
			t.Fatalf("increment %d: status %d body %v", i, status, body)
		}
	}
	doRequest(t, srv, http.MethodPost, "/experiences/exp_1/counter/increment", "customer", nil)

	_, body := doRequest(t, srv, http.MethodGet, "/experiences/exp_1/counter?scope=all", "admin", nil)
	if body["value"] != float64(4) {
		t.Fatalf("aggregate = %v, want 4", body["value"])
	}

	status, body := doRequest(t, srv, http.MethodPost, "/experiences/exp_1/counter/reset", "admin", nil)
	if status != http.StatusOK || body["value"] != float64(0) {
		t.Fatalf("reset: status %d body %v", status, body)
	}

	_, body = doRequest(t, srv, http.MethodGet, "/experiences/exp_1/counter", "customer", nil)
	if body["value"] != float64(1) {
		t.Fatalf("customer counter = %v, want 1", body["value"])
	}
}

func TestTodoEndpoints(t *testing.T) {
	srv := newTestServer(t)
	base := "/experiences/exp_1/todos"

	status, body := doRequest(t, srv, http.MethodPost, base, "admin", map[string]string{"text": "  buy milk  "})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d body %v", status, body)
	}
	id := body["id"].(string)

	_, body = doRequest(t, srv, http.MethodGet, base, "admin", nil)
	todos := body["todos"].([]any)
	if len(todos) != 1 || todos[0].(map[string]any)["text"] != "buy milk" {
		t.Fatalf("list = %v", todos)
	}

	status, body = doRequest(t, srv, http.MethodPost, base+"/"+id+"/toggle", "admin", nil)
	if status != http.StatusOK || body["completed"] != true || body["completed_at"] == nil {
		t.Fatalf("toggle: status %d body %v", status, body)
	}

	status, body = doRequest(t, srv, http.MethodPatch, base+"/"+id, "admin", map[string]string{"text": "buy oat milk"})
	if status != http.StatusOK || body["text"] != "buy oat milk" || body["completed"] != true {
		t.Fatalf("update: status %d body %v", status, body)
	}

	status, _ = doRequest(t, srv, http.MethodDelete, base+"/"+id, "customer", nil)
	if status != http.StatusNotFound {
		t.Fatalf("foreign delete: status %d, want 404", status)
	}

	status, body = doRequest(t, srv, http.MethodDelete, base+"/"+id, "admin", nil)
	if status != http.StatusOK || body["id"] != id {
		t.Fatalf("delete: status %d body %v", status, body)
	}

	status, _ = doRequest(t, srv, http.MethodPost, base+"/"+id+"/toggle", "admin", nil)
	if status != http.StatusNotFound {
		t.Fatalf("toggle after delete: status %d, want 404", status)
	}

	_, body = doRequest(t, srv, http.MethodGet, base, "admin", nil)
	if todos := body["todos"].([]any); len(todos) != 0 {
		t.Fatalf("list after delete = %v", todos)
	}
}

func TestTodoBlankTextRejected(t *testing.T) {
	srv := newTestServer(t)

	status, _ := doRequest(t, srv, http.MethodPost, "/experiences/exp_1/todos", "admin", map[string]string{"text": "   "})
	if status != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", status)
	}
}

func TestUserEndpoints(t *testing.T) {
	srv := newTestServer(t)
	base := "/experiences/exp_1/users"

	status, _ := doRequest(t, srv, http.MethodPost, base, "admin", map[string]string{"name": "Ada Lovelace"})
	if status != http.StatusCreated {
		t.Fatalf("create: status %d", status)
	}
	status, _ = doRequest(t, srv, http.MethodPost, base, "admin", map[string]string{"name": "Grace", "email": "grace@navy.mil"})
	if status != http.StatusCreated {
		t.Fatalf("create with email: status %d", status)
	}

	_, body := doRequest(t, srv, http.MethodGet, base, "customer", nil)
	users := body["users"].([]any)
	if len(users) != 2 {
		t.Fatalf("users = %v", users)
	}
	emails := map[any]bool{}
	for _, u := range users {
		emails[u.(map[string]any)["email"]] = true
	}
	if !emails["ada.lovelace@example.com"] || !emails["grace@navy.mil"] {
		t.Fatalf("emails = %v", emails)
	}
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	status, body := doRequest(t, srv, http.MethodGet, "/healthz", "", nil)
	if status != http.StatusOK || body["ok"] != true {
		t.Fatalf("health: status %d body %v", status, body)
	}
}

func TestDefaultEmail(t *testing.T) {
	tests := map[string]string{
		"Ada":                "ada@example.com",
		"Ada Lovelace":       "ada.lovelace@example.com",
		"  Grace   Hopper  ": "grace.hopper@example.com",
	}
	for name, want := range tests {
		if got := DefaultEmail(name); got != want {
			t.Errorf("DefaultEmail(%q) = %q, want %q", name, got, want)
		}
	}
}
