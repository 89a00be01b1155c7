package guard

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/whop"
)

type fakeAuthority struct {
	userID    string
	verifyErr error
	checks    map[string]whop.AccessCheck
	checkErr  error
	calls     int
}

func (f *fakeAuthority) VerifyUserToken(context.Context, http.Header) (string, error) {
	if f.verifyErr != nil {
		return "", f.verifyErr
	}
	return f.userID, nil
}

func (f *fakeAuthority) CheckAccess(_ context.Context, resourceID, userID string) (whop.AccessCheck, error) {
	f.calls++
	if f.checkErr != nil {
		return whop.AccessCheck{}, f.checkErr
	}
	return f.checks[resourceID+"/"+userID], nil
}

func TestVerifyCurrentUser(t *testing.T) {
	g := New(&fakeAuthority{userID: "user_1"})

	userID, err := g.VerifyCurrentUser(context.Background(), http.Header{})
	if err != nil {
		t.Fatalf("VerifyCurrentUser: %v", err)
	}
	if userID != "user_1" {
		t.Fatalf("userID = %q", userID)
	}
}

func TestVerifyCurrentUserFailure(t *testing.T) {
	g := New(&fakeAuthority{verifyErr: whop.ErrMissingToken})

	_, err := g.VerifyCurrentUser(context.Background(), http.Header{})
	if !IsAuthenticationError(err) {
		t.Fatalf("expected AuthenticationError, got %v", err)
	}
	if IsAuthorizationError(err) {
		t.Fatal("authentication failure must not look like an authorization failure")
	}
	if !errors.Is(err, whop.ErrMissingToken) {
		t.Fatalf("cause lost: %v", err)
	}
}

func TestRequireExperienceAdmin(t *testing.T) {
	auth := &fakeAuthority{checks: map[string]whop.AccessCheck{
		"exp_1/admin":    {HasAccess: true, AccessLevel: model.AccessLevelAdmin},
		"exp_1/customer": {HasAccess: true, AccessLevel: model.AccessLevelCustomer},
		"exp_1/nobody":   {HasAccess: false, AccessLevel: model.AccessLevelNoAccess},
	}}
	g := New(auth)
	ctx := context.Background()

	access, err := g.RequireExperienceAdmin(ctx, "exp_1", "admin")
	if err != nil {
		t.Fatalf("admin rejected: %v", err)
	}
	if access.Level != model.AccessLevelAdmin || access.ExperienceID != "exp_1" {
		t.Fatalf("unexpected decision: %+v", access)
	}

	for _, userID := range []string{"customer", "nobody"} {
		_, err := g.RequireExperienceAdmin(ctx, "exp_1", userID)
		if !IsAuthorizationError(err) {
			t.Errorf("%s: expected AuthorizationError, got %v", userID, err)
		}
		if IsAuthenticationError(err) {
			t.Errorf("%s: authorization failure reported as authentication failure", userID)
		}
	}
}

func TestRequireCompanyAccess(t *testing.T) {
	g := New(&fakeAuthority{checks: map[string]whop.AccessCheck{
		"biz_1/owner": {HasAccess: true},
		"biz_1/guest": {HasAccess: false},
	}})
	ctx := context.Background()

	access, err := g.RequireCompanyAccess(ctx, "biz_1", "owner")
	if err != nil {
		t.Fatalf("owner rejected: %v", err)
	}
	if !access.HasAccess {
		t.Fatalf("unexpected decision: %+v", access)
	}

	if _, err := g.RequireCompanyAccess(ctx, "biz_1", "guest"); !IsAuthorizationError(err) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

func TestRequireResourceAccessDispatch(t *testing.T) {
	g := New(&fakeAuthority{checks: map[string]whop.AccessCheck{
		"exp_1/u": {HasAccess: true, AccessLevel: model.AccessLevelAdmin},
		"biz_1/u": {HasAccess: true},
	}})
	ctx := context.Background()

	decision, err := g.RequireResourceAccess(ctx, "exp_1", "u")
	if err != nil {
		t.Fatalf("experience: %v", err)
	}
	if _, ok := decision.(model.ExperienceAccess); !ok {
		t.Fatalf("expected ExperienceAccess, got %T", decision)
	}

	decision, err = g.RequireResourceAccess(ctx, "biz_1", "u")
	if err != nil {
		t.Fatalf("company: %v", err)
	}
	if _, ok := decision.(model.CompanyAccess); !ok {
		t.Fatalf("expected CompanyAccess, got %T", decision)
	}

	if _, err := g.RequireResourceAccess(ctx, "prod_1", "u"); !IsAuthorizationError(err) {
		t.Fatalf("unknown resource: expected AuthorizationError, got %v", err)
	}
}

func TestAuthorityFailureIsNeitherAuthKind(t *testing.T) {
	cause := errors.New("connection refused")
	auth := &fakeAuthority{checkErr: cause}
	g := New(auth)

	_, err := g.RequireExperienceAdmin(context.Background(), "exp_1", "u")
	if err == nil {
		t.Fatal("expected error")
	}
	if IsAuthorizationError(err) || IsAuthenticationError(err) {
		t.Fatalf("transport failure misclassified: %v", err)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("cause lost: %v", err)
	}
	if auth.calls != 1 {
		t.Fatalf("expected exactly one call, got %d", auth.calls)
	}
}

func TestDecisionsAreNotCached(t *testing.T) {
	auth := &fakeAuthority{checks: map[string]whop.AccessCheck{
		"exp_1/u": {HasAccess: true, AccessLevel: model.AccessLevelAdmin},
	}}
	g := New(auth)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if _, err := g.RequireExperienceAdmin(ctx, "exp_1", "u"); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if auth.calls != 3 {
		t.Fatalf("expected 3 authority calls, got %d", auth.calls)
	}

	// A revoked level takes effect on the next call.
	auth.checks["exp_1/u"] = whop.AccessCheck{HasAccess: true, AccessLevel: model.AccessLevelCustomer}
	if _, err := g.RequireExperienceAdmin(ctx, "exp_1", "u"); !IsAuthorizationError(err) {
		t.Fatalf("expected AuthorizationError after revocation, got %v", err)
	}
}
