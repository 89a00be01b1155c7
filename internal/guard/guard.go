// Package guard gates privileged operations behind the platform's identity
// and permission checks. Decisions are never cached and failures are never
// retried.
package guard

import (
	"context"
	"fmt"
	"net/http"

	"github.com/nhle/whop-starter/internal/model"
	"github.com/nhle/whop-starter/internal/whop"
)

// Authority is the external identity and access provider.
type Authority interface {
	VerifyUserToken(ctx context.Context, header http.Header) (string, error)
	CheckAccess(ctx context.Context, resourceID, userID string) (whop.AccessCheck, error)
}

// Guard authenticates requests and authorizes users against resources.
type Guard struct {
	authority Authority
}

// New creates a Guard backed by the given authority.
func New(authority Authority) *Guard {
	return &Guard{authority: authority}
}

// VerifyCurrentUser returns the ID of the user the request was issued for.
func (g *Guard) VerifyCurrentUser(ctx context.Context, header http.Header) (string, error) {
	userID, err := g.authority.VerifyUserToken(ctx, header)
	if err != nil {
		return "", &AuthenticationError{Err: err}
	}
	return userID, nil
}

// RequireExperienceAdmin succeeds only when userID holds the admin access
// level on the experience.
func (g *Guard) RequireExperienceAdmin(
	ctx context.Context,
	experienceID string,
	userID string,
) (model.ExperienceAccess, error) {
	check, err := g.CheckResourceAccess(ctx, experienceID, userID)
	if err != nil {
		return model.ExperienceAccess{}, err
	}

	access := model.ExperienceAccess{
		ExperienceID: experienceID,
		UserID:       userID,
		Level:        check.AccessLevel,
	}
	if !access.Granted() {
		return access, &AuthorizationError{
			UserID:     userID,
			ResourceID: experienceID,
			Reason:     "does not have admin access to experience",
		}
	}
	return access, nil
}

// RequireCompanyAccess succeeds only when the platform reports that userID
// has access to the company.
func (g *Guard) RequireCompanyAccess(
	ctx context.Context,
	companyID string,
	userID string,
) (model.CompanyAccess, error) {
	check, err := g.CheckResourceAccess(ctx, companyID, userID)
	if err != nil {
		return model.CompanyAccess{}, err
	}

	access := model.CompanyAccess{
		CompanyID: companyID,
		UserID:    userID,
		HasAccess: check.HasAccess,
	}
	if !access.Granted() {
		return access, &AuthorizationError{
			UserID:     userID,
			ResourceID: companyID,
			Reason:     "does not have access to company",
		}
	}
	return access, nil
}

// RequireResourceAccess applies the predicate matching the resource kind:
// admin level for experiences, the has-access flag for companies.
func (g *Guard) RequireResourceAccess(
	ctx context.Context,
	resourceID string,
	userID string,
) (model.AccessDecision, error) {
	switch model.ResourceKindOf(resourceID) {
	case model.ResourceExperience:
		return g.RequireExperienceAdmin(ctx, resourceID, userID)
	case model.ResourceCompany:
		return g.RequireCompanyAccess(ctx, resourceID, userID)
	default:
		return nil, &AuthorizationError{
			UserID:     userID,
			ResourceID: resourceID,
			Reason:     "cannot be checked against unknown resource",
		}
	}
}

// CheckResourceAccess returns the raw decision without enforcing it.
func (g *Guard) CheckResourceAccess(
	ctx context.Context,
	resourceID string,
	userID string,
) (whop.AccessCheck, error) {
	check, err := g.authority.CheckAccess(ctx, resourceID, userID)
	if err != nil {
		return whop.AccessCheck{}, fmt.Errorf("checking access of %s to %s: %w", userID, resourceID, err)
	}
	return check, nil
}
