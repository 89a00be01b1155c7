package model

import "strings"

// AccessLevel is the permission tier the platform reports for an experience.
type AccessLevel string

const (
	AccessLevelAdmin    AccessLevel = "admin"
	AccessLevelCustomer AccessLevel = "customer"
	AccessLevelNoAccess AccessLevel = "no_access"
)

// ResourceKind identifies which kind of platform resource an id refers to.
type ResourceKind string

const (
	ResourceExperience ResourceKind = "experience"
	ResourceCompany    ResourceKind = "company"
	ResourceUnknown    ResourceKind = "unknown"
)

// ResourceKindOf derives the resource kind from the platform's id prefix
// ("exp_" for experiences, "biz_" for companies).
func ResourceKindOf(resourceID string) ResourceKind {
	switch {
	case strings.HasPrefix(resourceID, "exp_"):
		return ResourceExperience
	case strings.HasPrefix(resourceID, "biz_"):
		return ResourceCompany
	default:
		return ResourceUnknown
	}
}

// AccessDecision is the outcome of a permission check for one
// (resource, user) pair. It is only valid for the request that produced it.
//
// The concrete type is either ExperienceAccess or CompanyAccess; callers
// switch on it.
type AccessDecision interface {
	Kind() ResourceKind
	Granted() bool
	accessDecision()
}

// ExperienceAccess is the decision shape for experiences.
type ExperienceAccess struct {
	ExperienceID string      `json:"experience_id"`
	UserID       string      `json:"user_id"`
	Level        AccessLevel `json:"access_level"`
}

func (ExperienceAccess) Kind() ResourceKind { return ResourceExperience }

// Granted reports whether the user holds the admin level.
func (a ExperienceAccess) Granted() bool { return a.Level == AccessLevelAdmin }

func (ExperienceAccess) accessDecision() {}

// CompanyAccess is the decision shape for companies.
type CompanyAccess struct {
	CompanyID string `json:"company_id"`
	UserID    string `json:"user_id"`
	HasAccess bool   `json:"has_access"`
}

func (CompanyAccess) Kind() ResourceKind { return ResourceCompany }

func (a CompanyAccess) Granted() bool { return a.HasAccess }

func (CompanyAccess) accessDecision() {}
