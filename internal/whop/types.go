package whop

import (
	"encoding/json"

	"github.com/nhle/whop-starter/internal/model"
)

// AccessCheck is the raw answer to a permission query. Experiences carry
// an access level; companies only the has-access flag.
type AccessCheck struct {
	HasAccess   bool              `json:"has_access"`
	AccessLevel model.AccessLevel `json:"access_level"`
}

// UnmarshalJSON accepts both the snake_case and camelCase field spellings
// the platform has used for this payload.
func (a *AccessCheck) UnmarshalJSON(data []byte) error {
	var raw struct {
		HasAccess        *bool  `json:"has_access"`
		HasAccessCamel   *bool  `json:"hasAccess"`
		AccessLevel      string `json:"access_level"`
		AccessLevelCamel string `json:"accessLevel"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	switch {
	case raw.HasAccess != nil:
		a.HasAccess = *raw.HasAccess
	case raw.HasAccessCamel != nil:
		a.HasAccess = *raw.HasAccessCamel
	}

	a.AccessLevel = model.AccessLevel(raw.AccessLevel)
	if a.AccessLevel == "" {
		a.AccessLevel = model.AccessLevel(raw.AccessLevelCamel)
	}
	return nil
}

// Experience is a tenant-scoped unit of content.
type Experience struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Company     *CompanyRef `json:"company,omitempty"`
	App         *AppRef     `json:"app,omitempty"`
}

// CompanyRef is the short company form embedded in other resources.
type CompanyRef struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// AppRef is the short app form embedded in experiences.
type AppRef struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Company is a business tenant.
type Company struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Route       string `json:"route,omitempty"`
	MemberCount int    `json:"member_count"`
	Verified    bool   `json:"verified"`
}

// User is a platform account.
type User struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Bio      string `json:"bio,omitempty"`
}

// DisplayName returns the user's name, or @username when no name is set.
func (u User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	return "@" + u.Username
}
