package guard

import (
	"errors"
	"fmt"
)

// AuthenticationError means the request carries no valid user identity.
type AuthenticationError struct {
	Err error
}

func (e *AuthenticationError) Error() string {
	return fmt.Sprintf("authentication failed: %v", e.Err)
}

func (e *AuthenticationError) Unwrap() error { return e.Err }

// AuthorizationError means the user is known but may not access the resource.
type AuthorizationError struct {
	UserID     string
	ResourceID string
	Reason     string
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("access denied: user %s %s %s", e.UserID, e.Reason, e.ResourceID)
}

// IsAuthenticationError reports whether err (or any error in its chain) is
// an AuthenticationError.
func IsAuthenticationError(err error) bool {
	var authErr *AuthenticationError
	return errors.As(err, &authErr)
}

// IsAuthorizationError reports whether err (or any error in its chain) is
// an AuthorizationError.
func IsAuthorizationError(err error) bool {
	var authzErr *AuthorizationError
	return errors.As(err, &authzErr)
}
