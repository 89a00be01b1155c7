package whop

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

const (
	// UserTokenHeader carries the signed user token on proxied requests.
	UserTokenHeader = "x-whop-user-token"

	tokenIssuer = "urn:whopcom:exp-proxy"
)

var (
	// ErrMissingToken is returned when the request has no user token.
	ErrMissingToken = errors.New("missing user token")

	// ErrInvalidToken is returned when the token fails verification.
	ErrInvalidToken = errors.New("invalid user token")
)

// UserClaims are the claims of a user token. Subject is the user ID.
type UserClaims struct {
	jwt.RegisteredClaims
}

// VerifyUserToken validates the user token on the inbound request headers
// and returns the user ID it was issued for.
func (c *Client) VerifyUserToken(_ context.Context, header http.Header) (string, error) {
	raw := header.Get(UserTokenHeader)
	if raw == "" {
		return "", ErrMissingToken
	}
	if c.tokenKey == nil {
		return "", fmt.Errorf("%w: no token public key configured", ErrInvalidToken)
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodES256.Alg()}),
		jwt.WithIssuer(tokenIssuer),
	}
	if c.appID != "" {
		opts = append(opts, jwt.WithAudience(c.appID))
	}

	var claims UserClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (interface{}, error) {
		return c.tokenKey, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	if claims.Subject == "" {
		return "", fmt.Errorf("%w: token has no subject", ErrInvalidToken)
	}
	return claims.Subject, nil
}
