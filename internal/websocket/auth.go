package websocket

import (
	"crypto/rsa"
	"fmt"
	"net/http"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/utils"
	"github.com/deshmukhatharva11/innovation-hub-sub002/internal/utils/types"
)

type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// AuthResult is what the credential verifier hands back for a valid token.
type AuthResult struct {
	UserID string
	Role   string
}

// AuthenticatorFunc verifies the bearer token carried on the handshake
// request. Any error rejects the handshake before a Client exists.
type AuthenticatorFunc func(r *http.Request) (*AuthResult, error)

// JWTAuthenticator validates an RS256 bearer token and then checks the
// server-side session record in Redis, so revoked sessions and deleted
// identities are rejected even while their token is still unexpired.
func JWTAuthenticator(publicKey *rsa.PublicKey, rdb *redis.Client) AuthenticatorFunc {
	return func(r *http.Request) (*AuthResult, error) {
		token := tokenFromRequest(r)
		if token == "" {
			return nil, &AuthError{Message: "missing bearer token"}
		}

		claims, err := utils.ParseAndVerifySign(token, publicKey)
		if err != nil {
			return nil, &AuthError{Message: "invalid or expired token"}
		}
		if claims.Role == "" {
			return nil, &AuthError{Message: "token carries no role"}
		}

		sessionKey := fmt.Sprintf("session:%s", claims.Sub)
		session, appErr := utils.GetCacheData[types.Session](r.Context(), rdb, sessionKey)
		if appErr != nil {
			return nil, &AuthError{Message: "session lookup failed"}
		}
		if session == nil || session.Status != types.SessionValid {
			return nil, &AuthError{Message: "session not found or revoked"}
		}

		return &AuthResult{UserID: claims.Sub, Role: claims.Role}, nil
	}
}

// tokenFromRequest checks, in order of precedence: the explicit auth header,
// the standard Authorization header, then the token query parameter.
func tokenFromRequest(r *http.Request) string {
	if token := r.Header.Get("X-Auth-Token"); token != "" {
		return token
	}

	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			return parts[1]
		}
	}

	return r.URL.Query().Get("token")
}
