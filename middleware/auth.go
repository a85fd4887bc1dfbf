package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/soleworks/soleworks-api/services"
)

// Auth error codes
const (
	CodeNoToken       = "NO_TOKEN"
	CodeInvalidToken  = "INVALID_TOKEN"
	CodeNotAuthorized = "NOT_AUTHORIZED"
)

const principalKey = "principal"

// Principal is the authenticated identity extracted from a verified token
type Principal struct {
	UserID string
	Role   string
}

// AuthError represents an authorization failure and the HTTP status it maps to
type AuthError struct {
	Code    string
	Status  int
	Message string
}

func (e *AuthError) Error() string {
	return e.Message
}

// AdminGate verifies bearer credentials and admits only admin-role callers.
// It is applied to mutating order operations only; creation and reads stay
// public.
type AdminGate struct {
	tokens *services.TokenService
}

// NewAdminGate creates a gate backed by the given token service
func NewAdminGate(tokens *services.TokenService) *AdminGate {
	return &AdminGate{tokens: tokens}
}

// Authorize verifies the Authorization header and returns the caller's
// principal, or the auth error to respond with
func (g *AdminGate) Authorize(header string) (*Principal, *AuthError) {
	token := extractToken(header)
	if token == "" {
		return nil, &AuthError{
			Code:    CodeNoToken,
			Status:  http.StatusUnauthorized,
			Message: "No token provided",
		}
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return nil, &AuthError{
			Code:    CodeInvalidToken,
			Status:  http.StatusForbidden,
			Message: "Failed to authenticate token",
		}
	}

	if claims.Role != "admin" {
		return nil, &AuthError{
			Code:    CodeNotAuthorized,
			Status:  http.StatusForbidden,
			Message: "Not authorized",
		}
	}

	return &Principal{UserID: claims.Subject, Role: claims.Role}, nil
}

// RequireAdmin is the gin middleware form of the gate
func (g *AdminGate) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, authErr := g.Authorize(c.GetHeader("Authorization"))
		if authErr != nil {
			c.JSON(authErr.Status, gin.H{
				"status":  "error",
				"message": authErr.Message,
			})
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// GetPrincipal extracts the authenticated principal from the Gin context
func GetPrincipal(c *gin.Context) (*Principal, bool) {
	value, exists := c.Get(principalKey)
	if !exists {
		return nil, false
	}
	principal, ok := value.(*Principal)
	return principal, ok
}

// extractToken returns the bearer token carried by an Authorization header.
// Both "Bearer <token>" and a bare token are accepted, as the storefront
// clients have sent both over time. Anything else is treated as no token.
func extractToken(header string) string {
	fields := strings.Fields(header)
	switch {
	case len(fields) == 2 && fields[0] == "Bearer":
		return fields[1]
	case len(fields) == 1:
		return fields[0]
	default:
		return ""
	}
}
