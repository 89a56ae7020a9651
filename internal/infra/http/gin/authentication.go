package ginserver

import (
	"net/http"
	"strings"

	gin "github.com/gin-gonic/gin"

	domainuser "compramex/internal/domain/user"
	"compramex/internal/infra/session"
)

const principalContextKey = "compramex.principal"

type principal struct {
	Identity domainuser.Identity
	Token    string
}

// AuthMiddleware resolves an opaque bearer token against the local session
// cache. Unauthenticated requests pass through; handlers that need a user
// call requireUser.
type AuthMiddleware struct {
	Sessions *session.Store
}

func (m AuthMiddleware) Handle(c *gin.Context) {
	token := extractBearerToken(c.GetHeader("Authorization"))
	if token == "" || m.Sessions == nil {
		c.Next()
		return
	}
	identity, ok := m.Sessions.Resolve(token)
	if !ok {
		c.Next()
		return
	}
	setPrincipal(c, principal{Identity: identity, Token: token})
	c.Next()
}

func setPrincipal(c *gin.Context, p principal) {
	c.Set(principalContextKey, p)
}

func currentPrincipal(c *gin.Context) (principal, bool) {
	val, exists := c.Get(principalContextKey)
	if !exists {
		return principal{}, false
	}
	p, ok := val.(principal)
	return p, ok
}

func requireUser(c *gin.Context) (principal, bool) {
	p, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth required"})
		return principal{}, false
	}
	return p, true
}

func extractBearerToken(header string) string {
	if header == "" {
		return ""
	}
	if !strings.HasPrefix(strings.ToLower(header), "bearer ") {
		return ""
	}
	return strings.TrimSpace(header[7:])
}
