package http

import (
	"github.com/gin-gonic/gin"

	"github.com/yanqian/outfit-studio/internal/domain/auth"
)

const authClaimsKey = "auth_claims"

func setClaims(c *gin.Context, claims auth.Claims) {
	c.Set(authClaimsKey, claims)
}

// subjectOf returns the caller's token subject, or "anonymous" when auth is off.
func subjectOf(c *gin.Context) string {
	value, ok := c.Get(authClaimsKey)
	if !ok {
		return "anonymous"
	}
	claims, ok := value.(auth.Claims)
	if !ok || claims.Subject == "" {
		return "anonymous"
	}
	return claims.Subject
}
