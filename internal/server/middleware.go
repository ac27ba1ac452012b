package server

import (
	"strings"

	"github.com/gin-gonic/gin"
	identity "github.com/smallbiznis/estatehub/internal/identity/domain"
	obscontext "github.com/smallbiznis/estatehub/internal/observability/context"
	"github.com/smallbiznis/estatehub/internal/principalcontext"
)

const bearerPrefix = "Bearer "

// AuthRequired resolves the principal from the bearer token and stores it on
// the request context.
func (s *Server) AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if len(header) <= len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		principal, err := s.tokens.Parse(strings.TrimSpace(header[len(bearerPrefix):]))
		if err != nil {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		estateID := ""
		if principal.EstateID != nil {
			estateID = principal.EstateID.String()
		}
		ctx := principalcontext.WithPrincipal(c.Request.Context(), principal)
		ctx = obscontext.WithActor(ctx, strings.ToLower(string(principal.Role)), principal.ID.String(), estateID)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// principal returns the authenticated principal. Handlers only run behind
// AuthRequired, so a miss is treated as unauthenticated.
func principal(c *gin.Context) (identity.Principal, bool) {
	p, ok := principalcontext.PrincipalFromContext(c.Request.Context())
	if !ok {
		AbortWithError(c, ErrUnauthorized)
		return identity.Principal{}, false
	}
	return p, true
}
