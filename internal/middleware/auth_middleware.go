package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mkaya/campusdesk/internal/app/auth"
	"github.com/mkaya/campusdesk/internal/app/models"
	"github.com/mkaya/campusdesk/internal/app/models/dto"
	pkgauth "github.com/mkaya/campusdesk/internal/pkg/auth"
)

// identityKey is the gin context key carrying the request identity
const identityKey = "identity"

// JWTAuthMiddleware validates the bearer token and stores the resulting
// identity in the request context. The identity travels with the request
// only; nothing is kept in process state between requests.
func JWTAuthMiddleware(jwtService *pkgauth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := pkgauth.ExtractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abortUnauthorized(c, "missing or malformed authorization header")
			return
		}

		claims, err := jwtService.ValidateAndExtractClaims(token)
		if err != nil {
			abortUnauthorized(c, "invalid or expired token")
			return
		}

		c.Set(identityKey, &auth.Identity{
			ID:   claims.UserID,
			Name: claims.Name,
			Role: models.Role(claims.Role),
		})

		c.Next()
	}
}

// RoleRequired rejects requests whose identity holds none of the allowed
// roles. Admin must be listed explicitly.
func RoleRequired(allowed ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ident := GetIdentity(c)
		if ident == nil {
			abortUnauthorized(c, "not authenticated")
			return
		}

		for _, role := range allowed {
			if ident.Role == role {
				c.Next()
				return
			}
		}

		c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
			dto.NewErrorDetail(dto.ErrorCodeForbidden, "insufficient role for this operation")))
	}
}

// GetIdentity returns the authenticated identity of the request, or nil
// when the request did not pass the auth middleware.
func GetIdentity(c *gin.Context) *auth.Identity {
	value, exists := c.Get(identityKey)
	if !exists {
		return nil
	}
	ident, ok := value.(*auth.Identity)
	if !ok {
		return nil
	}
	return ident
}

func abortUnauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeUnauthorized, message)))
}
