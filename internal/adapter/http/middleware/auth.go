package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"taskvault/internal/core/ports"
	"taskvault/pkg/apierrors"
)

const userIDKey = "userID"

// TokenVerifier turns a bearer token into the user id it was issued for.
type TokenVerifier interface {
	VerifyToken(token string) (string, error)
}

// RequireAuth guards a route group: it verifies the bearer token and
// confirms the account still exists before exposing the user id to handlers.
func RequireAuth(verifier TokenVerifier, users ports.UserStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		userID, err := verifier.VerifyToken(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		if _, err := users.FindByID(c.Request.Context(), userID); err != nil {
			c.AbortWithStatusJSON(
				http.StatusUnauthorized,
				apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
			)
			return
		}

		SetUserID(c, userID)
		c.Next()
	}
}

// SetUserID stores the authenticated user id on the request context.
func SetUserID(c *gin.Context, id string) {
	c.Set(userIDKey, id)
}

func GetUserID(c *gin.Context) string {
	if id, exists := c.Get(userIDKey); exists {
		if s, ok := id.(string); ok {
			return s
		}
	}
	return ""
}
