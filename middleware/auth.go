package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fadhlanhapp/giftbuddy-backend/auth"
	"github.com/fadhlanhapp/giftbuddy-backend/config"
	"github.com/fadhlanhapp/giftbuddy-backend/logger"
	"github.com/fadhlanhapp/giftbuddy-backend/repository"
	"github.com/fadhlanhapp/giftbuddy-backend/utils"
)

const principalKey = "principal"

// Auth validates the bearer token and stores the resolved Principal in the context.
// With SkipAuth the configured mock user is used instead of a token.
func Auth(cfg config.AuthConfig, users repository.UserRepository, log logger.Logger) gin.HandlerFunc {
	secret := []byte(cfg.JWTSecret)

	return func(c *gin.Context) {
		var userID string
		if cfg.SkipAuth {
			userID = cfg.MockUserID
		} else {
			header := c.GetHeader("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				utils.HandleError(c, utils.NewUnauthorizedError("Missing or invalid Authorization header"))
				c.Abort()
				return
			}

			subject, err := auth.ParseToken(strings.TrimPrefix(header, "Bearer "), secret)
			if err != nil {
				log.BusinessError("token rejected", err, "path", c.FullPath())
				utils.HandleError(c, utils.NewUnauthorizedError("Invalid token"))
				c.Abort()
				return
			}
			userID = subject
		}

		principal, err := auth.Resolve(c.Request.Context(), users, userID)
		if err != nil {
			log.InternalError("resolve principal", err, "user_id", userID)
			utils.HandleError(c, utils.NewStorageError("resolve principal", err))
			c.Abort()
			return
		}

		c.Set(principalKey, principal)
		c.Next()
	}
}

// PrincipalFrom returns the Principal stored by Auth
func PrincipalFrom(c *gin.Context) (auth.Principal, bool) {
	value, ok := c.Get(principalKey)
	if !ok {
		return nil, false
	}
	principal, ok := value.(auth.Principal)
	return principal, ok
}

// SetPrincipal stores p as the caller; handler tests use it in place of Auth
func SetPrincipal(p auth.Principal) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(principalKey, p)
		c.Next()
	}
}
