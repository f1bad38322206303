package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/devlinkhq/devlink/utils"
)

const (
	// AuthHeader carries the opaque identity token on every protected request.
	AuthHeader = "x-auth-token"
	// ContextUserIDKey is the key used to store the authenticated user ID in Gin context.
	ContextUserIDKey = "user_id"
)

// AuthRequired ensures the request carries a valid identity token. The two
// failure modes (missing header, failed verification) produce the same 401
// status but distinct log lines; the store is never touched here.
func AuthRequired() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token := strings.TrimSpace(ctx.GetHeader(AuthHeader))
		if token == "" {
			utils.Sugar.Debugw("auth rejected: no token", "path", ctx.FullPath())
			utils.ErrorMessage(ctx, http.StatusUnauthorized, "No token, authentication denied")
			ctx.Abort()
			return
		}

		claims, err := utils.ParseToken(token)
		if err != nil {
			utils.Sugar.Debugw("auth rejected: invalid token", "path", ctx.FullPath(), "err", err)
			utils.ErrorMessage(ctx, http.StatusUnauthorized, "Token is not valid")
			ctx.Abort()
			return
		}

		ctx.Set(ContextUserIDKey, claims.UserID)
		ctx.Next()
	}
}
