package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/emre/scholaris/internal/app/models/dto"
	"github.com/emre/scholaris/internal/pkg/validation"
)

// IdentityHeader names the trusted header carrying the acting user. The
// gateway in front of this service authenticates the caller and injects
// it; the service itself performs no authentication.
const IdentityHeader = "X-User-Email"

// identityKey is the gin context key the acting user is stored under.
const identityKey = "actingUser"

// RequireIdentity rejects requests that carry no valid acting-user header.
// Every audited write path runs behind this middleware.
func RequireIdentity() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		email := strings.TrimSpace(ctx.GetHeader(IdentityHeader))
		if email == "" || !validation.IsEmail(email) {
			detail := dto.NewErrorDetail(dto.ErrorCodeMissingIdentity,
				"A valid "+IdentityHeader+" header is required")
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, dto.NewErrorResponse(detail))
			return
		}
		ctx.Set(identityKey, email)
		ctx.Next()
	}
}

// ActingUser returns the identity the middleware stored for this request.
func ActingUser(ctx *gin.Context) string {
	return ctx.GetString(identityKey)
}
