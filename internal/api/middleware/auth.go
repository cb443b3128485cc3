package middleware

import (
	"errors"
	"strings"

	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
	CtxClaims = "claims"
)

type envelope struct {
	Status  bool              `json:"status"`
	Errors  utils.FieldErrors `json:"errors"`
	Message string            `json:"message,omitempty"`
}

func abort(c *gin.Context, err error) {
	msg := "error"
	var ae *utils.AppError
	if errors.As(err, &ae) && ae.Message != "" {
		msg = ae.Message
	}
	c.AbortWithStatusJSON(utils.HTTPStatus(err), envelope{Status: false, Errors: utils.FieldErrors{}, Message: msg})
}

// tokenFrom reads the bearer header first, then the auth cookie. Browsers cannot
// set headers on a WebSocket handshake, so upgrades may also pass ?access_token=.
func tokenFrom(c *gin.Context, cookieName string) string {
	if auth := c.GetHeader("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookieName != "" {
		if v, err := c.Cookie(cookieName); err == nil && v != "" {
			return strings.TrimSpace(v)
		}
	}
	if strings.EqualFold(c.GetHeader("Upgrade"), "websocket") {
		return strings.TrimSpace(c.Query("access_token"))
	}
	return ""
}

// Auth rejects requests without a valid, unrevoked access token.
func Auth(tokens services.TokenService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := tokenFrom(c, cookieName)
		if raw == "" {
			abort(c, utils.E(utils.CodeUnauthorized, "Auth", "missing bearer token", nil))
			return
		}

		claims, err := tokens.Parse(c.Request.Context(), raw)
		if err != nil {
			abort(c, err)
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a valid token is present and lets anonymous requests through.
func OptionalAuth(tokens services.TokenService, cookieName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if raw := tokenFrom(c, cookieName); raw != "" {
			if claims, err := tokens.Parse(c.Request.Context(), raw); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

func setClaims(c *gin.Context, claims *services.TokenClaims) {
	c.Set(CtxUserID, claims.Subject)
	c.Set(CtxRole, string(claims.Role))
	c.Set(CtxClaims, claims)
}

// ActorFrom returns the caller attached by Auth or OptionalAuth.
func ActorFrom(c *gin.Context) (authz.Actor, bool) {
	claims := ClaimsFrom(c)
	if claims == nil {
		return authz.Actor{}, false
	}
	a := authz.Actor{ID: claims.Subject, Type: claims.Role}
	return a, a.Authenticated()
}

func ClaimsFrom(c *gin.Context) *services.TokenClaims {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil
	}
	claims, _ := v.(*services.TokenClaims)
	return claims
}
