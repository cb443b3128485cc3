package middleware

import (
	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/gin-gonic/gin"
)

func RequireRole(allowed ...models.UserType) gin.HandlerFunc {
	allow := map[models.UserType]struct{}{}
	for _, a := range allowed {
		if a.Valid() {
			allow[a] = struct{}{}
		}
	}

	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			abort(c, utils.E(utils.CodeUnauthorized, "RequireRole", "unauthorized", nil))
			return
		}
		if _, ok := allow[actor.Type]; !ok {
			abort(c, utils.E(utils.CodeForbidden, "RequireRole", "forbidden", nil))
			return
		}
		c.Next()
	}
}

func RequireAdmin() gin.HandlerFunc { return RequireRole(models.UserTypeAdmin) }

func RequireEmployer() gin.HandlerFunc { return RequireRole(models.UserTypeEmployer) }

// RequireJobCreator gates the "my jobs" area.
func RequireJobCreator() gin.HandlerFunc {
	return RequireRole(models.UserTypeAspirant, models.UserTypeEmployer)
}
