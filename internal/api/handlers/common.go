package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/RafiALMahmud/Job-portal1/internal/api/middleware"
	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/utils"
	"github.com/gin-gonic/gin"
)

// Envelope is the body of every JSON response.
type Envelope struct {
	Status   bool              `json:"status"`
	Errors   utils.FieldErrors `json:"errors"`
	Message  string            `json:"message,omitempty"`
	Redirect string            `json:"redirect,omitempty"`
	Data     any               `json:"data,omitempty"`
}

func respond(c *gin.Context, status int, msg, redirect string, data any) {
	c.JSON(status, Envelope{
		Status:   true,
		Errors:   utils.FieldErrors{},
		Message:  msg,
		Redirect: redirect,
		Data:     data,
	})
}

func writeError(c *gin.Context, err error) {
	status := utils.HTTPStatus(err)
	env := Envelope{Status: false, Errors: utils.FieldErrors{}}

	var ae *utils.AppError
	if errors.As(err, &ae) {
		env.Message = ae.Message
		if ae.Fields != nil {
			env.Errors = ae.Fields
		}
	}
	if status >= http.StatusInternalServerError {
		_ = c.Error(err)
		env.Message = http.StatusText(status)
	}
	c.JSON(status, env)
}

func requireActor(c *gin.Context) (authz.Actor, bool) {
	if a, ok := middleware.ActorFrom(c); ok {
		return a, true
	}
	writeError(c, utils.E(utils.CodeUnauthorized, "Auth", "unauthorized", nil))
	return authz.Actor{}, false
}

// bind decodes the request body by content type (JSON or form) into dst.
func bind(c *gin.Context, op string, dst any) bool {
	if err := c.ShouldBind(dst); err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "invalid request body", err))
		return false
	}
	return true
}

func pageParam(c *gin.Context) int {
	p, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || p < 1 {
		return 1
	}
	return p
}
