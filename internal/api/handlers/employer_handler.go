package handlers

import (
	"net/http"

	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/gin-gonic/gin"
)

type EmployerHandler struct {
	svc services.EmployerService
}

func NewEmployerHandler(svc services.EmployerService) *EmployerHandler {
	return &EmployerHandler{svc: svc}
}

func (h *EmployerHandler) Dashboard(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	d, err := h.svc.Dashboard(c.Request.Context(), actor)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", d)
}

func (h *EmployerHandler) UpdateCompanyInfo(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in services.CompanyInput
	if !bind(c, "EmployerHandler.UpdateCompanyInfo", &in) {
		return
	}
	emp, err := h.svc.UpdateCompanyInfo(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Company information updated successfully.", "/employer/dashboard", emp)
}
