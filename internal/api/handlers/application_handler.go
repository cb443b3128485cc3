package handlers

import (
	"net/http"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/gin-gonic/gin"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	app, err := h.svc.Apply(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "You have successfully applied for this job.", "/account/jobs-applied", app)
}

func (h *ApplicationHandler) JobsApplied(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	page, err := h.svc.JobsApplied(c.Request.Context(), actor, pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", page)
}

func (h *ApplicationHandler) Save(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	sj, err := h.svc.SaveJob(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Job saved successfully.", "", sj)
}

func (h *ApplicationHandler) Unsave(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.svc.UnsaveJob(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job removed from saved jobs.", "", nil)
}

func (h *ApplicationHandler) SavedJobs(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	page, err := h.svc.SavedJobs(c.Request.Context(), actor, pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", page)
}

func (h *ApplicationHandler) Applicants(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	view, err := h.svc.ViewApplicants(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", view)
}

func (h *ApplicationHandler) Accept(c *gin.Context) {
	h.setStatus(c, models.ApplicationAccepted, "Applicant accepted.")
}

func (h *ApplicationHandler) Reject(c *gin.Context) {
	h.setStatus(c, models.ApplicationRejected, "Applicant rejected.")
}

func (h *ApplicationHandler) Interview(c *gin.Context) {
	h.setStatus(c, models.ApplicationInterview, "Applicant shortlisted for interview.")
}

func (h *ApplicationHandler) setStatus(c *gin.Context, status models.ApplicationStatus, msg string) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	app, err := h.svc.SetStatus(c.Request.Context(), actor, c.Param("id"), status)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, msg, "", app)
}
