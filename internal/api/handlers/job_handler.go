package handlers

import (
	"net/http"

	"github.com/RafiALMahmud/Job-portal1/internal/api/middleware"
	"github.com/RafiALMahmud/Job-portal1/internal/authz"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/gin-gonic/gin"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// myJobsPath is where the job list of the caller's area lives.
func myJobsPath(a authz.Actor) string {
	if a.IsEmployer() {
		return "/employer/dashboard"
	}
	return "/account/my-jobs"
}

func (h *JobHandler) CreateForm(c *gin.Context) {
	opts, err := h.svc.FormOptions(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", opts)
}

func (h *JobHandler) Store(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in services.JobInput
	if !bind(c, "JobHandler.Store", &in) {
		return
	}
	job, err := h.svc.CreateJob(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Job added successfully!", myJobsPath(actor), job)
}

func (h *JobHandler) MyJobs(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	page, err := h.svc.ListMyJobs(c.Request.Context(), actor, pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", page)
}

func (h *JobHandler) Edit(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	form, err := h.svc.EditJob(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", form)
}

func (h *JobHandler) Update(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in services.JobInput
	if !bind(c, "JobHandler.Update", &in) {
		return
	}
	job, err := h.svc.UpdateJob(c.Request.Context(), actor, c.Param("id"), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job updated successfully!", myJobsPath(actor), job)
}

func (h *JobHandler) Delete(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteJob(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job deleted successfully!", myJobsPath(actor), nil)
}

func (h *JobHandler) Home(c *gin.Context) {
	view, err := h.svc.Home(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", view)
}

// Search serves both /jobs and /jobs/search.
func (h *JobHandler) Search(c *gin.Context) {
	var in services.SearchInput
	if !bind(c, "JobHandler.Search", &in) {
		return
	}
	page, err := h.svc.Search(c.Request.Context(), in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", page)
}

func (h *JobHandler) Detail(c *gin.Context) {
	actor, _ := middleware.ActorFrom(c)
	d, err := h.svc.Detail(c.Request.Context(), actor, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", d)
}
