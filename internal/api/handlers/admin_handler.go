package handlers

import (
	"net/http"
	"strconv"

	"github.com/RafiALMahmud/Job-portal1/internal/models"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	svc services.AdminService
}

func NewAdminHandler(svc services.AdminService) *AdminHandler {
	return &AdminHandler{svc: svc}
}

func (h *AdminHandler) Dashboard(c *gin.Context) {
	stats, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", stats)
}

func (h *AdminHandler) Users(c *gin.Context) {
	page, err := h.svc.ListUsers(c.Request.Context(), pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", page)
}

func (h *AdminHandler) CreateUserForm(c *gin.Context) {
	respond(c, http.StatusOK, "", "", gin.H{
		"user_types": []models.UserType{models.UserTypeAspirant, models.UserTypeEmployer, models.UserTypeAdmin},
	})
}

func (h *AdminHandler) StoreUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in services.AdminCreateUserInput
	if !bind(c, "AdminHandler.StoreUser", &in) {
		return
	}
	u, err := h.svc.CreateUser(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "User created successfully.", "/admin/manage_users", u)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteUser(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "User deleted successfully.", "", nil)
}

func (h *AdminHandler) Jobs(c *gin.Context) {
	page, err := h.svc.ListJobs(c.Request.Context(), pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", page)
}

func (h *AdminHandler) DeleteJob(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteJob(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Job deleted successfully.", "", nil)
}

func (h *AdminHandler) Categories(c *gin.Context) {
	rows, err := h.svc.ListCategories(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", rows)
}

func (h *AdminHandler) StoreCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	var in services.CategoryInput
	if !bind(c, "AdminHandler.StoreCategory", &in) {
		return
	}
	cat, err := h.svc.StoreCategory(c.Request.Context(), actor, in)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusCreated, "Category created successfully.", "", cat)
}

func (h *AdminHandler) DeleteCategory(c *gin.Context) {
	actor, ok := requireActor(c)
	if !ok {
		return
	}
	if err := h.svc.DeleteCategory(c.Request.Context(), actor, c.Param("id")); err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "Category deleted successfully.", "", nil)
}

func (h *AdminHandler) Applications(c *gin.Context) {
	page, err := h.svc.ListApplications(c.Request.Context(), pageParam(c))
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", page)
}

func (h *AdminHandler) Activity(c *gin.Context) {
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "20"), 10, 64)
	rows, err := h.svc.RecentActivity(c.Request.Context(), limit)
	if err != nil {
		writeError(c, err)
		return
	}
	respond(c, http.StatusOK, "", "", rows)
}
