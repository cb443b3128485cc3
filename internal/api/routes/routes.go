package routes

import (
	"net/http"
	"time"

	"github.com/RafiALMahmud/Job-portal1/internal/api/handlers"
	"github.com/RafiALMahmud/Job-portal1/internal/api/middleware"
	"github.com/RafiALMahmud/Job-portal1/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

type Deps struct {
	Tokens      services.TokenService
	CookieName  string
	CORSOrigins []string

	Account      *handlers.AccountHandler
	Jobs         *handlers.JobHandler
	Applications *handlers.ApplicationHandler
	Employer     *handlers.EmployerHandler
	Admin        *handlers.AdminHandler
	Notification *handlers.NotificationHandler
	WS           *handlers.WSHandler
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-Id"},
		ExposeHeaders:    []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		cfg.AllowCredentials = false
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func RegisterRoutes(r *gin.Engine, d Deps) {
	r.Use(cors.New(corsConfig(d.CORSOrigins)))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	auth := middleware.Auth(d.Tokens, d.CookieName)
	optional := middleware.OptionalAuth(d.Tokens, d.CookieName)

	// public browsing
	r.GET("/", d.Jobs.Home)
	r.GET("/jobs", d.Jobs.Search)
	r.GET("/jobs/search", d.Jobs.Search)
	r.GET("/jobs/:id", optional, d.Jobs.Detail)

	// applications and saved jobs
	jobsAuth := r.Group("/jobs", auth)
	jobsAuth.POST("/:id/apply", d.Applications.Apply)
	jobsAuth.POST("/:id/save", d.Applications.Save)
	jobsAuth.DELETE("/:id/unsave", d.Applications.Unsave)

	// account, guest
	account := r.Group("/account")
	account.POST("/process-register", d.Account.Register)
	account.POST("/authenticate", d.Account.Authenticate)
	account.POST("/generate-reset-code", d.Account.GenerateResetCode)
	account.POST("/verify-code", d.Account.VerifyCode)
	account.POST("/reset-password", d.Account.ResetPassword)

	// account, authenticated
	me := account.Group("", auth)
	me.GET("/profile", d.Account.Profile)
	me.GET("/logout", d.Account.Logout)
	me.PUT("/update-profile", d.Account.UpdateProfile)
	me.POST("/update-profile-picture", d.Account.UpdateProfilePicture)
	me.PUT("/update-password", d.Account.UpdatePassword)
	me.DELETE("/delete-account", d.Account.DeleteAccount)
	me.GET("/notifications", d.Notification.List)
	me.POST("/notifications/:id/mark-as-read", d.Notification.MarkAsRead)
	me.POST("/notifications/mark-all-as-read", d.Notification.MarkAllAsRead)
	me.GET("/jobs-applied", d.Applications.JobsApplied)
	me.GET("/saved-jobs", d.Applications.SavedJobs)

	myJobs := me.Group("", middleware.RequireJobCreator())
	myJobs.GET("/create-job", d.Jobs.CreateForm)
	myJobs.POST("/save-job", d.Jobs.Store)
	myJobs.GET("/my-jobs", d.Jobs.MyJobs)
	myJobs.GET("/my-jobs/edit/:id", d.Jobs.Edit)
	myJobs.PUT("/update-job/:id", d.Jobs.Update)
	myJobs.POST("/delete-job/:id", d.Jobs.Delete)

	// employer
	emp := r.Group("/employer", auth, middleware.RequireEmployer())
	emp.GET("/dashboard", d.Employer.Dashboard)
	emp.POST("/update-company-info", d.Employer.UpdateCompanyInfo)
	emp.GET("/jobs/create", d.Jobs.CreateForm)
	emp.POST("/jobs", d.Jobs.Store)
	emp.GET("/jobs/:id/edit", d.Jobs.Edit)
	emp.PUT("/jobs/:id", d.Jobs.Update)
	emp.DELETE("/jobs/:id", d.Jobs.Delete)
	emp.GET("/jobs/:id/applicants", d.Applications.Applicants)
	emp.POST("/applicants/:id/accept", d.Applications.Accept)
	emp.POST("/applicants/:id/reject", d.Applications.Reject)
	emp.POST("/applicants/:id/interview", d.Applications.Interview)
	emp.GET("/notifications", d.Notification.List)
	emp.POST("/notifications/:id/mark-as-read", d.Notification.MarkAsRead)
	emp.POST("/notifications/mark-all-as-read", d.Notification.MarkAllAsRead)

	// admin
	admin := r.Group("/admin", auth, middleware.RequireAdmin())
	admin.GET("/dashboard", d.Admin.Dashboard)
	admin.GET("/manage_users", d.Admin.Users)
	admin.GET("/users/create", d.Admin.CreateUserForm)
	admin.POST("/users/store", d.Admin.StoreUser)
	admin.DELETE("/users/:id", d.Admin.DeleteUser)
	admin.PUT("/update-profile", d.Account.UpdateProfile)
	admin.PUT("/update-password", d.Account.UpdatePassword)
	admin.GET("/manage-jobs", d.Admin.Jobs)
	admin.DELETE("/jobs/:id", d.Admin.DeleteJob)
	admin.GET("/manage-categories", d.Admin.Categories)
	admin.POST("/categories/store", d.Admin.StoreCategory)
	admin.DELETE("/categories/:id", d.Admin.DeleteCategory)
	admin.GET("/job-applications", d.Admin.Applications)
	admin.GET("/activity", d.Admin.Activity)

	// WebSocket
	r.GET("/ws/notifications", auth, d.WS.Notifications)
}
