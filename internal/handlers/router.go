package handlers

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Router holds every handler group. Postings is optional and its routes are
// only registered when set.
type Router struct {
	Auth     *AuthHandler
	Jobs     *JobHandler
	Profile  *ProfileHandler
	Stats    *StatsHandler
	Agent    *AgentHandler
	Postings *PostingHandler

	// Authenticate guards every per-user route.
	Authenticate   gin.HandlerFunc
	AllowedOrigins []string
}

func (rt *Router) Engine() *gin.Engine {
	r := gin.Default()

	config := cors.DefaultConfig()
	if len(rt.AllowedOrigins) == 0 || (len(rt.AllowedOrigins) == 1 && rt.AllowedOrigins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = rt.AllowedOrigins
		config.AllowCredentials = true
	}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	config.ExposeHeaders = []string{"Content-Disposition"}
	r.Use(cors.New(config))

	api := r.Group("/api")
	{
		api.GET("/health", HealthCheck)

		authRoutes := api.Group("/auth")
		authRoutes.POST("/signup", rt.Auth.SignUp)
		authRoutes.GET("/confirm", rt.Auth.Confirm)
		authRoutes.POST("/signin", rt.Auth.SignIn)
		authRoutes.POST("/signout", rt.Auth.SignOut)
		authRoutes.GET("/google/login", rt.Auth.GoogleLogin)
		authRoutes.GET("/google/callback", rt.Auth.GoogleCallback)

		if rt.Postings != nil {
			api.GET("/postings", rt.Postings.ListPostings)
			api.GET("/postings/:id", rt.Postings.GetPosting)
		}

		private := api.Group("", rt.Authenticate)

		// Job Routes
		private.POST("/jobs", rt.Jobs.CreateJob)
		private.GET("/jobs", rt.Jobs.ListJobs)
		private.GET("/jobs/:id", rt.Jobs.GetJob)
		private.PUT("/jobs/:id", rt.Jobs.UpdateJob)
		private.DELETE("/jobs/:id", rt.Jobs.DeleteJob)
		private.POST("/jobs/:id/confirm-delete", rt.Jobs.ConfirmDeleteJob)

		private.GET("/profile", rt.Profile.GetProfile)
		private.PUT("/profile", rt.Profile.UpdateProfile)
		private.DELETE("/profile", rt.Profile.DeleteAccount)
		private.PUT("/profile/password", rt.Profile.ChangePassword)
		private.POST("/profile/documents/:kind", rt.Profile.UploadDocument)
		private.DELETE("/profile/documents/:kind", rt.Profile.RemoveDocument)

		private.GET("/stats", rt.Stats.GetStats)
		private.GET("/stats/export", rt.Stats.ExportStats)

		private.POST("/ai-job-agent", rt.Agent.FindJob)
		private.POST("/ai-job-apply", rt.Agent.ApplyJob)
	}
	return r
}
