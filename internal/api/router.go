package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/hirehall/jobboard/internal/config"
)

type Handlers struct {
	Jobs         *JobsHandler
	Searches     *SearchesHandler
	Dashboard    *DashboardHandler
	Applications *ApplicationsHandler
	Companies    *CompaniesHandler
}

func NewRouter(cfg config.ServerConfig, handlers Handlers) *gin.Engine {

	router := gin.Default()

	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, userIDHeader)
	router.Use(cors.New(corsConfig))

	// Public board
	router.GET("/jobs", handlers.Jobs.List)
	router.GET("/jobs/filter-options", handlers.Jobs.FilterOptions)
	router.GET("/jobs/:slug", handlers.Jobs.GetBySlug)
	router.POST("/jobs/:slug/applications", handlers.Applications.Submit)
	router.GET("/companies/:employerID", handlers.Companies.PublicPage)
	router.POST("/companies/:employerID/experiences", handlers.Companies.AddExperience)

	// Signed-in user's dashboard
	me := router.Group("/me")
	{
		me.GET("/searches", handlers.Searches.List)
		me.POST("/searches", handlers.Searches.Create)
		me.DELETE("/searches/:id", handlers.Searches.Delete)
		me.GET("/tailored-jobs", handlers.Dashboard.TailoredJobs)
		me.GET("/favorites", handlers.Dashboard.FavoriteJobs)
		me.PUT("/favorites/:jobID", handlers.Dashboard.AddFavorite)
		me.DELETE("/favorites/:jobID", handlers.Dashboard.RemoveFavorite)
		me.GET("/notifications", handlers.Dashboard.Notifications)
		me.POST("/notifications/:id/read", handlers.Dashboard.MarkNotificationRead)
		me.GET("/applications", handlers.Applications.ListOwn)
	}

	// Employer tooling
	employer := router.Group("/employer")
	{
		employer.GET("/jobs", handlers.Jobs.ListOwn)
		employer.POST("/jobs", handlers.Jobs.Create)
		employer.PUT("/jobs/:id", handlers.Jobs.Update)
		employer.POST("/jobs/:id/close", handlers.Jobs.Close)
		employer.POST("/jobs/:id/reopen", handlers.Jobs.Reopen)
		employer.DELETE("/jobs/:id", handlers.Jobs.Delete)
		employer.GET("/jobs/:id/applications", handlers.Applications.ListForJob)
		employer.PUT("/company", handlers.Companies.UpsertProfile)
		employer.POST("/company/benefits", handlers.Companies.AddBenefit)
		employer.POST("/company/gallery", handlers.Companies.AddGalleryItem)
		employer.POST("/company/hiring-steps", handlers.Companies.AddHiringStep)
		employer.GET("/company/experiences", handlers.Companies.ListAllExperiences)
		employer.POST("/company/experiences/:id/approve", handlers.Companies.ApproveExperience)
	}

	return router
}
