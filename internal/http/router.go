package http

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"complaint-service/internal/http/middleware"
)

func NewRouter(handler *Handler, authMiddleware, submitLimiter gin.HandlerFunc, log zerolog.Logger, env string) *gin.Engine {
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.MaxMultipartMemory = maxSubmitBodyBytes
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(log))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:    []string{"*"},
		ExposeHeaders:   []string{"Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	router.GET("/healthz", handler.healthz)

	public := router.Group("/api/v1")
	{
		public.POST("/complaints", submitLimiter, handler.submitComplaint)
		public.GET("/complaints/:trackingId", handler.trackComplaint)
		public.GET("/statistics", handler.getStatistics)
		public.GET("/announcements", handler.listAnnouncements)
		public.GET("/achievements", handler.listAchievements)
	}

	admin := router.Group("/api/v1/admin")
	admin.Use(authMiddleware)
	{
		admin.GET("/complaints", handler.listComplaints)
		admin.GET("/complaints/:trackingId", handler.getComplaint)
		admin.PUT("/complaints/:trackingId/status", handler.updateComplaintStatus)
		admin.PUT("/complaints/:trackingId/notes", handler.setAdminNotes)
	}

	return router
}
