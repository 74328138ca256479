package api

import (
	"github.com/aporte-capital/consultoria-service/internal/api/handlers"
	"github.com/gin-gonic/gin"
)

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(200)
			return
		}
		c.Next()
	}
}

func RegisterRoutes(r *gin.Engine, h *handlers.Handler) {
	// Enable CORS for preflight requests
	r.Use(corsMiddleware())

	api := r.Group("/api")
	{
		api.GET("/health", h.HealthCheck)

		// Form endpoints
		api.POST("/consultoria", h.SubmitConsultation) // consultancy form with attachments
		api.POST("/send-email", h.SendContactEmail)    // attachment-free contact form
	}

	download := r.Group("/download")
	{
		download.GET("/:linkId", h.DownloadPage)                // file listing page
		download.GET("/:linkId/file/:filename", h.DownloadFile) // single attachment
		download.GET("/:linkId/zip", h.DownloadArchive)         // everything as one ZIP
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(404, gin.H{"success": false, "message": "Rota não encontrada"})
	})
}
