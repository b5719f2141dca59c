package api

import (
	"github.com/gin-gonic/gin"

	"github.com/Siddique-web/EchoPlay/internal/api/handlers"
	"github.com/Siddique-web/EchoPlay/internal/api/middleware"
	"github.com/Siddique-web/EchoPlay/internal/config"
)

// Handlers bundles the constructed handler set for route wiring.
type Handlers struct {
	Auth    *handlers.AuthHandler
	Profile *handlers.ProfileHandler
	Folders *handlers.FolderHandler
	Media   *handlers.MediaHandler
	Export  *handlers.ExportHandler
	WS      *handlers.WSHandler
}

// SetupRoutes configures all application routes.
func SetupRoutes(router *gin.Engine, cfg *config.Config, h Handlers) {
	// API v1 group
	v1 := router.Group("/api/v1")
	{
		v1.GET("/health", handlers.HealthCheck)

		// Auth routes
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// Serve stored media files (local provider)
		v1.GET("/media/files/:filename", h.Media.ServeMediaFile)

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.JWTAuth(cfg))
		{
			// Account profile
			user := protected.Group("/user")
			{
				user.GET("/profile", h.Profile.Get)
				user.PUT("/profile", h.Profile.Update)
				user.POST("/profile-image", h.Profile.UploadImage)
			}

			// Catalog routes
			protected.GET("/music", h.Media.ListMusic)
			protected.GET("/videos", h.Media.ListVideos)

			// Admin catalog management
			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				admin.POST("/music", h.Media.UploadMusic)
				admin.POST("/videos", h.Media.UploadVideo)
				admin.DELETE("/music/:id", h.Media.DeleteMusic)
				admin.DELETE("/videos/:id", h.Media.DeleteVideo)
			}

			// Folder routes
			folders := protected.Group("/folders")
			{
				folders.POST("/", h.Folders.Create)
				folders.GET("/", h.Folders.List)
				folders.GET("/:id", h.Folders.Get)
				folders.DELETE("/:id", h.Folders.Delete)
				folders.POST("/:id/items", h.Folders.AddItem)
				folders.DELETE("/:id/items/:itemId", h.Folders.RemoveItem)
			}

			// Export routes
			export := protected.Group("/export")
			{
				export.GET("/folders/json", h.Export.ExportJSON)
				export.GET("/folders/csv", h.Export.ExportCSV)
			}

			// Notification stream
			protected.GET("/ws", h.WS.Connect)
		}
	}
}
