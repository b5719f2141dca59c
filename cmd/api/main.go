package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/Siddique-web/EchoPlay/database/migrations"
	"github.com/Siddique-web/EchoPlay/internal/api"
	"github.com/Siddique-web/EchoPlay/internal/api/handlers"
	"github.com/Siddique-web/EchoPlay/internal/config"
	"github.com/Siddique-web/EchoPlay/internal/database"
	"github.com/Siddique-web/EchoPlay/internal/folder"
	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/storage"
	"github.com/Siddique-web/EchoPlay/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize Database
	if err := database.Initialize(cfg); err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	if err := migrations.Migrate(); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Folder collection store
	var blobs folder.BlobStore
	switch cfg.Folders.Backend {
	case "file":
		blobs = folder.NewFileStore(cfg.Folders.Path)
	default:
		blobs = folder.NewDBStore(database.GetDB())
	}
	repo := folder.NewRepository(blobs)

	// Media file storage
	files, err := storage.NewStorage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize storage:", err)
	}

	notifier := websocket.NewManager()

	// Initialize Router
	router := gin.Default()
	api.SetupRoutes(router, cfg, api.Handlers{
		Auth:    handlers.NewAuthHandler(cfg),
		Profile: handlers.NewProfileHandler(cfg, files),
		Folders: handlers.NewFolderHandler(repo, models.NewCatalog(database.GetDB())),
		Media:   handlers.NewMediaHandler(cfg, files, notifier),
		Export:  handlers.NewExportHandler(repo),
		WS:      handlers.NewWSHandler(notifier),
	})

	// Start Server
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
