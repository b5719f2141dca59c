package handlers

import (
	"fmt"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Siddique-web/EchoPlay/internal/config"
	"github.com/Siddique-web/EchoPlay/internal/database"
	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/storage"
	"github.com/Siddique-web/EchoPlay/internal/utils"
	"github.com/Siddique-web/EchoPlay/internal/websocket"
)

const thumbnailMaxWidth = 640

// MediaHandler serves the music/video catalog: listing for the feed and
// players, upload and delete for the admin panel.
type MediaHandler struct {
	cfg      *config.Config
	store    storage.Storage
	notifier *websocket.Manager
}

// NewMediaHandler returns a catalog handler.
func NewMediaHandler(cfg *config.Config, store storage.Storage, notifier *websocket.Manager) *MediaHandler {
	return &MediaHandler{cfg: cfg, store: store, notifier: notifier}
}

// ListMusic returns the music catalog, newest first.
func (h *MediaHandler) ListMusic(c *gin.Context) {
	var music []models.Music
	if err := database.GetDB().Order("created_at DESC").Find(&music).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch music"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"music": music})
}

// ListVideos returns the video catalog, newest first.
func (h *MediaHandler) ListVideos(c *gin.Context) {
	var videos []models.Video
	if err := database.GetDB().Order("created_at DESC").Find(&videos).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch videos"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"videos": videos})
}

// storeUpload saves the posted media file and optional thumbnail image,
// returning their public URLs.
func (h *MediaHandler) storeUpload(c *gin.Context, mediaID string) (fileURL, thumbURL string, err error) {
	file, err := c.FormFile("file")
	if err != nil {
		return "", "", fmt.Errorf("media file is required")
	}
	if file.Size > h.cfg.Storage.MaxUploadSize {
		return "", "", fmt.Errorf("file exceeds maximum upload size")
	}

	src, err := file.Open()
	if err != nil {
		return "", "", fmt.Errorf("failed to open upload")
	}
	defer src.Close()

	key := mediaID + filepath.Ext(file.Filename)
	if _, err := h.store.Upload(src, key); err != nil {
		return "", "", fmt.Errorf("failed to store file")
	}
	fileURL = h.store.GetPublicURL(key)

	if thumb, err := c.FormFile("thumbnail"); err == nil {
		thumbSrc, err := thumb.Open()
		if err != nil {
			return "", "", fmt.Errorf("failed to open thumbnail")
		}
		defer thumbSrc.Close()

		resized, err := utils.ProcessThumbnail(thumbSrc, thumbnailMaxWidth)
		if err != nil {
			return "", "", fmt.Errorf("failed to process thumbnail")
		}
		thumbKey := mediaID + "_thumb.jpg"
		if _, err := h.store.UploadBytes(resized, thumbKey); err != nil {
			return "", "", fmt.Errorf("failed to store thumbnail")
		}
		thumbURL = h.store.GetPublicURL(thumbKey)
	}

	return fileURL, thumbURL, nil
}

// UploadMusic handles an admin music upload (multipart: file, title,
// artist, optional thumbnail).
func (h *MediaHandler) UploadMusic(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	userID := c.GetUint("user_id")
	mediaID := uuid.NewString()

	fileURL, thumbURL, err := h.storeUpload(c, mediaID)
	if err != nil {
		h.notifier.SendUploadError(userID, mediaID, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	music := models.Music{
		ID:        mediaID,
		UserID:    userID,
		Title:     title,
		Artist:    c.PostForm("artist"),
		URL:       fileURL,
		Thumbnail: thumbURL,
	}
	if err := database.GetDB().Create(&music).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save music record"})
		return
	}

	h.notifier.SendUploadComplete(userID, mediaID, map[string]interface{}{"title": music.Title})
	c.JSON(http.StatusCreated, music)
}

// UploadVideo handles an admin video upload (multipart: file, title,
// description, optional thumbnail).
func (h *MediaHandler) UploadVideo(c *gin.Context) {
	title := c.PostForm("title")
	if title == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title is required"})
		return
	}
	userID := c.GetUint("user_id")
	mediaID := uuid.NewString()

	fileURL, thumbURL, err := h.storeUpload(c, mediaID)
	if err != nil {
		h.notifier.SendUploadError(userID, mediaID, err.Error())
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := models.Video{
		ID:          mediaID,
		UserID:      userID,
		Title:       title,
		Description: c.PostForm("description"),
		URL:         fileURL,
		Thumbnail:   thumbURL,
	}
	if err := database.GetDB().Create(&video).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save video record"})
		return
	}

	h.notifier.SendUploadComplete(userID, mediaID, map[string]interface{}{"title": video.Title})
	c.JSON(http.StatusCreated, video)
}

// DeleteMusic removes a track from the catalog. Folder items referencing it
// keep their snapshots; folders are never rewritten by catalog deletes.
func (h *MediaHandler) DeleteMusic(c *gin.Context) {
	result := database.GetDB().Delete(&models.Music{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete music"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Music not found"})
		return
	}

	h.notifier.SendCatalogChanged(c.Param("id"), map[string]interface{}{"kind": "music", "action": "deleted"})
	c.JSON(http.StatusOK, gin.H{"message": "Music deleted successfully"})
}

// DeleteVideo removes a video from the catalog.
func (h *MediaHandler) DeleteVideo(c *gin.Context) {
	result := database.GetDB().Delete(&models.Video{}, "id = ?", c.Param("id"))
	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete video"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Video not found"})
		return
	}

	h.notifier.SendCatalogChanged(c.Param("id"), map[string]interface{}{"kind": "video", "action": "deleted"})
	c.JSON(http.StatusOK, gin.H{"message": "Video deleted successfully"})
}

// ServeMediaFile streams a stored file back to the client. Used with the
// local storage provider; S3 serves files from its public URL directly.
func (h *MediaHandler) ServeMediaFile(c *gin.Context) {
	reader, err := h.store.Download(c.Param("filename"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer reader.Close()

	c.DataFromReader(http.StatusOK, -1, "application/octet-stream", reader, nil)
}
