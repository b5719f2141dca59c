package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Siddique-web/EchoPlay/internal/folder"
)

// ItemSource produces folder item snapshots from the live catalog at the
// moment of the add action. Implemented by models.Catalog.
type ItemSource interface {
	MusicItem(ctx context.Context, id string, addedAt time.Time) (folder.MusicItem, error)
	VideoItem(ctx context.Context, id string, addedAt time.Time) (folder.VideoItem, error)
}

// FolderHandler exposes the folder collection to the app's surfaces. All
// mutations go through the injected repository; handlers never touch the
// blob store directly.
type FolderHandler struct {
	repo    *folder.Repository
	catalog ItemSource
}

// NewFolderHandler returns a handler over the given repository and catalog.
func NewFolderHandler(repo *folder.Repository, catalog ItemSource) *FolderHandler {
	return &FolderHandler{repo: repo, catalog: catalog}
}

// writeFolderError translates repository errors into HTTP responses.
func writeFolderError(c *gin.Context, err error) {
	var verr *folder.ValidationError
	var serr *folder.StorageError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.Is(err, folder.ErrFolderNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Folder not found"})
	case errors.Is(err, folder.ErrDuplicateItem):
		c.JSON(http.StatusConflict, gin.H{"error": "Item already exists in this folder"})
	case errors.As(err, &serr):
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to access folder storage"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Unexpected error"})
	}
}

// Create handles folder creation.
func (h *FolderHandler) Create(c *gin.Context) {
	var input struct {
		Name string `json:"name" binding:"required"`
		Type string `json:"type" binding:"required,oneof=music video"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: folder name and type are required"})
		return
	}

	created, err := h.repo.Create(c.Request.Context(), input.Name, folder.MediaType(input.Type))
	if err != nil {
		writeFolderError(c, err)
		return
	}

	c.JSON(http.StatusCreated, created)
}

// List handles listing all folders, optionally filtered by media type so a
// player screen can offer only compatible folders.
func (h *FolderHandler) List(c *gin.Context) {
	var (
		folders folder.Collection
		err     error
	)
	if t := c.Query("type"); t != "" {
		folders, err = h.repo.ListByType(c.Request.Context(), folder.MediaType(t))
	} else {
		folders, err = h.repo.ListAll(c.Request.Context())
	}
	if err != nil {
		writeFolderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// Get handles retrieving a single folder for the detail screen.
func (h *FolderHandler) Get(c *gin.Context) {
	f, err := h.repo.Find(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeFolderError(c, err)
		return
	}
	c.JSON(http.StatusOK, f)
}

// Delete handles folder deletion. Deleting an already-removed folder
// succeeds; the outcome is the same.
func (h *FolderHandler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeFolderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Folder deleted successfully"})
}

// AddItem handles adding a catalog record to a folder. The payload names
// the record; the snapshot is taken from the live catalog record here, at
// the moment of the add, so the stored item is a copy and not a live link.
func (h *FolderHandler) AddItem(c *gin.Context) {
	var input struct {
		Type string `json:"type" binding:"required,oneof=music video"`
		ID   string `json:"id" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: item id and type are required"})
		return
	}

	ctx := c.Request.Context()
	now := time.Now()

	var (
		item folder.MediaItem
		err  error
	)
	if folder.MediaType(input.Type) == folder.Video {
		item, err = h.catalog.VideoItem(ctx, input.ID, now)
	} else {
		item, err = h.catalog.MusicItem(ctx, input.ID, now)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Media not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load media"})
		return
	}

	if err := h.repo.AddItem(ctx, c.Param("id"), item); err != nil {
		writeFolderError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item added to folder"})
}

// RemoveItem handles removing an item from a folder.
func (h *FolderHandler) RemoveItem(c *gin.Context) {
	err := h.repo.RemoveItem(c.Request.Context(), c.Param("id"), c.Param("itemId"))
	if err != nil {
		writeFolderError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Item removed from folder"})
}
