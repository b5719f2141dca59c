package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Siddique-web/EchoPlay/internal/config"
	"github.com/Siddique-web/EchoPlay/internal/database"
	"github.com/Siddique-web/EchoPlay/internal/models"
	"github.com/Siddique-web/EchoPlay/internal/storage"
	"github.com/Siddique-web/EchoPlay/internal/utils"
)

const profileImageMaxWidth = 320

// ProfileHandler serves the signed-in user's account profile.
type ProfileHandler struct {
	cfg   *config.Config
	store storage.Storage
}

// NewProfileHandler returns a profile handler backed by the given storage
// provider for profile images.
func NewProfileHandler(cfg *config.Config, store storage.Storage) *ProfileHandler {
	return &ProfileHandler{cfg: cfg, store: store}
}

func (h *ProfileHandler) currentUser(c *gin.Context) (*models.User, bool) {
	var user models.User
	if err := database.GetDB().First(&user, c.GetUint("user_id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return nil, false
	}
	return &user, true
}

// Get returns the signed-in user's profile.
func (h *ProfileHandler) Get(c *gin.Context) {
	user, ok := h.currentUser(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, user)
}

// Update changes the profile's display fields. Both fields are optional;
// omitted fields keep their current value.
func (h *ProfileHandler) Update(c *gin.Context) {
	var input struct {
		Name         *string `json:"name"`
		ProfileImage *string `json:"profile_image"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input"})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	if user.ApplyProfileUpdate(input.Name, input.ProfileImage) {
		if err := database.GetDB().Save(user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

// UploadImage stores a new profile picture (multipart: file), resized the
// same way catalog thumbnails are, and points the profile at it.
func (h *ProfileHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Image file is required"})
		return
	}
	if file.Size > h.cfg.Storage.MaxUploadSize {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File exceeds maximum upload size"})
		return
	}

	user, ok := h.currentUser(c)
	if !ok {
		return
	}

	src, err := file.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to open upload"})
		return
	}
	defer src.Close()

	resized, err := utils.ProcessThumbnail(src, profileImageMaxWidth)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is not a supported image"})
		return
	}

	key := fmt.Sprintf("profile_%d.jpg", user.ID)
	if _, err := h.store.UploadBytes(resized, key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store image"})
		return
	}

	user.ProfileImage = h.store.GetPublicURL(key)
	if err := database.GetDB().Save(user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":       "Profile image updated successfully",
		"profile_image": user.ProfileImage,
	})
}
