package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/database"
	"github.com/instantfun/soundboard/internal/models"
	"github.com/instantfun/soundboard/internal/util"
	"gorm.io/gorm"
)

// CreateFavorite bookmarks a sound for the caller. The (user, sound) pair
// is unique: the duplicate is reported identically whether it is caught by
// the pre-check or by the unique index when two requests race.
// POST /api/favorites
func (h *Handlers) CreateFavorite(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		SoundID string `json:"sound_id"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.SoundID == "" {
		util.RespondValidationError(c, "sound_id", "sound_id is required")
		return
	}

	var sound models.Sound
	if err := database.DB.First(&sound, "id = ?", req.SoundID).Error; err != nil {
		util.HandleDBError(c, err, "sound")
		return
	}

	var existing models.Favorite
	err := database.DB.Where("user_id = ? AND sound_id = ?", user.ID, req.SoundID).First(&existing).Error
	if err == nil {
		util.RespondConflict(c, "sound is already favorited")
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		util.RespondInternalError(c, "failed to create favorite")
		return
	}

	favorite := models.Favorite{
		UserID:  user.ID,
		SoundID: req.SoundID,
	}
	if err := database.DB.Create(&favorite).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			util.RespondConflict(c, "sound is already favorited")
			return
		}
		util.RespondInternalError(c, "failed to create favorite")
		return
	}

	c.JSON(http.StatusCreated, favorite)
}

// DeleteFavorite removes the caller's bookmark of a sound. Removing an
// absent favorite succeeds silently.
// DELETE /api/favorites/:soundId
func (h *Handlers) DeleteFavorite(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	err := database.DB.
		Where("user_id = ? AND sound_id = ?", user.ID, c.Param("soundId")).
		Delete(&models.Favorite{}).Error
	if err != nil {
		util.RespondInternalError(c, "failed to remove favorite")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// ListFavorites returns the caller's favorited sounds, most recently
// favorited first.
// GET /api/favorites
func (h *Handlers) ListFavorites(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var favorites []models.Favorite
	err := database.DB.
		Preload("Sound").
		Preload("Sound.Uploader").
		Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch favorites")
		return
	}

	sounds := make([]models.Sound, 0, len(favorites))
	for _, favorite := range favorites {
		if favorite.Sound != nil {
			sounds = append(sounds, *favorite.Sound)
		}
	}

	c.JSON(http.StatusOK, sounds)
}
