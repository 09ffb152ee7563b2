package handlers

import (
	"fmt"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/database"
	"github.com/instantfun/soundboard/internal/logger"
	"github.com/instantfun/soundboard/internal/models"
	"github.com/instantfun/soundboard/internal/util"
	"go.uber.org/zap"
)

// ListSounds returns all sounds, newest first. When the caller is
// authenticated each sound is annotated with their favorite state.
// GET /api/sounds (optional auth)
func (h *Handlers) ListSounds(c *gin.Context) {
	var sounds []models.Sound
	err := database.DB.
		Preload("Uploader").
		Order("created_at DESC").
		Find(&sounds).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch sounds")
		return
	}

	favorited := make(map[string]bool)
	if user := util.UserFromContext(c); user != nil {
		var soundIDs []string
		err := database.DB.Model(&models.Favorite{}).
			Where("user_id = ?", user.ID).
			Pluck("sound_id", &soundIDs).Error
		if err != nil {
			// The list still renders; every sound just shows unfavorited.
			logger.Warn("failed to load favorite set",
				logger.WithUserID(user.ID), zap.Error(err))
		}
		for _, id := range soundIDs {
			favorited[id] = true
		}
	}

	views := make([]models.SoundView, 0, len(sounds))
	for _, sound := range sounds {
		views = append(views, models.SoundView{
			Sound:      sound,
			IsFavorite: favorited[sound.ID],
		})
	}

	c.JSON(http.StatusOK, views)
}

// CreateSound records a new sound effect. The audio itself was already
// pushed to storage by the client; this only persists the metadata.
// POST /api/sounds
func (h *Handlers) CreateSound(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name     string  `json:"name"`
		URL      string  `json:"url"`
		Color    string  `json:"color"`
		Duration float64 `json:"duration"`
		Size     int64   `json:"size"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	if req.Name == "" || req.URL == "" {
		util.RespondValidationError(c, "", "sound name and url are required")
		return
	}
	if req.Size > h.cfg.MaxFileSize {
		util.RespondValidationError(c, "size",
			fmt.Sprintf("file size must not exceed %dMB", h.cfg.MaxFileSizeMB()))
		return
	}
	if time.Duration(req.Duration*float64(time.Second)) > h.cfg.MaxDuration {
		util.RespondValidationError(c, "duration",
			fmt.Sprintf("sound duration must not exceed %d seconds", int(h.cfg.MaxDuration.Seconds())))
		return
	}

	sound := models.Sound{
		Name:       req.Name,
		URL:        req.URL,
		Color:      req.Color,
		Duration:   req.Duration,
		Size:       req.Size,
		UploaderID: &user.ID,
	}

	if err := database.DB.Create(&sound).Error; err != nil {
		util.RespondInternalError(c, "failed to create sound")
		return
	}

	c.JSON(http.StatusCreated, sound)
}

// UpdateSound applies a partial update of name and color. Only the uploader
// may modify a sound.
// PUT /api/sounds/:id
func (h *Handlers) UpdateSound(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var sound models.Sound
	if err := database.DB.First(&sound, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "sound")
		return
	}

	if sound.UploaderID == nil || *sound.UploaderID != user.ID {
		util.RespondForbidden(c, "you are not permitted to modify this sound")
		return
	}

	var req struct {
		Name  *string `json:"name"`
		Color *string `json:"color"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Color != nil {
		updates["color"] = *req.Color
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&sound).Updates(updates).Error; err != nil {
			util.RespondInternalError(c, "failed to update sound")
			return
		}
	}

	if err := database.DB.Preload("Uploader").First(&sound, "id = ?", sound.ID).Error; err != nil {
		util.HandleDBError(c, err, "sound")
		return
	}
	c.JSON(http.StatusOK, sound)
}

// DeleteSound removes a sound and cleans up everything referencing it. The
// database record is the source of truth; the remote object delete and the
// reference cleanup are best-effort and never block the deletion.
// DELETE /api/sounds/:id
func (h *Handlers) DeleteSound(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var sound models.Sound
	if err := database.DB.First(&sound, "id = ?", c.Param("id")).Error; err != nil {
		util.HandleDBError(c, err, "sound")
		return
	}

	if sound.UploaderID == nil || *sound.UploaderID != user.ID {
		util.RespondForbidden(c, "you are not permitted to delete this sound")
		return
	}

	// Remote object first, failure logged only.
	if h.store != nil {
		if key := storageKeyFromURL(sound.URL); key != "" {
			if err := h.store.DeleteObject(c.Request.Context(), key); err != nil {
				logger.Warn("failed to delete storage object",
					zap.String("key", key), logger.WithUserID(user.ID), zap.Error(err))
			}
		}
	}

	if err := database.DB.Delete(&models.Sound{}, "id = ?", sound.ID).Error; err != nil {
		util.RespondInternalError(c, "failed to delete sound")
		return
	}

	h.cascadeSoundCleanup(sound.ID)

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// cascadeSoundCleanup removes favorites and collection memberships that
// reference a deleted sound. Steps run in order; failures are logged and
// never propagated.
func (h *Handlers) cascadeSoundCleanup(soundID string) {
	if err := database.DB.Where("sound_id = ?", soundID).Delete(&models.Favorite{}).Error; err != nil {
		logger.Warn("cascade: failed to delete favorites",
			zap.String("sound_id", soundID), zap.Error(err))
	}

	if err := database.DB.Exec("DELETE FROM collection_sounds WHERE sound_id = ?", soundID).Error; err != nil {
		logger.Warn("cascade: failed to remove collection memberships",
			zap.String("sound_id", soundID), zap.Error(err))
	}
}

// storageKeyFromURL extracts the object key from a public asset URL: the
// final path segment.
func storageKeyFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	key := path.Base(parsed.Path)
	if key == "." || key == "/" {
		return ""
	}
	return key
}
