package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/database"
	"github.com/instantfun/soundboard/internal/models"
	"github.com/instantfun/soundboard/internal/util"
)

// CreateCollection creates a new collection owned by the caller.
// POST /api/collections
func (h *Handlers) CreateCollection(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		IsPublic    bool   `json:"is_public"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, "invalid request body")
		return
	}

	if req.Name == "" {
		util.RespondValidationError(c, "name", "collection name is required")
		return
	}

	collection := models.Collection{
		Name:        req.Name,
		Description: req.Description,
		IsPublic:    req.IsPublic,
		OwnerID:     user.ID,
		Sounds:      []models.Sound{},
	}

	if err := database.DB.Create(&collection).Error; err != nil {
		util.RespondInternalError(c, "failed to create collection")
		return
	}

	c.JSON(http.StatusCreated, collection)
}

// ListCollections returns the caller's collections with their sounds,
// newest first.
// GET /api/collections
func (h *Handlers) ListCollections(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	collections := []models.Collection{}
	err := database.DB.
		Preload("Sounds").
		Where("owner_id = ?", user.ID).
		Order("created_at DESC").
		Find(&collections).Error
	if err != nil {
		util.RespondInternalError(c, "failed to fetch collections")
		return
	}

	c.JSON(http.StatusOK, collections)
}

// ownedCollection loads a collection and enforces ownership, writing the
// error response itself when the lookup or the check fails.
func (h *Handlers) ownedCollection(c *gin.Context, collectionID, userID string) (*models.Collection, bool) {
	var collection models.Collection
	if err := database.DB.First(&collection, "id = ?", collectionID).Error; err != nil {
		util.HandleDBError(c, err, "collection")
		return nil, false
	}

	if collection.OwnerID != userID {
		util.RespondForbidden(c, "you are not permitted to modify this collection")
		return nil, false
	}

	return &collection, true
}

// AddSoundToCollection adds a sound to one of the caller's collections.
// POST /api/collections/:id/sounds
func (h *Handlers) AddSoundToCollection(c *gin.Context) {
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

	collection, ok := h.ownedCollection(c, c.Param("id"), user.ID)
	if !ok {
		return
	}

	var sound models.Sound
	if err := database.DB.First(&sound, "id = ?", req.SoundID).Error; err != nil {
		util.HandleDBError(c, err, "sound")
		return
	}

	var count int64
	database.DB.Table("collection_sounds").
		Where("collection_id = ? AND sound_id = ?", collection.ID, sound.ID).
		Count(&count)
	if count > 0 {
		util.RespondValidationError(c, "sound_id", "sound is already in this collection")
		return
	}

	if err := database.DB.Model(collection).Association("Sounds").Append(&sound); err != nil {
		util.RespondInternalError(c, "failed to add sound to collection")
		return
	}

	if err := database.DB.Preload("Sounds").First(collection, "id = ?", collection.ID).Error; err != nil {
		util.HandleDBError(c, err, "collection")
		return
	}
	c.JSON(http.StatusOK, collection)
}

// RemoveSoundFromCollection removes a sound from one of the caller's
// collections. Removing a sound that is not a member is a no-op.
// DELETE /api/collections/:id/sounds/:soundId
func (h *Handlers) RemoveSoundFromCollection(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	collection, ok := h.ownedCollection(c, c.Param("id"), user.ID)
	if !ok {
		return
	}

	err := database.DB.Exec("DELETE FROM collection_sounds WHERE collection_id = ? AND sound_id = ?",
		collection.ID, c.Param("soundId")).Error
	if err != nil {
		util.RespondInternalError(c, "failed to remove sound from collection")
		return
	}

	if err := database.DB.Preload("Sounds").First(collection, "id = ?", collection.ID).Error; err != nil {
		util.HandleDBError(c, err, "collection")
		return
	}
	c.JSON(http.StatusOK, collection)
}

// DeleteCollection deletes one of the caller's collections and its
// membership rows. The sounds themselves are untouched.
// DELETE /api/collections/:id
func (h *Handlers) DeleteCollection(c *gin.Context) {
	user, ok := util.GetUserFromContext(c)
	if !ok {
		return
	}

	collection, ok := h.ownedCollection(c, c.Param("id"), user.ID)
	if !ok {
		return
	}

	if err := database.DB.Exec("DELETE FROM collection_sounds WHERE collection_id = ?", collection.ID).Error; err != nil {
		util.RespondInternalError(c, "failed to delete collection")
		return
	}
	if err := database.DB.Delete(&models.Collection{}, "id = ?", collection.ID).Error; err != nil {
		util.RespondInternalError(c, "failed to delete collection")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
