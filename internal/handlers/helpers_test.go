package handlers

import (
	"fmt"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/instantfun/soundboard/internal/auth"
	"github.com/instantfun/soundboard/internal/config"
	"github.com/instantfun/soundboard/internal/database"
	"github.com/instantfun/soundboard/internal/middleware"
	"github.com/instantfun/soundboard/internal/models"
	"github.com/instantfun/soundboard/internal/storage"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database, migrates the schema and
// installs it as the package-global connection.
func setupTestDB(t *testing.T, name string) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Sound{},
		&models.Collection{},
		&models.Favorite{},
	))

	database.DB = db
	return db
}

func testConfig() *config.Config {
	return &config.Config{
		Port:        "3000",
		JWTSecret:   []byte("test_jwt_secret_key"),
		BcryptCost:  bcrypt.MinCost,
		MaxFileSize: 5 * 1024 * 1024,
		MaxDuration: 30 * time.Second,
		Storage: config.StorageConfig{
			AccessKey:      "test-access",
			SecretKey:      "test-secret",
			Bucket:         "test-bucket",
			Domain:         "https://cdn.test",
			Region:         "us-east-1",
			UploadTokenTTL: time.Hour,
		},
	}
}

// newTestRouter wires the real middleware stack around the handlers so the
// auth guard is exercised with real tokens.
func newTestRouter(h *Handlers, authService *auth.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api := r.Group("/api")
	{
		api.POST("/auth/register", h.Register)
		api.POST("/auth/login", h.Login)
		api.GET("/auth/me", middleware.RequireAuth(authService), h.Me)

		api.GET("/sounds", middleware.OptionalAuth(authService), h.ListSounds)
		api.POST("/sounds", middleware.RequireAuth(authService), h.CreateSound)
		api.PUT("/sounds/:id", middleware.RequireAuth(authService), h.UpdateSound)
		api.DELETE("/sounds/:id", middleware.RequireAuth(authService), h.DeleteSound)

		collections := api.Group("/collections", middleware.RequireAuth(authService))
		collections.POST("", h.CreateCollection)
		collections.GET("", h.ListCollections)
		collections.POST("/:id/sounds", h.AddSoundToCollection)
		collections.DELETE("/:id/sounds/:soundId", h.RemoveSoundFromCollection)
		collections.DELETE("/:id", h.DeleteCollection)

		favorites := api.Group("/favorites", middleware.RequireAuth(authService))
		favorites.POST("", h.CreateFavorite)
		favorites.DELETE("/:soundId", h.DeleteFavorite)
		favorites.GET("", h.ListFavorites)

		api.GET("/proxy", h.Proxy)
		api.GET("/upload-token", middleware.RequireAuth(authService), h.UploadToken)
	}

	return r
}

// createTestUser inserts a user and returns it with a valid bearer token.
func createTestUser(t *testing.T, db *gorm.DB, authService *auth.Service, username string) (*models.User, string) {
	resp, err := authService.Register(auth.RegisterRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	return &resp.User, resp.Token
}

// createTestSound inserts a sound owned by the given user.
func createTestSound(t *testing.T, db *gorm.DB, owner *models.User, name string) *models.Sound {
	sound := &models.Sound{
		Name:       name,
		URL:        "https://cdn.test/" + name + ".mp3",
		Color:      "#ff0000",
		Duration:   5,
		Size:       1024,
		UploaderID: &owner.ID,
	}
	require.NoError(t, db.Create(sound).Error)
	return sound
}

// newMockStore returns a fresh in-memory object store.
func newMockStore() *storage.MockStore {
	return &storage.MockStore{}
}
