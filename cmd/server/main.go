package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/instantfun/soundboard/internal/auth"
	"github.com/instantfun/soundboard/internal/config"
	"github.com/instantfun/soundboard/internal/database"
	"github.com/instantfun/soundboard/internal/handlers"
	"github.com/instantfun/soundboard/internal/logger"
	"github.com/instantfun/soundboard/internal/middleware"
	"github.com/instantfun/soundboard/internal/storage"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, using system environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if err := logger.Initialize(cfg.LogLevel, cfg.LogFile); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Close()

	if err := database.Initialize(cfg.DatabaseURL, os.Getenv("ENVIRONMENT") == "development"); err != nil {
		logger.Log.Fatal("Failed to initialize database", zap.Error(err))
	}
	if err := database.Migrate(); err != nil {
		logger.Log.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Storage is optional at boot: without it, sound deletion skips the
	// remote object and upload-token requests answer with a config error.
	var store storage.ObjectStore
	if cfg.Storage.Configured() {
		s3Store, err := storage.NewS3Store(cfg.Storage)
		if err != nil {
			logger.Log.Fatal("Failed to initialize object storage", zap.Error(err))
		}
		store = s3Store
	} else {
		logger.Warn("object storage not configured, upload tokens unavailable")
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.BcryptCost)
	h := handlers.NewHandlers(authService, store, cfg)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.GinLoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())
	// Proxy responses are raw audio streams; compressing them buys nothing
	// and buffers the stream.
	r.Use(gzip.Gzip(gzip.DefaultCompression, gzip.WithExcludedPaths([]string{"/api/proxy"})))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "soundboard-backend",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.Use(middleware.RateLimit())
	{
		authGroup := api.Group("/auth")
		authGroup.Use(middleware.RateLimitAuth())
		{
			authGroup.POST("/register", h.Register)
			authGroup.POST("/login", h.Login)
			authGroup.GET("/me", middleware.RequireAuth(authService), h.Me)
		}

		sounds := api.Group("/sounds")
		{
			sounds.GET("", middleware.OptionalAuth(authService), h.ListSounds)
			sounds.POST("", middleware.RequireAuth(authService), h.CreateSound)
			sounds.PUT("/:id", middleware.RequireAuth(authService), h.UpdateSound)
			sounds.DELETE("/:id", middleware.RequireAuth(authService), h.DeleteSound)
		}

		collections := api.Group("/collections")
		collections.Use(middleware.RequireAuth(authService))
		{
			collections.POST("", h.CreateCollection)
			collections.GET("", h.ListCollections)
			collections.POST("/:id/sounds", h.AddSoundToCollection)
			collections.DELETE("/:id/sounds/:soundId", h.RemoveSoundFromCollection)
			collections.DELETE("/:id", h.DeleteCollection)
		}

		favorites := api.Group("/favorites")
		favorites.Use(middleware.RequireAuth(authService))
		{
			favorites.POST("", h.CreateFavorite)
			favorites.DELETE("/:soundId", h.DeleteFavorite)
			favorites.GET("", h.ListFavorites)
		}

		api.GET("/proxy", h.Proxy)
		api.GET("/upload-token", middleware.RequireAuth(authService), h.UploadToken)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	go func() {
		logger.Log.Info("Soundboard backend starting", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Log.Info("Server exited")
}
