package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"wardrobe-backend/internal/config"
	"wardrobe-backend/internal/database"
	"wardrobe-backend/internal/handlers"
	"wardrobe-backend/internal/looks"
	"wardrobe-backend/internal/middleware"
	"wardrobe-backend/internal/supabase"
)

func main() {
	// Missing .env is fine; real deployments set env vars directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic("failed to load configuration: " + err.Error())
	}

	var log *zap.Logger
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
		log, err = zap.NewProduction()
	} else {
		log, err = zap.NewDevelopment()
	}
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	supabaseClient, err := supabase.NewClient(cfg)
	if err != nil {
		log.Fatal("failed to initialize supabase client", zap.Error(err))
	}

	storageClient, err := supabase.NewStorageClient(cfg.SupabaseURL, cfg.SupabaseServiceKey, log)
	if err != nil {
		log.Fatal("failed to initialize storage client", zap.Error(err))
	}

	dbClient := supabase.NewDatabaseClient(supabaseClient)

	if cfg.DatabaseURL != "" {
		migrator, err := database.NewMigrator(cfg.DatabaseURL, log)
		if err != nil {
			log.Warn("migrator unavailable, skipping migrations", zap.Error(err))
		} else {
			if err := migrator.Run(); err != nil {
				log.Warn("migrations failed", zap.Error(err))
			}
			migrator.Close()
		}
	} else {
		log.Warn("DATABASE_URL not set, skipping migrations")
	}

	// Selfie and wardrobe images are served as plain public URLs.
	storageClient.EnsurePublicBucket(cfg.SelfieBucket)
	storageClient.EnsurePublicBucket(cfg.WardrobeBucket)

	composer := looks.NewComposer(dbClient, log)

	authHandler := handlers.NewAuthHandler(supabaseClient, dbClient, cfg.JWTSecret, log)
	usersHandler := handlers.NewUsersHandler(dbClient)
	selfiesHandler := handlers.NewSelfiesHandler(dbClient, storageClient, cfg.SelfieBucket, log)
	wardrobeHandler := handlers.NewWardrobeHandler(dbClient, storageClient, cfg.WardrobeBucket, log)
	aiTasksHandler := handlers.NewAITasksHandler(dbClient, cfg.SupabaseURL, log)
	savedLooksHandler := handlers.NewSavedLooksHandler(composer)
	communityHandler := handlers.NewCommunityHandler(dbClient, log)
	weatherHandler := handlers.NewWeatherHandler(dbClient, log)

	router := gin.Default()

	router.GET("/health", handlers.HealthHandler)

	api := router.Group("/api/v1")

	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/reset", authHandler.Reset)

	authed := api.Group("")
	authed.Use(middleware.AuthMiddleware(cfg.JWTSecret, supabaseClient, dbClient))

	authed.GET("/users/me", usersHandler.GetMe)
	authed.PUT("/users/me", usersHandler.UpdateMe)

	authed.POST("/selfies/upload-url", selfiesHandler.CreateUploadURL)
	authed.POST("/selfies", selfiesHandler.Create)
	authed.GET("/selfies", selfiesHandler.List)
	authed.DELETE("/selfies/:id", selfiesHandler.Delete)
	authed.POST("/selfies/:id/default", selfiesHandler.SetDefault)

	authed.POST("/wardrobe/upload-url", wardrobeHandler.CreateUploadURL)
	authed.POST("/wardrobe", wardrobeHandler.Create)
	authed.GET("/wardrobe", wardrobeHandler.List)
	authed.GET("/wardrobe/:id", wardrobeHandler.Get)
	authed.PUT("/wardrobe/:id", wardrobeHandler.Update)
	authed.DELETE("/wardrobe/:id", wardrobeHandler.Delete)
	authed.POST("/wardrobe/:id/default", wardrobeHandler.SetDefault)

	authed.POST("/ai/tasks", aiTasksHandler.Create)
	authed.GET("/ai/tasks/:id", aiTasksHandler.Get)
	authed.POST("/ai/tasks/:id/process", aiTasksHandler.Process)

	authed.POST("/saved-looks", savedLooksHandler.Create)
	authed.GET("/saved-looks", savedLooksHandler.List)
	authed.DELETE("/saved-looks/:id", savedLooksHandler.Delete)
	authed.POST("/saved-looks/:id/publish", savedLooksHandler.Publish)

	authed.POST("/community/posts", communityHandler.CreatePost)
	authed.GET("/community/posts", communityHandler.ListPosts)
	authed.GET("/community/posts/:id", communityHandler.GetPost)
	authed.DELETE("/community/posts/:id", communityHandler.DeletePost)
	authed.POST("/community/posts/:id/likes", communityHandler.ToggleLike)
	authed.GET("/community/posts/:id/comments", communityHandler.ListComments)
	authed.POST("/community/posts/:id/comments", communityHandler.CreateComment)

	authed.POST("/weather/cache", weatherHandler.SaveCache)
	authed.GET("/weather/cache", weatherHandler.GetCache)

	log.Info("server starting", zap.String("port", cfg.Port))
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatal("server failed", zap.Error(err))
	}
}
