package main

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/quietmind/backend/internal/auth"
	"github.com/quietmind/backend/internal/config"
	"github.com/quietmind/backend/internal/handlers"
	"github.com/quietmind/backend/internal/logger"
	"github.com/quietmind/backend/internal/middleware"
	"github.com/quietmind/backend/internal/repository"
	"github.com/quietmind/backend/internal/service"
	"github.com/quietmind/backend/pkg/insightgen"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load .env for local development; ignored when the file is absent
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	logger.SetDefault(logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	}))
	log := logger.Default()

	log.Info("starting QuietMind API server",
		logger.String("env", cfg.Server.Env),
		logger.String("port", cfg.Server.Port),
	)

	// Open the database connection pool
	db, err := sql.Open("postgres", cfg.Database.URL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Initialize token issuer and reflection client
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	reflections := insightgen.NewClient(insightgen.Config{
		APIKey:      cfg.OpenAI.APIKey,
		Model:       cfg.OpenAI.Model,
		Temperature: cfg.OpenAI.Temperature,
		BaseURL:     cfg.OpenAI.BaseURL,
	})

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	moodRepo := repository.NewMoodRepository(db)

	// Initialize services
	authService := service.NewAuthService(userRepo, tokens)
	moodService := service.NewMoodService(moodRepo)
	insightService := service.NewInsightService(moodRepo, reflections)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	moodHandler := handlers.NewMoodHandler(moodService, insightService)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()
	router.Use(gin.Recovery())

	// Middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.CORS())
	router.Use(middleware.RateLimit())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Auth routes
		authGroup := v1.Group("/auth")
		authGroup.Use(middleware.RateLimitAuth())
		{
			authGroup.POST("/signup", authHandler.Signup)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/forgot-password", middleware.RateLimitStrict(), authHandler.ForgotPassword)
			authGroup.POST("/reset-password", middleware.RateLimitStrict(), authHandler.ResetPassword)
		}

		// Protected routes
		protected := v1.Group("")
		protected.Use(middleware.Auth(tokens))
		{
			protected.POST("/moods", moodHandler.CreateMood)
			protected.GET("/moods", moodHandler.GetMoods)
			protected.GET("/moods/today-checkin", moodHandler.TodayCheckin)
			protected.GET("/moods/weekly-summary", moodHandler.WeeklySummary)
			protected.GET("/moods/weekly-insight", moodHandler.WeeklyInsight)

			protected.GET("/users/:id/moods", moodHandler.GetUserMoods)
		}
	}

	log.Info("server listening", logger.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
