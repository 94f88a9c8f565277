package main

import (
	"net/http"
	"os"

	"yoga-flashcards-api/config"
	"yoga-flashcards-api/handlers"
	"yoga-flashcards-api/helper"
	"yoga-flashcards-api/middleware"
	"yoga-flashcards-api/models"
	"yoga-flashcards-api/repositories"
	"yoga-flashcards-api/services"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	envErr := godotenv.Load()

	logg, err := config.NewLogger(os.Getenv("APP_ENV"))
	if err != nil {
		panic(err)
	}
	defer logg.Sync()

	if envErr != nil {
		logg.Info("no .env file found")
	}

	db, err := config.InitDB(logg)
	if err != nil {
		logg.Fatalw("database init failed", "error", err)
	}

	httpHelper, err := helper.NewHTTPHelper()
	if err != nil {
		logg.Fatalw("helper init failed", "error", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(db)
	tagRepo := repositories.NewTagRepository(db)
	cardRepo := repositories.NewFlashcardRepository(db)
	dailyRepo := repositories.NewDailyCardRepository(db)

	// Services
	authService := services.NewAuthService(userRepo)
	flashcardService := services.NewFlashcardService(cardRepo, tagRepo)
	tagService := services.NewTagService(tagRepo)
	dailyCardService := services.NewDailyCardService(dailyRepo, cardRepo)
	userService := services.NewUserService(userRepo)

	if os.Getenv("SEED_DATA") == "true" {
		seeder := services.NewSeedService(userRepo, tagRepo, cardRepo, flashcardService, logg)
		if err := seeder.Run(); err != nil {
			logg.Fatalw("seeding failed", "error", err)
		}
	}

	// Handlers
	authHandler := handlers.NewAuthHandler(authService, httpHelper)
	flashcardHandler := handlers.NewFlashcardHandler(flashcardService, httpHelper)
	tagHandler := handlers.NewTagHandler(tagService, httpHelper)
	dailyCardHandler := handlers.NewDailyCardHandler(dailyCardService)
	userHandler := handlers.NewUserHandler(userService)

	router := setupRouter(authHandler, flashcardHandler, tagHandler, dailyCardHandler, userHandler)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	logg.Infow("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		logg.Fatalw("server stopped", "error", err)
	}
}

func setupRouter(
	authHandler *handlers.AuthHandler,
	flashcardHandler *handlers.FlashcardHandler,
	tagHandler *handlers.TagHandler,
	dailyCardHandler *handlers.DailyCardHandler,
	userHandler *handlers.UserHandler,
) *gin.Engine {
	router := gin.Default()

	// CORS middleware
	router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	curator := middleware.RequireRole(string(models.RoleCurator), string(models.RoleAdmin))
	admin := middleware.RequireRole(string(models.RoleAdmin))

	v1 := router.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
		}

		// Public routes
		public := v1.Group("/public")
		{
			public.GET("/dailycard", dailyCardHandler.GetDailyCard)
			public.GET("/tags", tagHandler.GetTags)
		}

		// Protected routes
		protected := v1.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/profile", authHandler.GetProfile)

			cards := protected.Group("/cards")
			{
				cards.GET("", flashcardHandler.GetFlashcards)
				cards.GET("/:id", flashcardHandler.GetFlashcard)
				cards.GET("/:id/versions", flashcardHandler.GetVersionHistory)
				cards.POST("", curator, flashcardHandler.CreateFlashcard)
				cards.PUT("/:id", curator, flashcardHandler.UpdateFlashcard)
				cards.POST("/:id/revert", curator, flashcardHandler.RevertVersion)
				cards.DELETE("/:id", curator, flashcardHandler.DeleteFlashcard)
			}

			tags := protected.Group("/tags")
			{
				tags.GET("", tagHandler.GetTags)
				tags.GET("/:id", tagHandler.GetTag)
				tags.POST("", curator, tagHandler.CreateTag)
				tags.PUT("/:id", curator, tagHandler.UpdateTag)
			}

			users := protected.Group("/users")
			users.Use(admin)
			{
				users.GET("", userHandler.GetUsers)
				users.GET("/:id", userHandler.GetUser)
				users.PUT("/:id", userHandler.UpdateUser)
				users.DELETE("/:id", userHandler.DeleteUser)
			}
		}
	}

	return router
}
