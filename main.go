package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"carbon-footprint-system/handlers"
	"carbon-footprint-system/middleware"
	"carbon-footprint-system/models"
	"carbon-footprint-system/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		AppName: "Carbon Footprint Tracker API",
	})

	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("ALLOWED_ORIGINS not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(allowedOriginsList, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET environment variable not set")
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.EmissionFactor{},
		&models.Activity{},
		&models.Challenge{},
		&models.ChallengeMembership{},
		&models.Reward{},
		&models.Redemption{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	if err := models.SeedReferenceData(db); err != nil {
		log.Fatal("failed to seed reference data:", err)
	}

	strategy := services.StrategyFromName(os.Getenv("SCORING_STRATEGY"))
	log.Printf("Scoring strategy: %s", strategy.Name())

	authService := services.NewAuthService(db, jwtSecret)
	challengeService := services.NewChallengeService(db)
	activityService := services.NewActivityService(db, strategy, challengeService)
	rewardService := services.NewRewardService(db)
	dashboardService := services.NewDashboardService(db)
	newsService := services.NewNewsService(os.Getenv("GUARDIAN_API_KEY"))

	sched, err := services.StartScheduler(db, challengeService, strategy)
	if err != nil {
		log.Fatal("failed to start scheduler:", err)
	}

	protect := middleware.Protected(authService)

	handlers.SetupAuthRoutes(app, authService)
	handlers.SetupActivityRoutes(app, protect, activityService)
	handlers.SetupChallengeRoutes(app, protect, challengeService)
	handlers.SetupRewardRoutes(app, protect, rewardService)
	handlers.SetupDashboardRoutes(app, protect, dashboardService, newsService)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "Carbon Footprint Tracker API"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "5000"
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":" + port); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Printf("Server running on http://localhost:%s", port)

	<-ctx.Done()
	log.Println("Shutting down server...")
	if err := sched.Shutdown(); err != nil {
		log.Printf("Scheduler shutdown error: %v", err)
	}
	if err := app.Shutdown(); err != nil {
		log.Printf("Server shutdown error: %v", err)
	}
}
