package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"simulazioni-backend/internal/config"
	"simulazioni-backend/internal/controller"
	"simulazioni-backend/internal/db"
	"simulazioni-backend/internal/model"
	"simulazioni-backend/internal/repository"
	"simulazioni-backend/internal/service"
	logger "simulazioni-backend/pkg/logging"
	"simulazioni-backend/pkg/middleware"
	"simulazioni-backend/utilities"
)

func main() {
	seedFlag := flag.Bool("seed", false, "seed demo data and exit")
	createAdminFlag := flag.Bool("create-admin", false, "interactively create a staff user and exit")
	configPath := flag.String("config", "config.xml", "path to the XML configuration")
	flag.Parse()

	printStartUpBanner()

	// Optional .env for secrets (DB password, JWT secrets).
	_ = godotenv.Load()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger.Setup(logger.Options{
		Dir:        cfg.Logging.Dir,
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.MaxAgeDays,
		Level:      cfg.Logging.Level,
	})

	// Initialize DB using the loaded config.
	db.InitDBFromConfig(cfg)
	if cfg.DB.Initialize {
		if err := db.GetDB().AutoMigrate(
			&model.User{}, &model.Simulation{}, &model.Question{},
			&model.Result{}, &model.OpenAnswer{},
		); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
	}

	// Create repositories.
	userRepo := repository.NewUserRepository(db.GetDB())
	simRepo := repository.NewSimulationRepository(db.GetDB())
	resultRepo := repository.NewResultRepository(db.GetDB())

	if *createAdminFlag {
		createAdmin(userRepo)
		return
	}
	if *seedFlag {
		seed(userRepo, simRepo, resultRepo)
		return
	}

	// Create services.
	authService := service.NewAuthService(userRepo)
	userService := service.NewUserService(userRepo)
	simulationService := service.NewSimulationService(simRepo)
	attemptService := service.NewAttemptService(resultRepo, simRepo)
	gradingService := service.NewGradingService(resultRepo)
	reviewService := service.NewReviewService(resultRepo, cfg.Pagination.PageSize)

	service.InitGradingEventListeners()

	// Initialize Gin router.
	r := gin.Default()

	// CORS configuration.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RequestDump {
		r.Use(middleware.RequestDumpMiddleware())
	}
	if cfg.Authentication.EnableTokenAuth {
		r.Use(utilities.AuthMiddleware())
	}

	controller.RegisterRoutes(r, cfg,
		authService, userService, simulationService,
		attemptService, gradingService, reviewService,
	)

	addr := fmt.Sprintf("%s:%d", cfg.Context.Host, cfg.Context.Port)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func printStartUpBanner() {
	myFigure := figure.NewFigure("SIMULAZIONI", "", true)
	myFigure.Print()

	fmt.Println("======================================================")
	fmt.Printf("SIMULAZIONI API (v%s)\n\n", "1.0.0")
}
