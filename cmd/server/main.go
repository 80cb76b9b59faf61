package main

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/healthcheck"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/pprof"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/resumatch/resumatch/internal/config"
	"github.com/resumatch/resumatch/internal/domain/fiber/handler"
	"github.com/resumatch/resumatch/internal/engine"
	"github.com/resumatch/resumatch/internal/logger"
	"github.com/resumatch/resumatch/internal/middleware"
	"github.com/resumatch/resumatch/internal/model"
	"github.com/resumatch/resumatch/internal/repository"
	"github.com/resumatch/resumatch/internal/taxonomy"
	"github.com/resumatch/resumatch/internal/usecase"
)

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	appConfig := config.LoadAppConfig()

	zlog, err := logger.New(appConfig.JSON, appConfig.Debug)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	defer zlog.Sync()

	taxonomyConfig := config.LoadTaxonomyConfig()
	tax, err := taxonomy.Load(taxonomyConfig.Path, taxonomyConfig.URL)
	if err != nil {
		zlog.Fatal("taxonomy load failed", zap.Error(err))
	}
	zlog.Info("taxonomy loaded",
		zap.String("version", tax.Version()),
		zap.Int("skills", tax.Len()),
	)

	app := fiber.New(fiber.Config{
		AppName: appConfig.Name,
		ErrorHandler: func(ctx *fiber.Ctx, err error) error {
			// Status code defaults to 500
			code := fiber.StatusInternalServerError

			// Retrieve the custom status code if it's a *fiber.Error
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}

			message := err.Error()
			if message == "" {
				message = "Internal Server Error"
			}

			return ctx.Status(code).JSON(fiber.Map{"error": message})
		},
	})
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
	}))
	app.Use(recover.New(recover.Config{
		EnableStackTrace: appConfig.Env != "production",
	}))
	app.Use(compress.New(compress.Config{
		Level: compress.LevelBestSpeed, // 1
	}))
	app.Use(pprof.New(pprof.Config{
		Next: func(c *fiber.Ctx) bool {
			return appConfig.Env == "production"
		},
	}))
	app.Use(healthcheck.New())
	app.Use(helmet.New(helmet.Config{
		CrossOriginResourcePolicy: "cross-origin",
	}))
	app.Use(middleware.RateLimiter(50, 1*time.Minute))
	app.Use(middleware.RequestLogger(zlog))

	db := ConnectDB(zlog)

	resumeRepo := repository.NewResumeRepository(db)
	jobRepo := repository.NewJobPostingRepository(db)
	analysisRepo := repository.NewAnalysisRepository(db)

	analysisConfig := config.LoadAnalysisConfig()
	eng := engine.New(tax, analysisConfig.Engine)
	uc := usecase.NewAnalysisUsecase(analysisRepo, resumeRepo, jobRepo, eng, analysisConfig.Timeout, zlog)

	handler.NewResumeHandler(resumeRepo, tax).RegisterRoutes(app)
	handler.NewJobPostingHandler(jobRepo, tax).RegisterRoutes(app)
	handler.NewAnalysisHandler(uc).RegisterRoutes(app)

	zlog.Info("server running", zap.String("port", appConfig.Port))
	if err := app.Listen(appConfig.Port); err != nil {
		zlog.Fatal("server stopped", zap.Error(err))
	}
}

func ConnectDB(zlog *zap.Logger) *gorm.DB {
	dbConfig := config.LoadDBConfig()
	appConfig := config.LoadAppConfig()

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
		dbConfig.Host,
		dbConfig.User,
		dbConfig.Password,
		dbConfig.Name,
		dbConfig.Port,
		dbConfig.SSLMode,
		dbConfig.TimeZone,
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		zlog.Fatal("could not connect to database", zap.Error(err))
	}
	pgDB, err := db.DB()
	if err != nil {
		zlog.Fatal("could not get database instance", zap.Error(err))
	}
	if appConfig.Env != "production" {
		pgDB.SetMaxIdleConns(5)
		pgDB.SetMaxOpenConns(10)
		pgDB.SetConnMaxLifetime(30 * time.Minute)
	} else {
		pgDB.SetMaxIdleConns(20)
		pgDB.SetMaxOpenConns(200)
		pgDB.SetConnMaxLifetime(time.Hour)
	}

	if err := db.AutoMigrate(&model.ResumeProfile{}, &model.JobPosting{}, &model.AnalysisResult{}); err != nil {
		zlog.Fatal("migration failed", zap.Error(err))
	}
	return db
}
