// Package bootstrap wires the application together: configuration, logger,
// database, repositories, services, controllers and the HTTP router. All
// dependencies are constructed explicitly here, nothing is global.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/emre/scholaris/internal/app/controllers"
	appMigrations "github.com/emre/scholaris/internal/app/migrations"
	appRepos "github.com/emre/scholaris/internal/app/repositories"
	appRoutes "github.com/emre/scholaris/internal/app/routes"
	appServices "github.com/emre/scholaris/internal/app/services"
	"github.com/emre/scholaris/internal/config"
	"github.com/emre/scholaris/internal/db"
	appMiddleware "github.com/emre/scholaris/internal/middleware"
	"github.com/emre/scholaris/internal/pkg/logger"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	StudentService          appServices.StudentService
	CourseService           appServices.CourseService
	AttendanceService       appServices.AttendanceService
	CalendarEventService    appServices.CalendarEventService
	HollandService          appServices.HollandService
	StudentController       *appControllers.StudentController
	CourseController        *appControllers.CourseController
	AttendanceController    *appControllers.AttendanceController
	CalendarEventController *appControllers.CalendarEventController
	HollandController       *appControllers.HollandController
	Repos                   *appRepos.Repositories
	Logger                  zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")
	return dbPool, nil
}

// BuildDependencies constructs the repository, service and controller graph.
func BuildDependencies(dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	repos := appRepos.NewRepositories(dbPool)

	studentService := appServices.NewStudentService(repos.StudentRepository)
	courseService := appServices.NewCourseService(repos.CourseRepository)
	attendanceService := appServices.NewAttendanceService(
		repos.AttendanceRepository, repos.StudentRepository, repos.CourseRepository)
	calendarEventService := appServices.NewCalendarEventService(
		repos.CalendarEventRepository, repos.CourseRepository)
	hollandService := appServices.NewHollandService(
		repos.HollandRepository, repos.StudentRepository)

	return &Dependencies{
		StudentService:          studentService,
		CourseService:           courseService,
		AttendanceService:       attendanceService,
		CalendarEventService:    calendarEventService,
		HollandService:          hollandService,
		StudentController:       appControllers.NewStudentController(studentService),
		CourseController:        appControllers.NewCourseController(courseService),
		AttendanceController:    appControllers.NewAttendanceController(attendanceService),
		CalendarEventController: appControllers.NewCalendarEventController(calendarEventService),
		HollandController:       appControllers.NewHollandController(hollandService),
		Repos:                   repos,
		Logger:                  lgr,
	}
}

// SetupRouter creates the gin engine with middleware and all routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.EqualFold(cfg.Server.Mode, "production") {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger())

	appRoutes.SetupRouter(
		router,
		deps.StudentController,
		deps.CourseController,
		deps.AttendanceController,
		deps.CalendarEventController,
		deps.HollandController,
	)
	appRoutes.SetupSwagger(router)

	lgr.Info().Msg("Router configured")
	return router
}
