// Package bootstrap wires configuration, database, dependencies and the
// router together for server startup.
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
	appAuth "github.com/mkaya/campusdesk/internal/app/auth"
	appControllers "github.com/mkaya/campusdesk/internal/app/controllers"
	"github.com/mkaya/campusdesk/internal/app/integrity"
	appMigrations "github.com/mkaya/campusdesk/internal/app/migrations"
	appRepos "github.com/mkaya/campusdesk/internal/app/repositories"
	appRoutes "github.com/mkaya/campusdesk/internal/app/routes"
	appServices "github.com/mkaya/campusdesk/internal/app/services"
	"github.com/mkaya/campusdesk/internal/config"
	"github.com/mkaya/campusdesk/internal/db"
	pkgAuth "github.com/mkaya/campusdesk/internal/pkg/auth"
	"github.com/mkaya/campusdesk/internal/pkg/helpers"
	"github.com/mkaya/campusdesk/internal/pkg/logger"
	"github.com/mkaya/campusdesk/internal/seed"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos             *appRepos.Repositories
	RoleGuard         *integrity.RoleGuard
	Policy            *appAuth.Policy
	JWTService        *pkgAuth.JWTService
	AuthService       *appServices.AuthService
	AdminService      *appServices.AdminService
	StudentService    *appServices.StudentService
	StaffService      *appServices.StaffService
	WelfareService    *appServices.WelfareService
	AnalyticsService  *appServices.AnalyticsService
	AuthController    *appControllers.AuthController
	AdminController   *appControllers.AdminController
	StudentController *appControllers.StudentController
	StaffController   *appControllers.StaffController
	WelfareController *appControllers.WelfareController
	Logger            zerolog.Logger
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

// SetupDatabase establishes the database connection, runs migrations,
// installs the role-check triggers and seeds the default admin.
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

	// The trigger layer is rendered from the application's rule table,
	// so it is reapplied on every startup to stay in sync.
	if err := migrator.ApplyRoleTriggers(context.Background()); err != nil {
		lgr.Error().Err(err).Msg("Failed to apply role-check triggers")
		return nil, fmt.Errorf("role trigger installation failed: %w", err)
	}

	if err := seed.CreateDefaultData(context.Background(), cfg, dbPool, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.RoleGuard = integrity.NewRoleGuard()
	deps.Policy = appAuth.NewPolicy()
	deps.Repos = appRepos.NewRepositories(dbPool, deps.RoleGuard)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:       cfg.JWT.Secret,
		AccessTokenExp:  helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		RefreshTokenExp: helpers.ParseDuration(cfg.JWT.RefreshTokenExpiration, 720*time.Hour),
		TokenIssuer:     cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.Users, deps.JWTService)
	deps.AdminService = appServices.NewAdminService(deps.Repos)
	deps.StudentService = appServices.NewStudentService(deps.Repos, deps.Policy)
	deps.StaffService = appServices.NewStaffService(deps.Repos, deps.Policy)
	deps.WelfareService = appServices.NewWelfareService(deps.Repos, deps.Policy)
	deps.AnalyticsService = appServices.NewAnalyticsService(dbPool, deps.Repos, deps.Policy)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService, lgr)
	deps.AdminController = appControllers.NewAdminController(deps.AdminService, lgr)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService, lgr)
	deps.StaffController = appControllers.NewStaffController(deps.StaffService, deps.AnalyticsService, lgr)
	deps.WelfareController = appControllers.NewWelfareController(deps.WelfareService, deps.AnalyticsService, lgr)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.JWTService,
		deps.AuthController,
		deps.AdminController,
		deps.StudentController,
		deps.StaffController,
		deps.WelfareController,
	)

	return router
}
