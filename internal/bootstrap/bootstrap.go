package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/facultyhub/internal/app/controllers"
	"github.com/yigit/facultyhub/internal/app/join"
	appRepos "github.com/yigit/facultyhub/internal/app/repositories"
	appRoutes "github.com/yigit/facultyhub/internal/app/routes"
	appServices "github.com/yigit/facultyhub/internal/app/services"
	"github.com/yigit/facultyhub/internal/config"
	appMiddleware "github.com/yigit/facultyhub/internal/middleware"
	pkgAuth "github.com/yigit/facultyhub/internal/pkg/auth"
	"github.com/yigit/facultyhub/internal/pkg/logger"
	"github.com/yigit/facultyhub/internal/pkg/validation"
	"github.com/yigit/facultyhub/internal/pkg/websocket"
	"github.com/yigit/facultyhub/internal/seed"
	"github.com/yigit/facultyhub/internal/store"
)

// DefaultConfigPath is where the config file is looked up when none is given
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	DB             *store.DB
	Repos          *appRepos.Repositories
	Joiner         *join.Engine
	JWTService     *pkgAuth.JWTService
	Hub            *websocket.Hub
	Services       *appServices.Services
	Controllers    *appControllers.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	SocketHandler  *websocket.Handler
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(path string) (*config.Config, zerolog.Logger, error) {
	if path == "" {
		path = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, zerolog.Logger{}, fmt.Errorf("failed to load configuration: %w", err)
	}

	lgr := logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Format: logger.Format(strings.ToLower(cfg.Logging.Format)),
	})
	lgr.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the data directory and creates any missing collection
// file.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*store.DB, error) {
	db, err := store.Open(cfg.Storage.DataDir,
		store.WithLogger(logger.Component(lgr, "store")),
		store.WithRetry(cfg.Storage.WriteRetries, cfg.RetryDelay()),
	)
	if err != nil {
		return nil, err
	}
	if err := db.Init(ctx); err != nil {
		return nil, fmt.Errorf("initializing data directory %s: %w", cfg.Storage.DataDir, err)
	}
	lgr.Info().Str("dataDir", db.Dir()).Msg("Data store ready")
	return db, nil
}

// BuildDependencies initializes application repositories, services, and
// controllers. The notification hub runs until ctx is cancelled.
func BuildDependencies(ctx context.Context, cfg *config.Config, db *store.DB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{DB: db, Logger: lgr}

	deps.Repos = appRepos.NewRepositories(db)
	deps.Joiner = join.New(db)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	wsLogger := logger.Component(lgr, "websocket")
	deps.Hub = websocket.NewHub(wsLogger)
	go deps.Hub.Run(ctx)

	deps.Services = appServices.NewServices(deps.Repos, deps.Joiner, deps.JWTService, deps.Hub, lgr)

	websocket.NewMessageHandler(deps.Services.NotificationService, deps.Hub, wsLogger).Start(ctx)
	deps.SocketHandler = websocket.NewHandler(deps.Hub, deps.Services.NotificationService, cfg.Server.CORSOrigins, wsLogger)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.Controllers = appControllers.NewControllers(deps.Services, logger.Component(lgr, "http"))

	if cfg.Storage.SeedOnStart {
		if err := seed.CreateDefaultData(ctx, deps.Repos, deps.Services, lgr); err != nil {
			lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
		}
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}
	validation.RegisterGinValidations()

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(logger.Component(lgr, "http")))
	router.Use(cors.New(corsConfig(cfg.Server.CORSOrigins)))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.SocketHandler.HandleConnection)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

func corsConfig(origins []string) cors.Config {
	c := cors.DefaultConfig()
	c.AllowHeaders = append(c.AllowHeaders, "Authorization")
	c.AllowCredentials = true
	for _, o := range origins {
		if o == "*" {
			c.AllowAllOrigins = true
			c.AllowCredentials = false
			return c
		}
	}
	c.AllowOrigins = origins
	return c
}
