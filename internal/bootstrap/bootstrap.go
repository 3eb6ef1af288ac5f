package bootstrap

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/burakd/teamdocs/internal/app/controllers"
	"github.com/burakd/teamdocs/internal/app/models"
	"github.com/burakd/teamdocs/internal/app/models/dto"
	appRepos "github.com/burakd/teamdocs/internal/app/repositories"
	appRoutes "github.com/burakd/teamdocs/internal/app/routes"
	appServices "github.com/burakd/teamdocs/internal/app/services"
	"github.com/burakd/teamdocs/internal/config"
	"github.com/burakd/teamdocs/internal/db"
	"github.com/burakd/teamdocs/internal/ghsync"
	appMiddleware "github.com/burakd/teamdocs/internal/middleware"
	"github.com/burakd/teamdocs/internal/pkg/helpers"
	"github.com/burakd/teamdocs/internal/pkg/logger"
	"github.com/burakd/teamdocs/internal/seed"
)

// syncFetchLimit caps how many assignments the README sync renders.
const syncFetchLimit = 500

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos                *appRepos.Repositories
	Services             *appServices.Services
	TeamMemberController *appControllers.TeamMemberController
	AssignmentController *appControllers.AssignmentController
	ActivityController   *appControllers.ActivityController
	AnalyticsController  *appControllers.AnalyticsController
	Syncer               *ghsync.Syncer
	Logger               zerolog.Logger
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

// SetupDatabase connects to MongoDB, ensures the indexes and seeds
// default data into empty collections.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.MongoDB, error) {
	lgr.Info().Str("database", cfg.Database.Name).Msg("Establishing database connection...")
	database, err := db.NewMongoDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := database.EnsureIndexes(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ensure indexes")
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer closeCancel()
		_ = database.Close(closeCtx)
		return nil, err
	}

	if err := seed.CreateDefaultData(ctx, appRepos.NewRepositories(database.Database)); err != nil {
		// A failed seed leaves an empty but working installation
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	lgr.Info().Msg("Database connection successfully established.")
	return database, nil
}

// BuildDependencies initializes repositories, services and controllers.
func BuildDependencies(cfg *config.Config, database *db.MongoDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database.Database)

	var notifier appServices.ChangeNotifier
	if cfg.GitHub.Token != "" && cfg.GitHub.Owner != "" && cfg.GitHub.Repo != "" {
		deps.Syncer = buildSyncer(cfg, deps.Repos)
		notifier = deps.Syncer
		lgr.Info().
			Str("repo", cfg.GitHub.Owner+"/"+cfg.GitHub.Repo).
			Str("path", cfg.GitHub.FilePath).
			Msg("GitHub README sync enabled")
	} else {
		lgr.Info().Msg("GitHub README sync disabled, no token configured")
	}

	deps.Services = appServices.NewServices(deps.Repos, notifier)

	deps.TeamMemberController = appControllers.NewTeamMemberController(deps.Services.TeamMemberService)
	deps.AssignmentController = appControllers.NewAssignmentController(deps.Services.AssignmentService)
	deps.ActivityController = appControllers.NewActivityController(deps.Services.ActivityService)
	deps.AnalyticsController = appControllers.NewAnalyticsController(deps.Services.AnalyticsService)

	return deps, nil
}

func buildSyncer(cfg *config.Config, repos *appRepos.Repositories) *ghsync.Syncer {
	source := func(ctx context.Context) ([]*models.Assignment, error) {
		assignments, _, err := repos.AssignmentRepository.List(ctx, dto.AssignmentListQuery{
			Page:      1,
			Limit:     syncFetchLimit,
			SortBy:    "dueDate",
			SortOrder: "asc",
		})
		return assignments, err
	}

	return ghsync.NewSyncer(ghsync.Options{
		Owner:    cfg.GitHub.Owner,
		Repo:     cfg.GitHub.Repo,
		FilePath: cfg.GitHub.FilePath,
		Token:    cfg.GitHub.Token,
		Debounce: helpers.ParseDuration(cfg.GitHub.Debounce, 5*time.Second),
	}, source)
}

// SetupRouter configures the gin engine, the middleware chain and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestID())
	router.Use(appMiddleware.RequestLogger())
	router.Use(appMiddleware.CORS())

	appRoutes.SetupRouter(router,
		deps.TeamMemberController,
		deps.AssignmentController,
		deps.ActivityController,
		deps.AnalyticsController,
	)

	return router
}
