package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"slintsurvey/internal/cache"
	"slintsurvey/internal/config"
	"slintsurvey/internal/repository"
	"slintsurvey/internal/service"
	"slintsurvey/internal/survey"
)

// Options selects the optional collaborators to connect
type Options struct {
	// Redis enables drafts and the dashboard cache. Without it drafts are unavailable.
	Redis bool
}

// App holds the wired services shared by the server and the CLI
type App struct {
	Config *config.Config
	Logger *zap.Logger
	Schema *survey.Schema

	ResponseRepo repository.ResponseRepo
	Redis        *redis.Client

	AuthService     *service.AuthService
	SurveyService   *service.SurveyService
	ResponseService *service.ResponseService
	ReportService   *service.ReportService
}

// New loads the catalog, connects the stores and builds the services
func New(ctx context.Context, cfg *config.Config, logger *zap.Logger, opts Options) (*App, error) {
	schema, err := survey.Default()
	if err != nil {
		return nil, fmt.Errorf("load survey catalog: %w", err)
	}

	repo, err := repository.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	logger.Info("response store connected", zap.String("driver", cfg.StoreDriver))

	a := &App{
		Config:       cfg,
		Logger:       logger,
		Schema:       schema,
		ResponseRepo: repo,
	}

	var (
		drafts    cache.DraftCache
		dashboard cache.DashboardCache
	)
	if opts.Redis {
		rdb, err := cache.NewClient(ctx, cfg.RedisURI)
		if err != nil {
			_ = repo.Close(ctx)
			return nil, err
		}
		logger.Info("redis connected")
		a.Redis = rdb
		drafts = cache.NewDraftCache(rdb, cfg.DraftTTL)
		dashboard = cache.NewDashboardCache(rdb, cfg.DashboardTTL)
	}

	a.AuthService = service.NewAuthService(service.AuthSettings{
		AdminUsername: cfg.AdminUsername,
		AdminPassword: cfg.AdminPassword,
		AccessCode:    cfg.SurveyAccessCode,
		JWTSecret:     cfg.JWTSecret,
	})
	a.ResponseService = service.NewResponseService(repo, dashboard, logger)
	a.ReportService = service.NewReportService(repo, dashboard, schema, logger)
	if drafts != nil {
		a.SurveyService = service.NewSurveyService(schema, drafts, a.ResponseService, logger)
	}

	return a, nil
}

// Close releases the store and cache connections
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	errs = append(errs, a.ResponseRepo.Close(ctx))
	return errors.Join(errs...)
}
