package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"slintsurvey/internal/app"
	"slintsurvey/internal/config"
	"slintsurvey/internal/logging"
	"slintsurvey/internal/transport/rest"
	"slintsurvey/internal/transport/ws"
)

// @title SLINT Member Survey API
// @version 1.0
// @description Survey catalog, respondent drafts, response storage and admin reports
// @host localhost:8080
// @BasePath /v1
func main() {
	cfg := config.Load()

	logger, err := logging.New(cfg.LogLevel, strings.EqualFold(cfg.LogFormat, "console"))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
	logger.Info("server exited")
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	for _, name := range cfg.InsecureDefaults() {
		logger.Warn("using built-in default; set it in production", zap.String("env", name))
	}

	a, err := app.New(ctx, cfg, logger, app.Options{Redis: true})
	if err != nil {
		return err
	}
	defer a.Close(context.Background())

	// Initialize WebSocket hub
	wsHub := ws.NewHub(ctx, logger.Named("ws"))
	defer wsHub.Close()

	// Inject broadcaster (wsHub implements service.Broadcaster)
	a.ResponseService.SetBroadcaster(wsHub)

	router := rest.NewRouter(&rest.Container{
		AuthService:     a.AuthService,
		SurveyService:   a.SurveyService,
		ResponseService: a.ResponseService,
		ReportService:   a.ReportService,
		WSHub:           wsHub,
		AllowedOrigins:  cfg.AllowedOrigins,
		Logger:          logger.Named("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.Int("sections", len(a.Schema.Sections())),
			zap.Int("questions", len(a.Schema.AllQuestions())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	// Wait for interrupt
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
