package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"taskmanager/internal/adapter/blob"
	dbadapter "taskmanager/internal/adapter/db"
	httpadapter "taskmanager/internal/adapter/http"
	"taskmanager/internal/adapter/http/handlers"
	httpmiddleware "taskmanager/internal/adapter/http/middleware"
	"taskmanager/internal/adapter/notify"
	"taskmanager/internal/app/service"
	"taskmanager/pkg/translator"
)

const shutdownTimeout = 10 * time.Second

func serveCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(migrate)
		},
	}
	cmd.Flags().BoolVar(&migrate, "migrate", false, "create the schema before serving")
	return cmd
}

func runServe(migrate bool) error {
	cfg, logger, flush, err := setup()
	if err != nil {
		return err
	}
	defer flush()

	translator.InitTranslator(translator.Config{
		TranslationFolder:  cfg.TranslationFolder,
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	db, err := dbadapter.ConnectDB(cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database connection", zap.Error(err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if migrate {
		if err := dbadapter.Migrate(ctx, db); err != nil {
			return err
		}
	}

	maxUploadBytes := cfg.UploadMaxMB << 20
	blobs, err := blob.NewFileStore(cfg.UploadDir, maxUploadBytes)
	if err != nil {
		return err
	}

	taskService := service.NewTaskService(
		dbadapter.NewTaskRepository(db),
		dbadapter.NewUserRepository(db),
		blobs,
		notify.NewLogNotifier(logger),
	)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.MaxMultipartMemory = maxUploadBytes
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return err
	}
	r.Use(
		gin.Recovery(),
		httpmiddleware.RequestID(),
		httpmiddleware.GinZapMiddleware(logger),
		httpmiddleware.CORS(cfg.CorsAllowedOrigins),
	)
	httpadapter.RegisterRoutes(r,
		httpmiddleware.NewAuth(cfg.JWTSecret),
		handlers.NewHealthHandler(db, cfg.AppName, cfg.AppVersion),
		handlers.NewTaskHandler(taskService, handlers.WithMaxUploadBytes(maxUploadBytes)),
	)

	server := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting server", zap.String("addr", server.Addr), zap.String("driver", cfg.DbDriver))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	stop()
	logger.Info("shutting down gracefully")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("server exited")
	return nil
}
