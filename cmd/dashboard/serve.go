package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rockalpatio/internal/dashboard"
	"rockalpatio/internal/handler"
	"rockalpatio/internal/httpserver"
	"rockalpatio/internal/repository"
	"rockalpatio/internal/service/auth"
	"rockalpatio/internal/session"
	"rockalpatio/pkg/db"
	"rockalpatio/pkg/mq"
	"rockalpatio/pkg/otel"
	"rockalpatio/pkg/outbox"
	"rockalpatio/pkg/redis"
)

var migrateOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the change-event dispatcher",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&migrateOnStart, "migrate", false, "Apply the schema before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Info("Starting dashboard...",
		zap.String("version", version),
		zap.String("db_host", cfg.DB.Host),
		zap.Int("db_port", cfg.DB.Port),
		zap.String("redis_addr", cfg.Redis.Addr),
	)

	shutdownOtel, err := otel.Init(cfg.Otel, version, log)
	if err != nil {
		log.Warn("OpenTelemetry init failed, continuing without tracing", zap.Error(err))
		shutdownOtel = func() {}
	}
	defer shutdownOtel()

	// DB
	dbConn, err := db.NewConnection(cfg.DB, log)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if migrateOnStart {
		if err := db.Migrate(cmd.Context(), dbConn, log); err != nil {
			return err
		}
	}

	// Redis（会话注销列表）
	rdb, err := redis.NewRedisClient(cmd.Context(), cfg.Redis)
	if err != nil {
		return err
	}
	defer rdb.Close()

	// Repositories
	outboxRepo := outbox.NewRepository(dbConn)
	userRepo := repository.NewUserRepository(dbConn)
	clienteRepo := repository.NewClienteRepository(dbConn, outboxRepo, log)
	objetivoRepo := repository.NewObjetivoRepository(dbConn, outboxRepo, log)
	tareaRepo := repository.NewTareaRepository(dbConn, outboxRepo, log)

	// Services
	authService := auth.NewService(userRepo, session.NewRedisRevoker(rdb), cfg.JWT.Secret, cfg.JWT.TTL, log)

	gin.SetMode(gin.ReleaseMode)
	router := httpserver.NewRouter(httpserver.Deps{
		AuthService: authService,
		Auth:        handler.NewAuthHandler(authService, log),
		Clientes:    handler.NewClienteHandler(dashboard.NewClientes(clienteRepo, log), log),
		Objetivos:   handler.NewObjetivoHandler(dashboard.NewObjetivos(objetivoRepo, log), log),
		Tareas:      handler.NewTareaHandler(dashboard.NewTareas(tareaRepo, log), log),
		Ready: map[string]httpserver.ReadinessCheck{
			"db":    dbConn.Ping,
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		},
		Logger: log,
	})

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Outbox Dispatcher（未配置 MQ 时事件保留在 outbox 表中）
	if cfg.MQ.URL != "" {
		publisher, err := mq.NewPublisher(cfg.MQ.URL)
		if err != nil {
			return err
		}
		defer publisher.Close()

		dispatcher := outbox.NewDispatcher(outboxRepo, publisher, log).
			WithInterval(cfg.Outbox.Interval).
			WithBatchSize(cfg.Outbox.BatchSize).
			WithMaxRetries(cfg.Outbox.MaxRetries)
		go dispatcher.Start(ctx)
	} else {
		log.Warn("mq.url is empty, change events will not be published")
	}

	srv := &http.Server{
		Addr:              cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server starting", zap.String("addr", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	// 优雅退出处理
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		log.Error("HTTP server failed", zap.Error(err))
		return err
	}

	log.Info("Shutting down dashboard gracefully...")
	stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", zap.Error(err))
	} else {
		log.Info("HTTP server stopped")
	}

	log.Info("dashboard shutdown complete")
	return nil
}
