package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eduzap/eduzap/application/backend"
	"github.com/eduzap/eduzap/cmd/config"
	redisclient "github.com/eduzap/eduzap/cmd/redis"
	imageRepo "github.com/eduzap/eduzap/repository/image"
	requestRepo "github.com/eduzap/eduzap/repository/request"
	"github.com/eduzap/eduzap/thirdparty/rabbitmq"
	"github.com/eduzap/eduzap/transport"
	"github.com/eduzap/eduzap/utils/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment, logger.WithLevel(cfg.Log.Level), logger.WithOutput(cfg.Log.File)); err != nil {
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting dev backend", zap.String("env", cfg.Environment), zap.String("driver", cfg.Database.Driver))

	// Connect to database
	db, err := sqlx.Connect(cfg.Database.Driver, cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}
	defer db.Close()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize Redis client, images are dropped without it
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Initialize repositories
	RequestRepo := requestRepo.NewRequestRepository(db)
	ImageRepo := imageRepo.NewImageRepository(cfg.Redis.ImageTTL)
	if err := RequestRepo.Migrate(context.Background()); err != nil {
		logger.Fatal("err migrate", zap.Error(err))
	}

	var publisher backend.EventPublisher
	if cfg.RabbitMQ.Host != "" {
		p, err := rabbitmq.NewPublisher(rabbitConfig(cfg))
		if err != nil {
			logger.Fatal("err connect rabbitmq", zap.Error(err))
		}
		defer p.Close()
		publisher = p
	}

	// Initialize application layers
	BackendApp := backend.NewBackendApp(cfg, RequestRepo, ImageRepo, publisher)

	httpTransport := transport.NewTransport(BackendApp)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Fatal("failed server", zap.Error(err))
	}
}

func rabbitConfig(cfg *config.Config) rabbitmq.Config {
	return rabbitmq.Config{
		Host:     cfg.RabbitMQ.Host,
		Port:     cfg.RabbitMQ.Port,
		User:     cfg.RabbitMQ.User,
		Password: cfg.RabbitMQ.Password,
		Exchange: cfg.RabbitMQ.Exchange,
	}
}
