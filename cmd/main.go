package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/eduzap/eduzap/application/remote"
	"github.com/eduzap/eduzap/cmd/config"
	"github.com/eduzap/eduzap/thirdparty/eduzapapi"
	"github.com/eduzap/eduzap/thirdparty/rabbitmq"
	"github.com/eduzap/eduzap/transport/cli"
	"github.com/eduzap/eduzap/utils/errors"
	"github.com/eduzap/eduzap/utils/logger"
	"go.uber.org/zap"
)

func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	if err := logger.Init(cfg.Environment, logger.WithLevel(cfg.Log.Level), logger.WithOutput(cfg.Log.File)); err != nil {
		panic(err)
	}
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Debug("Starting client", zap.String("server", cfg.Client.ServerURL))

	rs := remote.NewRemoteState(eduzapapi.NewClient(cfg.Client.ServerURL))
	opts := []cli.Option{cli.WithPageSize(cfg.Client.PageSize)}

	// live updates are optional
	if cfg.RabbitMQ.Host != "" {
		consumer, err := rabbitmq.NewConsumer(rabbitConfig(cfg))
		if err != nil {
			logger.Warn("err connect rabbitmq", zap.Error(err))
		} else {
			defer consumer.Close()
			opts = append(opts, cli.WithEvents(consumer))
		}
	}

	app := cli.New(rs, os.Stdout, opts...)
	err := app.Run(ctx, os.Args[1:], os.Stdin)
	switch {
	case err == nil:
	case stderrors.Is(err, cli.ErrUsage):
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	default:
		logger.Debug("command failed", zap.String("error", err.Error()))
		if _, ok := err.(errors.CustomError); !ok {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
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
