package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodgram/cmd/config"
	migration "foodgram/cmd/database/migrate"
	"foodgram/internal/logging"
	"foodgram/internal/utils"
	"foodgram/internal/utils/mailing"
	"foodgram/pkg/notification"
	"foodgram/pkg/subscription"
)

func main() {
	mode := flag.String("mode", "server", "run mode: server, worker or migrate")
	flag.Parse()

	utils.LoadConfig()
	logging.Init(logging.Config{
		Level:  utils.GetConfig("LOG_LEVEL"),
		Format: utils.GetConfig("LOG_FORMAT"),
	})
	logging.Info().Str("mode", *mode).Msg("starting foodgram")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, *mode); err != nil {
		logging.Error().Err(err).Str("mode", *mode).Msg("foodgram stopped with error")
		os.Exit(1)
	}
	logging.Info().Msg("foodgram stopped")
}

func run(ctx context.Context, mode string) error {
	db, err := config.ConnectDB()
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	switch mode {
	case "migrate":
		return migration.Migrate(db)

	case "server":
		rdb, err := config.ConnectRedis(ctx)
		if err != nil {
			return err
		}
		defer rdb.Close()

		broker, err := config.ConnectRabbitMQ()
		if err != nil {
			return err
		}
		if broker != nil {
			defer broker.Close()
		}

		app, err := config.NewApp(db, rdb, config.Publisher(broker))
		if err != nil {
			return err
		}

		errCh := make(chan error, 1)
		go func() {
			errCh <- app.Listen(":" + utils.GetConfig("APP_PORT"))
		}()

		select {
		case err := <-errCh:
			return err
		case <-ctx.Done():
		}
		logging.Info().Msg("shutting down http server")
		return app.ShutdownWithTimeout(10 * time.Second)

	case "worker":
		broker, err := config.ConnectRabbitMQ()
		if err != nil {
			return err
		}
		if broker == nil {
			return errors.New("worker mode requires RABBITMQ_URL")
		}
		defer broker.Close()

		notifier := notification.NewNotifier(
			subscription.NewSubscriptionRepository(db),
			mailing.NewMailer(mailing.LoadMailConfig()),
			utils.GetConfig("APP_URL"),
		)
		err = notification.NewWorker(broker, notifier).Run(ctx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return errors.New("unknown mode " + mode + " (use server, worker or migrate)")
}
