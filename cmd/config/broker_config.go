package config

import (
	"context"
	"fmt"

	"foodgram/internal/logging"
	"foodgram/internal/utils"
	"foodgram/pkg/notification"

	"github.com/redis/go-redis/v9"
)

func ConnectRedis(ctx context.Context) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     utils.GetConfig("REDIS_ADDR"),
		Password: utils.GetConfig("REDIS_PASSWORD"),
		DB:       utils.GetConfigInt("REDIS_DB", 0),
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	return rdb, nil
}

// ConnectRabbitMQ returns nil without error when no broker url is configured.
func ConnectRabbitMQ() (*notification.RabbitMQClient, error) {
	url := utils.GetConfig("RABBITMQ_URL")
	if url == "" {
		return nil, nil
	}
	return notification.NewRabbitMQClient(url, utils.GetConfig("RABBITMQ_QUEUE"))
}

// Publisher picks the broker when one is connected and falls back to logging events.
func Publisher(client *notification.RabbitMQClient) notification.Publisher {
	if client == nil {
		logging.Warn().Msg("RABBITMQ_URL is not set, recipe events will only be logged")
		return notification.NewLogPublisher()
	}
	return client
}
