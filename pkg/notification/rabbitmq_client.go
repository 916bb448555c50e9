package notification

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"foodgram/domain"
	"foodgram/internal/logging"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// RabbitMQClient publishes and consumes recipe events on one durable queue.
type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
}

func NewRabbitMQClient(url, queueName string) (*RabbitMQClient, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	q, err := ch.QueueDeclare(
		queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
	}

	logging.Info().Str("queue", q.Name).Int("messages", q.Messages).Msg("rabbitmq queue declared")
	return &RabbitMQClient{conn: conn, channel: ch, queue: q}, nil
}

func (c *RabbitMQClient) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			logging.Warn().Err(err).Msg("error closing rabbitmq channel")
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			logging.Warn().Err(err).Msg("error closing rabbitmq connection")
		}
	}
}

func (c *RabbitMQClient) PublishRecipePublished(ctx context.Context, event domain.RecipePublishedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.PublishedAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}
	return nil
}

// ConsumeRecipePublished delivers events to handler until ctx is cancelled or the channel closes.
// Malformed messages are dropped; handler failures are requeued.
func (c *RabbitMQClient) ConsumeRecipePublished(ctx context.Context, handler func(context.Context, domain.RecipePublishedEvent) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	log := logging.With("rabbitmq-consumer")
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				log.Warn().Msg("rabbitmq delivery channel closed")
				return nil
			}

			var event domain.RecipePublishedEvent
			if err := json.Unmarshal(msg.Body, &event); err != nil {
				log.Error().Err(err).Bytes("body", msg.Body).Msg("dropping malformed message")
				if err := msg.Nack(false, false); err != nil {
					log.Error().Err(err).Msg("failed to nack message")
				}
				continue
			}

			if err := handler(ctx, event); err != nil {
				log.Error().Err(err).Str("recipe_id", event.RecipeID.String()).Msg("failed to handle event")
				if err := msg.Nack(false, true); err != nil {
					log.Error().Err(err).Msg("failed to nack message")
				}
				continue
			}
			if err := msg.Ack(false); err != nil {
				log.Error().Err(err).Msg("failed to ack message")
			}
		}
	}
}
