package queue

import (
	"context"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"
)

const publishTimeout = 5 * time.Second

type RabbitMQPublisher interface {
	Publish(ctx context.Context, body []byte) error
}

type rabbitMQPublisher struct {
	channel    *amqp.Channel
	exchange   string
	routingKey string
	logger     zerolog.Logger
}

func NewRabbitMQPublisher(channel *amqp.Channel, exchange, routingKey string, logger zerolog.Logger) RabbitMQPublisher {
	return &rabbitMQPublisher{
		channel:    channel,
		exchange:   exchange,
		routingKey: routingKey,
		logger:     logger,
	}
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, body []byte) error {
	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(
		publishCtx,
		p.exchange,   // exchange
		p.routingKey, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
}
