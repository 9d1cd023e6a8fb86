package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"pool-fund/pkg/config"
	"pool-fund/pkg/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

const (
	PoolEventsExchange = "pool_events"

	GamificationQueueName = "gamification_queue"
	NotificationQueueName = "notification_queue"

	RoutingContributionCaptured = "contribution.captured"
	RoutingMilestoneReached     = "milestone.reached"
	RoutingBadgeAwarded         = "badge.awarded"
)

// Publisher is the slice of the client used by use cases, so they can be tested without a broker.
type Publisher interface {
	Publish(routingKey string, payload interface{}) error
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		PoolEventsExchange, // name
		"topic",            // type
		true,               // durable
		false,              // auto-deleted
		false,              // internal
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	bindings := map[string][]string{
		GamificationQueueName: {RoutingContributionCaptured},
		NotificationQueueName: {RoutingMilestoneReached, RoutingBadgeAwarded},
	}
	for queueName, keys := range bindings {
		if _, err := channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
			channel.Close()
			conn.Close()
			return nil, fmt.Errorf("failed to declare queue %s: %w", queueName, err)
		}
		for _, key := range keys {
			if err := channel.QueueBind(queueName, key, PoolEventsExchange, false, nil); err != nil {
				channel.Close()
				conn.Close()
				return nil, fmt.Errorf("failed to bind queue %s to %s: %w", queueName, key, err)
			}
		}
	}

	// One unacked delivery at a time per consumer keeps redeliveries cheap.
	if err := channel.Qos(1, 0, false); err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set qos: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// Publish sends payload as persistent JSON on the pool events exchange.
func (c *Client) Publish(routingKey string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	err = c.channel.Publish(
		PoolEventsExchange, // exchange
		routingKey,         // routing key
		false,              // mandatory
		false,              // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish to exchange=%s, routing_key=%s: %v", PoolEventsExchange, routingKey, err)
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.Debug("[RABBITMQ] Published routing_key=%s: %s", routingKey, string(body))
	return nil
}

// Consume delivers message bodies from queueName to handler. A handler error
// requeues the message; a body that is not JSON is dropped.
func (c *Client) Consume(queueName string, handler func(body []byte) error) error {
	return c.ConsumeRouted(queueName, func(_ string, body []byte) error {
		return handler(body)
	})
}

// ConsumeRouted is Consume for queues bound to several routing keys; the
// handler receives the key each message was published with.
func (c *Client) ConsumeRouted(queueName string, handler func(routingKey string, body []byte) error) error {
	msgs, err := c.channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("[RABBITMQ] Started consuming from queue: %s", queueName)

	go func() {
		for msg := range msgs {
			if !json.Valid(msg.Body) {
				c.logger.Error("[RABBITMQ] Dropping malformed message from %s: %s", queueName, string(msg.Body))
				msg.Nack(false, false)
				continue
			}

			if err := handler(msg.RoutingKey, msg.Body); err != nil {
				c.logger.Error("[RABBITMQ] Handler failed for %s message from %s: %v", msg.RoutingKey, queueName, err)
				msg.Nack(false, true)
				continue
			}

			msg.Ack(false)
		}
		c.logger.Warn("[RABBITMQ] Delivery channel for %s closed", queueName)
	}()

	return nil
}

// GetQueueLength returns the number of messages waiting in queueName.
func (c *Client) GetQueueLength(queueName string) (int, error) {
	queue, err := c.channel.QueueInspect(queueName)
	if err != nil {
		return 0, err
	}
	return queue.Messages, nil
}
