package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"pos-storefront/models"
)

// DefaultHomeAssistantURL is the Home Assistant core API as seen from a supervisor add-on
const DefaultHomeAssistantURL = "http://supervisor/core/api"

// SaleQueue is the queue sale events are published to
const SaleQueue = "pos.sale"

// SalePublisher announces recorded sales
type SalePublisher interface {
	PublishSale(ctx context.Context, event models.SaleEvent) error
}

// HomeAssistantPublisher fires a Home Assistant event for each sale
type HomeAssistantPublisher struct {
	baseURL   string
	eventName string
	token     string
	http      *http.Client
}

// NewHomeAssistantPublisher creates a publisher using SUPERVISOR_TOKEN from the environment
func NewHomeAssistantPublisher(baseURL, eventName string) *HomeAssistantPublisher {
	return &HomeAssistantPublisher{
		baseURL:   baseURL,
		eventName: eventName,
		token:     os.Getenv("SUPERVISOR_TOKEN"),
		http:      &http.Client{Timeout: 5 * time.Second},
	}
}

// Ensure HomeAssistantPublisher implements SalePublisher
var _ SalePublisher = (*HomeAssistantPublisher)(nil)

// PublishSale posts the event; without a token it is skipped
func (p *HomeAssistantPublisher) PublishSale(ctx context.Context, event models.SaleEvent) error {
	if p.token == "" {
		log.Printf("No SUPERVISOR_TOKEN. Skipping HA event.")
		return nil
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal sale event: %w", err)
	}

	url := fmt.Sprintf("%s/events/%s", p.baseURL, p.eventName)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build HA event request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.http.Do(req)
	if err != nil {
		return fmt.Errorf("HA event %s: %w", p.eventName, err)
	}
	defer resp.Body.Close()

	log.Printf("HA event fired %s: %d", p.eventName, resp.StatusCode)
	return nil
}

// AMQPPublisher publishes sale events as JSON messages on a durable queue
type AMQPPublisher struct {
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewAMQPPublisher dials url and declares the sale queue
func NewAMQPPublisher(url string) (*AMQPPublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial amqp: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if _, err := ch.QueueDeclare(SaleQueue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", SaleQueue, err)
	}

	return &AMQPPublisher{conn: conn, ch: ch}, nil
}

// Ensure AMQPPublisher implements SalePublisher
var _ SalePublisher = (*AMQPPublisher)(nil)

// PublishSale publishes the event on the default exchange
func (p *AMQPPublisher) PublishSale(ctx context.Context, event models.SaleEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal sale event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	return p.ch.PublishWithContext(
		pubCtx,
		"",        // default exchange
		SaleQueue, // queue name as routing key
		false,
		false,
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         body,
		},
	)
}

// Close closes the channel and the connection
func (p *AMQPPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.conn.Close()
		return err
	}
	return p.conn.Close()
}

// MultiPublisher fans a sale event out to every publisher.
// Failures are logged and never stop the remaining publishers.
type MultiPublisher []SalePublisher

// PublishSale publishes to each publisher and always returns nil
func (m MultiPublisher) PublishSale(ctx context.Context, event models.SaleEvent) error {
	for _, p := range m {
		if err := p.PublishSale(ctx, event); err != nil {
			log.Printf("⚠️  Sale event error: %v", err)
		}
	}
	return nil
}
