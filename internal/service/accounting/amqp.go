package accounting

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/metrics"
	"github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage"
	storageErrors "github.com/danilovkiri/dk_go_paste_shortlinks/internal/storage/errors"
)

// ClickEvent is the message published for every resolved short link.
type ClickEvent struct {
	ID        string    `json:"id"`
	PasteID   string    `json:"pasteId"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher is the subset of *amqp.Channel used for publishing.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Check interface implementation explicitly
var (
	_ ClickSink = (*AMQPSink)(nil)
	_ Publisher = (*amqp.Channel)(nil)
)

// AMQPSink publishes click events to a durable queue.
type AMQPSink struct {
	Publisher Publisher
	Queue     string
	Timeout   time.Duration
	mu        sync.Mutex
	closed    bool
	wg        sync.WaitGroup
	closers   []func() error
	log       *zap.Logger
	metrics   *metrics.Metrics
}

// NewAMQPSink initializes an AMQPSink object over an existing publisher.
func NewAMQPSink(pub Publisher, queue string, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *AMQPSink {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &AMQPSink{
		Publisher: pub,
		Queue:     queue,
		Timeout:   timeout,
		log:       log,
		metrics:   m,
	}
}

// DialAMQPSink connects to the broker, declares the queue and returns a sink owning the connection.
func DialAMQPSink(url, queue string, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) (*AMQPSink, error) {
	conn, ch, err := DialQueue(url, queue)
	if err != nil {
		return nil, err
	}
	sink := NewAMQPSink(ch, queue, timeout, log, m)
	sink.closers = []func() error{ch.Close, conn.Close}
	return sink, nil
}

// DialQueue opens a connection and a channel and declares a durable queue.
func DialQueue(url, queue string) (*amqp.Connection, *amqp.Channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, err
	}
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, err
	}
	return conn, ch, nil
}

// RecordClick publishes a click event in the background.
// Clicks recorded after Close are dropped.
func (s *AMQPSink) RecordClick(pasteID string) {
	event := ClickEvent{
		ID:        uuid.NewString(),
		PasteID:   pasteID,
		Timestamp: time.Now().UTC(),
	}
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		s.log.Warn("click dropped, sink is closed", zap.String("pasteId", pasteID))
		s.metrics.ClickFailed("amqp")
		return
	}
	s.wg.Add(1)
	s.mu.Unlock()
	go func() {
		defer s.wg.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.Timeout)
		defer cancel()
		if err := s.publish(ctx, event); err != nil {
			s.log.Warn("click event publishing failed", zap.String("pasteId", pasteID), zap.String("eventId", event.ID), zap.Error(err))
			s.metrics.ClickFailed("amqp")
		}
	}()
}

func (s *AMQPSink) publish(ctx context.Context, event ClickEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return s.Publisher.PublishWithContext(ctx, "", s.Queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.Timestamp,
		Body:         body,
	})
}

// Close stops accepting clicks, waits for pending publishes and closes the owned channel and connection.
// Only the first call closes them.
func (s *AMQPSink) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()
	s.wg.Wait()
	var first error
	for _, c := range s.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Consumer applies click events from the queue to the store.
type Consumer struct {
	Counter storage.ClickCounter
	Workers int
	Timeout time.Duration
	log     *zap.Logger
	metrics *metrics.Metrics
}

// NewConsumer initializes a Consumer object.
func NewConsumer(c storage.ClickCounter, workers int, timeout time.Duration, log *zap.Logger, m *metrics.Metrics) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Consumer{
		Counter: c,
		Workers: workers,
		Timeout: timeout,
		log:     log,
		metrics: m,
	}
}

// Run drains deliveries with the configured number of workers until ctx is done or the channel closes.
func (c *Consumer) Run(ctx context.Context, deliveries <-chan amqp.Delivery) {
	var wg sync.WaitGroup
	for i := 0; i < c.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case d, ok := <-deliveries:
					if !ok {
						return
					}
					c.Handle(ctx, d)
				}
			}
		}()
	}
	wg.Wait()
}

// Handle applies one delivery and settles it.
// Undecodable events and unknown pastes are rejected, store failures are requeued.
func (c *Consumer) Handle(ctx context.Context, d amqp.Delivery) {
	var event ClickEvent
	if err := json.Unmarshal(d.Body, &event); err != nil || event.PasteID == "" {
		c.log.Error("click event rejected", zap.ByteString("body", d.Body), zap.Error(err))
		c.settle(d.Reject(false))
		return
	}
	opCtx, cancel := context.WithTimeout(ctx, c.Timeout)
	defer cancel()
	err := c.Counter.IncrementClicks(opCtx, event.PasteID)
	if err == nil {
		c.settle(d.Ack(false))
		return
	}
	c.metrics.ClickFailed("consumer")
	var notFound *storageErrors.NotFoundError
	if errors.As(err, &notFound) {
		c.log.Warn("click event for unknown paste", zap.String("pasteId", event.PasteID), zap.String("eventId", event.ID))
		c.settle(d.Reject(false))
		return
	}
	c.log.Warn("click increment failed, requeueing", zap.String("pasteId", event.PasteID), zap.String("eventId", event.ID), zap.Error(err))
	c.settle(d.Nack(false, true))
}

func (c *Consumer) settle(err error) {
	if err != nil {
		c.log.Error("delivery settlement failed", zap.Error(err))
	}
}
