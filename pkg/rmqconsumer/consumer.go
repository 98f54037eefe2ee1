package rmqconsumer

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"user-directory/config"
	"user-directory/pkg/rmqtopology"
)

// unacked deliveries allowed per pool worker
const preFetchCount = 1

const releaseTimeout = 5 * time.Second

// Consumer reads user events from the audit queue and records one
// "Action=<action> EventBody=<json>" entry per event.
type Consumer struct {
	cfg        config.MQ
	log        *zap.Logger
	conn       *amqp091.Connection
	chConsume  *amqp091.Channel
	chDelivery <-chan amqp091.Delivery
	pool       *ants.Pool

	outMu sync.Mutex
	out   io.Writer
}

// New builds a consumer. conn may be shared with the publisher; when it is
// nil or closed Connect dials a dedicated one. A nil out sends audit entries
// to the logger instead.
func New(cfg config.MQ, logger *zap.Logger, conn *amqp091.Connection, out io.Writer) *Consumer {
	return &Consumer{
		cfg:  cfg,
		log:  logger,
		conn: conn,
		out:  out,
	}
}

func (c *Consumer) Connect(dsn string) error {
	if c.conn == nil || c.conn.IsClosed() {
		conn, err := amqp091.Dial(dsn)
		if err != nil {
			return fmt.Errorf("amqp dial: %w", err)
		}
		c.conn = conn
	}

	ch, err := c.conn.Channel()
	if err != nil {
		return fmt.Errorf("amqp channel: %w", err)
	}
	c.chConsume = ch

	c.log.Info("rabbitmq consumer connected successfully")

	return nil
}

func (c *Consumer) Init() error {
	if err := rmqtopology.Declare(c.chConsume, c.cfg); err != nil {
		return err
	}

	workers := c.cfg.Workers
	if workers < 1 {
		workers = 1
	}
	if err := c.chConsume.Qos(preFetchCount*workers, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return fmt.Errorf("worker pool: %w", err)
	}
	c.pool = pool

	// manual acks, so Qos bounds the deliveries in flight
	c.chDelivery, err = c.chConsume.Consume(
		c.cfg.QueueName,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	return nil
}

func (c *Consumer) DeliveryWorker(ctx context.Context) {
	c.log.Info("starting delivery worker")

	defer func() {
		c.log.Info("delivery worker gracefully stopped")
	}()

	for {
		select {
		case msg, ok := <-c.chDelivery:
			if !ok {
				return
			}
			c.dispatch(msg)
		case <-ctx.Done():
			if c.chConsume != nil {
				_ = c.chConsume.Close()
			}
			return
		}
	}
}

// dispatch hands msg to the worker pool, or handles it inline when no pool
// is running.
func (c *Consumer) dispatch(msg amqp091.Delivery) {
	if c.pool == nil {
		c.handle(msg)
		return
	}
	if err := c.pool.Submit(func() { c.handle(msg) }); err != nil {
		c.log.Error("mq submit delivery error", zap.Error(err))
		if err = msg.Nack(false, true); err != nil {
			c.log.Error("mq nack error", zap.Error(err))
		}
	}
}

// handle acks msg once it is recorded. A failed write is rejected without
// requeue so a broken sink cannot loop the same event.
func (c *Consumer) handle(msg amqp091.Delivery) {
	if err := c.delivery(msg); err != nil {
		// alert
		c.log.Error("mq read message error", zap.Error(err))
		if err = msg.Nack(false, false); err != nil {
			c.log.Error("mq nack error", zap.Error(err))
		}
		return
	}
	if err := msg.Ack(false); err != nil {
		c.log.Error("mq ack error", zap.Error(err))
	}
}

func (c *Consumer) delivery(msg amqp091.Delivery) error {
	var action string
	switch msg.RoutingKey {
	case http.MethodPost:
		action = "UserCreated"
	case http.MethodPut:
		action = "UserUpdated"
	case http.MethodDelete:
		action = "UserDeleted"
	}

	if c.out == nil {
		c.log.Info("Action="+action,
			zap.String("action", action),
			zap.ByteString("event_body", msg.Body),
		)
		return nil
	}

	c.outMu.Lock()
	defer c.outMu.Unlock()
	_, err := fmt.Fprintf(c.out,
		"Action=%s EventBody=%s\n",
		action,
		string(msg.Body),
	)

	return err
}

// Close waits up to releaseTimeout for in-flight deliveries and releases the
// worker pool.
func (c *Consumer) Close() {
	if c.pool == nil {
		return
	}
	if err := c.pool.ReleaseTimeout(releaseTimeout); err != nil {
		c.log.Warn("worker pool release", zap.Error(err))
	}
}
