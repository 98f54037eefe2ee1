package rmqtopology

import (
	"fmt"
	"net/http"

	"github.com/rabbitmq/amqp091-go"

	"user-directory/config"
)

// RoutingKeys are the HTTP verbs user events are published under.
var RoutingKeys = []string{
	http.MethodPost,
	http.MethodPut,
	http.MethodDelete,
}

// Declarer is the part of *amqp091.Channel needed to set up the user event
// exchange and audit queue.
type Declarer interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
}

// Declare creates the durable exchange and audit queue from cfg and binds
// the queue to every routing key. It is idempotent on the broker side, so
// publisher and consumer may both call it.
func Declare(ch Declarer, cfg config.MQ) error {
	if err := ch.ExchangeDeclare(cfg.Exchange, cfg.ExchangeType, true, false, false, false, nil); err != nil {
		return fmt.Errorf("exchange declare %s: %w", cfg.Exchange, err)
	}

	q, err := ch.QueueDeclare(cfg.QueueName, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue declare %s: %w", cfg.QueueName, err)
	}

	for _, rk := range RoutingKeys {
		if err = ch.QueueBind(q.Name, rk, cfg.Exchange, false, nil); err != nil {
			return fmt.Errorf("queue bind %s: %w", rk, err)
		}
	}

	return nil
}
