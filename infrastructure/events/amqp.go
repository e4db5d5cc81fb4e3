package events

import (
	"context"
	"time"

	"github.com/pkg/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/chai-ledger/internal/config"
	"github.com/vfg2006/chai-ledger/internal/domain"
	"github.com/vfg2006/chai-ledger/pkg/utils"
)

// Valores monetários do evento vão como números
var json = utils.JSON

const publishTimeout = 5 * time.Second

type amqpPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	queue    string
}

// NewPublisher conecta no broker quando AMQP_URL está presente, senão devolve um publicador vazio
func NewPublisher(cfg config.AMQP) (Publisher, error) {
	if cfg.URL == "" {
		logrus.Info("AMQP_URL não configurado, eventos desativados")
		return NewNoopPublisher(), nil
	}

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao conectar no broker")
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "erro ao abrir canal")
	}

	p := &amqpPublisher{
		conn:     conn,
		channel:  channel,
		exchange: cfg.Exchange,
		queue:    cfg.Queue,
	}

	if err := p.setup(); err != nil {
		p.Close()
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"exchange": cfg.Exchange,
		"queue":    cfg.Queue,
	}).Info("Publicador de eventos conectado")

	return p, nil
}

func (p *amqpPublisher) setup() error {
	err := p.channel.ExchangeDeclare(
		p.exchange,
		amqp.ExchangeDirect,
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "erro ao declarar exchange")
	}

	_, err = p.channel.QueueDeclare(
		p.queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "erro ao declarar fila")
	}

	// A routing key é o nome da fila
	if err := p.channel.QueueBind(p.queue, p.queue, p.exchange, false, nil); err != nil {
		return errors.Wrap(err, "erro ao vincular fila")
	}

	return nil
}

func (p *amqpPublisher) Publish(ctx context.Context, event domain.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "erro ao serializar evento")
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,
		p.queue,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    event.OccurredAt,
			Type:         string(event.Type),
			Body:         body,
		},
	)
	if err != nil {
		return errors.Wrapf(err, "erro ao publicar %s", event.Type)
	}

	logrus.WithField("event", event.Type).Debug("Evento publicado")
	return nil
}

func (p *amqpPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
