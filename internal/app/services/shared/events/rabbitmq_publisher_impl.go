package events

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"sync"

	"github.com/goccy/go-json"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type rabbitMQPublisher struct {
	ch        *amqp.Channel
	queueName string
	log       *zap.Logger
	confirms  chan amqp.Confirmation
	mu        sync.Mutex
}

// NewRabbitMQPublisher declares the durable events queue and enables
// publisher confirms on a dedicated channel.
func NewRabbitMQPublisher(conn *amqp.Connection, queueName string, log *zap.Logger) (contracts.EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	_, err = ch.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // autoDelete
		false,     // exclusive
		false,     // noWait
		nil,       // args
	)
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclareQueue(err, queueName)
	}

	if err := ch.Confirm(false); err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	return &rabbitMQPublisher{
		ch:        ch,
		queueName: queueName,
		log:       log,
		confirms:  ch.NotifyPublish(make(chan amqp.Confirmation, 1)),
	}, nil
}

func (p *rabbitMQPublisher) Publish(ctx context.Context, event *models.DomainEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("rabbitMQPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	msg := amqp.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Type:         event.Type,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Body:         body,
		DeliveryMode: amqp.Persistent,
	}

	if err := p.ch.PublishWithContext(ctx, "", p.queueName, false, false, msg); err != nil {
		return exceptions.ErrRabbitMQPublishMessage(err, p.queueName)
	}

	select {
	case confirmed := <-p.confirms:
		if !confirmed.Ack {
			return exceptions.ErrRabbitMQPublishMessage(fmt.Errorf("message not confirmed"), p.queueName)
		}
	case <-ctx.Done():
		return exceptions.ErrRabbitMQPublishMessage(ctx.Err(), p.queueName)
	}

	p.log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingQueueKey, p.queueName),
	)
	return nil
}
