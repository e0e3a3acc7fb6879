package queue

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/lead-ingestion/internal/entity"
	"github.com/xavierca1/lead-ingestion/internal/infra/http/middleware"
	"github.com/xavierca1/lead-ingestion/internal/usecase"
)

// LeadIngestor é o contrato do caso de uso consumido pelo worker.
type LeadIngestor interface {
	Execute(ctx context.Context, input usecase.IngestLeadInput) (*usecase.IngestLeadOutput, error)
}

type Worker struct {
	Channel  *amqp.Channel
	Ingestor LeadIngestor
	Logger   *zap.Logger
}

func NewWorker(ch *amqp.Channel, ingestor LeadIngestor, logger *zap.Logger) *Worker {
	return &Worker{
		Channel:  ch,
		Ingestor: ingestor,
		Logger:   logger,
	}
}

// deliveryAction traduz o desfecho da ingestão pro protocolo da fila.
type deliveryAction int

const (
	actionAck        deliveryAction = iota // processado (ou duplicata esperada)
	actionDeadLetter                       // improcessável: nack sem requeue → DLQ
	actionRequeue                          // falha transitória: nack com requeue
)

// decideAction: validação nunca é retentável; DuplicateLead conta como
// sucesso (redelivery at-least-once); quem perdeu a corrida do índice único
// também é duplicata efetiva; o resto assume banco indisponível e retenta.
func decideAction(err error) deliveryAction {
	if err == nil {
		return actionAck
	}

	var valErr *usecase.ValidationFailedError
	if errors.As(err, &valErr) {
		return actionDeadLetter
	}

	var dupErr *usecase.DuplicateLeadError
	if errors.As(err, &dupErr) {
		return actionAck
	}

	if errors.Is(err, entity.ErrDuplicateLead) {
		return actionAck
	}

	// Argumento inválido é bug de programação, não adianta retentar.
	if errors.Is(err, entity.ErrInvalidArgument) {
		return actionDeadLetter
	}

	return actionRequeue
}

func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",    // consumer
		false, // auto-ack (manual é mais seguro)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return err
	}

	w.Logger.Info("worker waiting for messages", zap.String("queue", queueName))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("delivery channel closed")
			}
			w.handleDelivery(ctx, d)
		}
	}
}

func (w *Worker) handleDelivery(ctx context.Context, d amqp.Delivery) {
	input, err := buildInput(d)
	if err != nil {
		// Corpo podre (JSON malformado). Rejeita sem requeue pra não travar a fila.
		w.Logger.Error("invalid message body", zap.Error(err))
		middleware.RecordIngestion("malformed")
		if nackErr := d.Nack(false, false); nackErr != nil {
			w.Logger.Error("failed to nack delivery", zap.Error(nackErr))
		}
		return
	}

	start := time.Now()
	_, execErr := w.Ingestor.Execute(ctx, input)
	middleware.ObserveIngestDuration(time.Since(start).Seconds())

	switch decideAction(execErr) {
	case actionAck:
		if execErr != nil {
			w.Logger.Info("duplicate delivery acknowledged",
				zap.String("correlation_id", input.CorrelationID))
			middleware.RecordIngestion("duplicate")
		} else {
			middleware.RecordIngestion("success")
		}
		if err := d.Ack(false); err != nil {
			w.Logger.Error("failed to ack delivery",
				zap.String("correlation_id", input.CorrelationID),
				zap.Error(err))
		}

	case actionDeadLetter:
		w.Logger.Warn("message routed to DLQ",
			zap.String("correlation_id", input.CorrelationID),
			zap.Error(execErr))
		middleware.RecordIngestion("dead_letter")
		if err := d.Nack(false, false); err != nil {
			w.Logger.Error("failed to nack delivery",
				zap.String("correlation_id", input.CorrelationID),
				zap.Error(err))
		}

	case actionRequeue:
		w.Logger.Error("transient failure, requeueing",
			zap.String("correlation_id", input.CorrelationID),
			zap.Error(execErr))
		middleware.RecordIngestion("requeued")
		if err := d.Nack(false, true); err != nil {
			w.Logger.Error("failed to nack delivery",
				zap.String("correlation_id", input.CorrelationID),
				zap.Error(err))
		}
	}
}

// buildInput monta o input do caso de uso a partir do corpo + atributos de
// transporte (EventType/CorrelationId/TenantId/Timestamp).
func buildInput(d amqp.Delivery) (usecase.IngestLeadInput, error) {
	var payload LeadCreatedPayload
	if err := json.Unmarshal(d.Body, &payload); err != nil {
		return usecase.IngestLeadInput{}, err
	}

	input := usecase.IngestLeadInput{
		TenantID:      payload.TenantID,
		CorrelationID: payload.CorrelationID,
		Email:         payload.Email,
		FirstName:     payload.FirstName,
		LastName:      payload.LastName,
		Phone:         payload.Phone,
		Company:       payload.Company,
		Source:        payload.Source,
	}
	if len(payload.Metadata) > 0 {
		input.Metadata = string(payload.Metadata)
	}
	if ts, ok := headerString(d.Headers, "Timestamp"); ok {
		input.MessageTimestamp = ts
	}

	return input, nil
}

func headerString(headers amqp.Table, key string) (string, bool) {
	if headers == nil {
		return "", false
	}
	v, ok := headers[key]
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}
