package queue

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
)

// Notifier envia o aviso de pagamento aprovado por algum canal (WhatsApp, e-mail).
type Notifier interface {
	NotifyPaymentApproved(ctx context.Context, payload PaymentApprovedPayload) error
}

// Acknowledger é o subconjunto de amqp.Delivery usado para confirmar mensagens.
type Acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

type Worker struct {
	Channel  *amqp.Channel
	Notifier Notifier
	Log      *zap.SugaredLogger
}

func NewWorker(ch *amqp.Channel, notifier Notifier, log *zap.SugaredLogger) *Worker {
	return &Worker{
		Channel:  ch,
		Notifier: notifier,
		Log:      log,
	}
}

// Start consome a fila até o contexto ser cancelado ou o canal fechar.
func (w *Worker) Start(ctx context.Context, queueName string) error {
	msgs, err := w.Channel.Consume(
		queueName,
		"",
		false, // ack manual
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("falha ao registrar consumidor RabbitMQ: %w", err)
	}

	w.Log.Infow("worker aguardando mensagens", "queue", queueName)

	for {
		select {
		case <-ctx.Done():
			w.Log.Infow("worker encerrado", "queue", queueName)
			return nil
		case d, ok := <-msgs:
			if !ok {
				return fmt.Errorf("canal de entrega da fila %s fechado", queueName)
			}
			w.HandleDelivery(ctx, d.Body, d)
		}
	}
}

// HandleDelivery processa uma mensagem: uma tentativa, Ack no sucesso, Nack sem requeue na falha.
func (w *Worker) HandleDelivery(ctx context.Context, body []byte, ack Acknowledger) {
	var payload PaymentApprovedPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		w.Log.Errorw("mensagem inválida descartada", "error", err)
		middleware.RecordNotification("invalid")
		ack.Nack(false, false)
		return
	}

	if err := w.Notifier.NotifyPaymentApproved(ctx, payload); err != nil {
		w.Log.Errorw("falha ao notificar pagamento aprovado", "uid", payload.UID, "error", err)
		middleware.RecordNotification("failed")
		ack.Nack(false, false)
		return
	}

	w.Log.Infow("notificação de pagamento enviada", "uid", payload.UID, "origin", payload.Origin)
	middleware.RecordNotification("sent")
	ack.Ack(false)
}
