package mail

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

type whatsAppChannel interface {
	SendPaymentApproved(ctx context.Context, phone, name string, amount float64) error
}

type emailChannel interface {
	SendPaymentApproved(to, name, uid string, amount float64) error
}

// PaymentNotifier avisa o lead pelos canais disponíveis. WhatsApp é o canal principal;
// o e-mail é best effort e nunca derruba a notificação.
type PaymentNotifier struct {
	WhatsApp whatsAppChannel
	Email    emailChannel
	Log      *zap.SugaredLogger
}

func NewPaymentNotifier(wa whatsAppChannel, email emailChannel, log *zap.SugaredLogger) *PaymentNotifier {
	return &PaymentNotifier{WhatsApp: wa, Email: email, Log: log}
}

var ErrNoChannel = errors.New("lead sem telefone nem e-mail para notificar")

func (n *PaymentNotifier) NotifyPaymentApproved(ctx context.Context, p queue.PaymentApprovedPayload) error {
	sent := false

	if p.Phone != "" && n.WhatsApp != nil {
		if err := n.WhatsApp.SendPaymentApproved(ctx, p.Phone, p.Name, p.Amount); err != nil {
			return fmt.Errorf("whatsapp para %s: %w", p.UID, err)
		}
		sent = true
	}

	if p.Email != "" && n.Email != nil {
		if err := n.Email.SendPaymentApproved(p.Email, p.Name, p.UID, p.Amount); err != nil {
			n.Log.Warnw("falha ao enviar e-mail de pagamento aprovado", "uid", p.UID, "error", err)
		} else {
			sent = true
		}
	}

	if !sent {
		return ErrNoChannel
	}
	return nil
}
