package mail

import (
	"context"
	"regexp"

	"github.com/xavierca1/ligue-leads/internal/infra/integration/whatsapp"
)

type WhatsAppClient interface {
	SendMessage(ctx context.Context, input whatsapp.SendMessageInput) (string, error)
}

type WhatsAppSender struct {
	client       WhatsAppClient
	templateName string
}

func NewWhatsAppSender(client WhatsAppClient, templateName string) *WhatsAppSender {
	return &WhatsAppSender{
		client:       client,
		templateName: templateName,
	}
}

var nonDigit = regexp.MustCompile(`\D`)

// NormalizePhone deixa só dígitos e acrescenta o DDI 55 em números nacionais.
func NormalizePhone(phone string) string {
	digits := nonDigit.ReplaceAllString(phone, "")
	if len(digits) == 10 || len(digits) == 11 {
		return "55" + digits
	}
	return digits
}

func (s *WhatsAppSender) SendPaymentApproved(ctx context.Context, phone, name string, amount float64) error {
	_, err := s.client.SendMessage(ctx, whatsapp.SendMessageInput{
		PhoneNumber:  NormalizePhone(phone),
		TemplateName: s.templateName,
		Parameters:   []string{name, FormatBRL(amount)},
	})
	return err
}
