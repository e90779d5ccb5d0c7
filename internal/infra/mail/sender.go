package mail

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"gopkg.in/gomail.v2"
)

//go:embed templates/*.html
var templatesFS embed.FS

var paymentApprovedTmpl = template.Must(template.ParseFS(templatesFS, "templates/payment_approved.html"))

// Dialer é o subconjunto de *gomail.Dialer usado no envio.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

func NewEmailSender(host string, port int, user, password, from string) *EmailSender {
	return &EmailSender{
		Host:     host,
		Port:     port,
		User:     user,
		Password: password,
		From:     from,
	}
}

func (s *EmailSender) SendPaymentApproved(to, name, uid string, amount float64) error {
	return s.send(gomail.NewDialer(s.Host, s.Port, s.User, s.Password), to, name, uid, amount)
}

func (s *EmailSender) send(d Dialer, to, name, uid string, amount float64) error {
	m, err := s.buildPaymentApproved(to, name, uid, amount)
	if err != nil {
		return err
	}
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("erro ao enviar email SMTP: %w", err)
	}
	return nil
}

func (s *EmailSender) buildPaymentApproved(to, name, uid string, amount float64) (*gomail.Message, error) {
	body, err := renderPaymentApproved(PaymentApprovedEmailData{
		Name:   name,
		Amount: FormatBRL(amount),
		UID:    uid,
	})
	if err != nil {
		return nil, err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", fmt.Sprintf("Pagamento confirmado, %s! Seu resultado está liberado", name))
	m.SetBody("text/html", body)
	return m, nil
}

func renderPaymentApproved(data PaymentApprovedEmailData) (string, error) {
	var body bytes.Buffer
	if err := paymentApprovedTmpl.Execute(&body, data); err != nil {
		return "", fmt.Errorf("erro ao processar template: %w", err)
	}
	return body.String(), nil
}

// FormatBRL formata o valor no padrão "R$ 1.234,56".
func FormatBRL(amount float64) string {
	cents := int64(amount*100 + 0.5)
	if amount < 0 {
		cents = int64(amount*100 - 0.5)
	}
	neg := cents < 0
	if neg {
		cents = -cents
	}

	intPart := fmt.Sprintf("%d", cents/100)
	var grouped []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			grouped = append(grouped, '.')
		}
		grouped = append(grouped, c)
	}

	s := fmt.Sprintf("R$ %s,%02d", grouped, cents%100)
	if neg {
		return "-" + s
	}
	return s
}
