package mercadopago

import (
	"fmt"
	"time"
)

const StatusApproved = "approved"

type CreatePaymentInput struct {
	IdempotencyKey    string
	TransactionAmount float64
	Description       string
	PaymentMethodID   string // pix, bolbradesco ou a bandeira do cartão
	Token             string // só para cartão
	Installments      int
	ExternalReference string // uid da submissão
	NotificationURL   string
	PayerEmail        string
	PayerFirstName    string
	PayerLastName     string
	Metadata          map[string]string
}

// Payment é a visão reduzida de um pagamento do Mercado Pago.
type Payment struct {
	ID                string         `json:"id"`
	Status            string         `json:"status"`
	StatusDetail      string         `json:"status_detail"`
	TransactionAmount float64        `json:"transaction_amount"`
	ExternalReference string         `json:"external_reference"`
	PaymentMethodID   string         `json:"payment_method_id"`
	DateApproved      *time.Time     `json:"date_approved,omitempty"`
	PayerEmail        string         `json:"payer_email,omitempty"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	transactionData   transactionData
}

func (p *Payment) IsApproved() bool {
	return p.Status == StatusApproved
}

func (p *Payment) PixCode() string {
	return p.transactionData.QRCode
}

func (p *Payment) PixQRCodeBase64() string {
	return p.transactionData.QRCodeBase64
}

func (p *Payment) TicketURL() string {
	return p.transactionData.TicketURL
}

// MetadataString lê uma chave de metadata como string (o Mercado Pago devolve tipos JSON genéricos).
func (p *Payment) MetadataString(key string) string {
	v, ok := p.Metadata[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

type APIError struct {
	StatusCode int    `json:"status"`
	ErrorCode  string `json:"error"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("mercado pago rejeitou (status %d): %s", e.StatusCode, e.Message)
}

// --- payloads internos ---

type createPaymentRequest struct {
	TransactionAmount float64           `json:"transaction_amount"`
	Description       string            `json:"description"`
	PaymentMethodID   string            `json:"payment_method_id"`
	Token             string            `json:"token,omitempty"`
	Installments      int               `json:"installments,omitempty"`
	ExternalReference string            `json:"external_reference"`
	NotificationURL   string            `json:"notification_url,omitempty"`
	Payer             payerRequest      `json:"payer"`
	Metadata          map[string]string `json:"metadata,omitempty"`
}

type payerRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name,omitempty"`
	LastName  string `json:"last_name,omitempty"`
}

type paymentResponse struct {
	ID                int64          `json:"id"`
	Status            string         `json:"status"`
	StatusDetail      string         `json:"status_detail"`
	TransactionAmount float64        `json:"transaction_amount"`
	ExternalReference string         `json:"external_reference"`
	PaymentMethodID   string         `json:"payment_method_id"`
	DateApproved      *time.Time     `json:"date_approved"`
	Metadata          map[string]any `json:"metadata"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
	PointOfInteraction struct {
		TransactionData transactionData `json:"transaction_data"`
	} `json:"point_of_interaction"`
}

type transactionData struct {
	QRCode       string `json:"qr_code"`
	QRCodeBase64 string `json:"qr_code_base64"`
	TicketURL    string `json:"ticket_url"`
}
