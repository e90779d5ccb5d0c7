package usecase

import (
	"context"

	"github.com/xavierca1/ligue-leads/internal/infra/integration/mercadopago"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

// SheetReader lê um intervalo da planilha; a linha 0 é o cabeçalho.
type SheetReader interface {
	ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error)
}

// LeadSyncer é o contrato do Bulk Sync visto pela conciliação.
type LeadSyncer interface {
	SyncAll(ctx context.Context) (SyncReport, error)
}

// PaymentReconciler é o contrato da conciliação visto pelo processamento de pagamentos.
type PaymentReconciler interface {
	MarkPaid(ctx context.Context, uid string, amount float64) bool
}

type PaymentGateway interface {
	CreatePayment(ctx context.Context, input mercadopago.CreatePaymentInput) (*mercadopago.Payment, error)
	GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error)
}

type QueueProducerInterface interface {
	PublishPaymentApproved(ctx context.Context, payload queue.PaymentApprovedPayload) error
}

type SyncReport struct {
	Completed bool `json:"completed"`
	Rows      int  `json:"rows"`
	Upserted  int  `json:"upserted"`
	Failed    int  `json:"failed"`
	Skipped   int  `json:"skipped"`
}

type CreatePaymentInput struct {
	UID           string  `json:"uid"`
	Amount        float64 `json:"amount"`
	Description   string  `json:"description"`
	PaymentMethod string  `json:"payment_method"`
	Token         string  `json:"token,omitempty"`
	Installments  int     `json:"installments,omitempty"`
	PayerEmail    string  `json:"payer_email"`
	PayerName     string  `json:"payer_name"`
	PayerPhone    string  `json:"payer_phone,omitempty"`
}

type CreatePaymentOutput struct {
	ID             string  `json:"id"`
	Status         string  `json:"status"`
	UID            string  `json:"uid"`
	Amount         float64 `json:"amount"`
	PixCode        string  `json:"pix_code,omitempty"`
	PixQRCode      string  `json:"pix_qr_code_base64,omitempty"`
	TicketURL      string  `json:"ticket_url,omitempty"`
	IdempotencyKey string  `json:"idempotency_key"`
}

type ProcessPaymentInput struct {
	UID       string  `json:"uid"`
	Amount    float64 `json:"transaction_amount"`
	Phone     string  `json:"phone,omitempty"`
	PaymentID string  `json:"payment_id,omitempty"`
	Origin    string  `json:"origin,omitempty"`
}
