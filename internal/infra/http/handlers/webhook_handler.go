package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/mercadopago"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

const OriginWebhookMercadoPago = "WEBHOOK_MERCADOPAGO"

type PaymentFetcher interface {
	GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error)
}

type WebhookHandler struct {
	Gateway          PaymentFetcher
	ProcessPaymentUC PaymentProcessor
	WebhookSecret    string
	Log              *zap.SugaredLogger
}

func NewWebhookHandler(gateway PaymentFetcher, process PaymentProcessor, secret string, log *zap.SugaredLogger) *WebhookHandler {
	return &WebhookHandler{
		Gateway:          gateway,
		ProcessPaymentUC: process,
		WebhookSecret:    secret,
		Log:              log,
	}
}

type notification struct {
	Action string `json:"action"`
	Type   string `json:"type"`
	Data   struct {
		ID string `json:"id"`
	} `json:"data"`
}

// Handle recebe a notificação do Mercado Pago, busca o pagamento e concilia se estiver aprovado.
// Eventos que não são de pagamento aprovado recebem 200 para o gateway não reenviar.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var event notification
	if err := json.NewDecoder(r.Body).Decode(&event); err != nil {
		http.Error(w, "Bad JSON", http.StatusBadRequest)
		return
	}

	dataID := r.URL.Query().Get("data.id")
	if dataID == "" {
		dataID = event.Data.ID
	}
	eventType := event.Type
	if eventType == "" {
		eventType = r.URL.Query().Get("type")
	}

	if h.WebhookSecret != "" {
		err := VerifySignature(h.WebhookSecret, r.Header.Get("x-signature"), dataID, r.Header.Get("x-request-id"))
		if err != nil {
			h.Log.Warnw("webhook rejeitado", "data_id", dataID, "error", err)
			http.Error(w, err.Error(), http.StatusUnauthorized)
			return
		}
	}

	if eventType != "payment" || dataID == "" {
		w.WriteHeader(http.StatusOK)
		return
	}

	payment, err := h.Gateway.GetPayment(r.Context(), dataID)
	if err != nil {
		middleware.RecordIntegrationError("mercadopago")
		h.Log.Errorw("erro ao buscar pagamento notificado", "payment_id", dataID, "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	if !payment.IsApproved() {
		h.Log.Infow("pagamento notificado ainda não aprovado", "payment_id", payment.ID, "status", payment.Status)
		w.WriteHeader(http.StatusOK)
		return
	}

	uid := payment.ExternalReference
	if uid == "" {
		uid = payment.MetadataString("uid")
	}

	err = h.ProcessPaymentUC.Execute(r.Context(), usecase.ProcessPaymentInput{
		UID:       uid,
		Amount:    payment.TransactionAmount,
		Phone:     payment.MetadataString("phone"),
		PaymentID: payment.ID,
		Origin:    OriginWebhookMercadoPago,
	})
	middleware.RecordPaymentReconciled(OriginWebhookMercadoPago, err == nil)
	if err != nil {
		h.Log.Errorw("pagamento aprovado não conciliado", "payment_id", payment.ID, "uid", uid, "error", err)
	}

	w.WriteHeader(http.StatusOK)
}
