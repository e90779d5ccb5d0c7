package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/http/middleware"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/mercadopago"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type PaymentCreator interface {
	Execute(ctx context.Context, input usecase.CreatePaymentInput) (*usecase.CreatePaymentOutput, error)
	GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error)
}

type PaymentProcessor interface {
	Execute(ctx context.Context, input usecase.ProcessPaymentInput) error
}

type PaymentHandler struct {
	CreatePaymentUC  PaymentCreator
	ProcessPaymentUC PaymentProcessor
	Log              *zap.SugaredLogger
}

func NewPaymentHandler(create PaymentCreator, process PaymentProcessor, log *zap.SugaredLogger) *PaymentHandler {
	return &PaymentHandler{
		CreatePaymentUC:  create,
		ProcessPaymentUC: process,
		Log:              log,
	}
}

type PaymentStatusResponse struct {
	ID                string  `json:"id"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"status_detail,omitempty"`
	UID               string  `json:"uid,omitempty"`
	TransactionAmount float64 `json:"transaction_amount"`
	PaymentMethodID   string  `json:"payment_method_id,omitempty"`
}

type ApprovedResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HandleCreate: POST /payments
func (h *PaymentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input usecase.CreatePaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "JSON inválido: " + err.Error(), Code: usecase.CodeValidation})
		return
	}

	output, err := h.CreatePaymentUC.Execute(r.Context(), input)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("mercadopago")
			h.Log.Errorw("erro ao criar pagamento", "uid", input.UID, "error", err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, output)
}

// HandleGet: GET /payments/{id}
func (h *PaymentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payment, err := h.CreatePaymentUC.GetPayment(r.Context(), id)
	if err != nil {
		if usecase.IsTechnicalError(err) {
			middleware.RecordIntegrationError("mercadopago")
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, PaymentStatusResponse{
		ID:                payment.ID,
		Status:            payment.Status,
		StatusDetail:      payment.StatusDetail,
		UID:               payment.ExternalReference,
		TransactionAmount: payment.TransactionAmount,
		PaymentMethodID:   payment.PaymentMethodID,
	})
}

// HandleApproved: POST /payments/approved. Sempre responde 200; o corpo diz se a conciliação deu certo.
func (h *PaymentHandler) HandleApproved(w http.ResponseWriter, r *http.Request) {
	var input usecase.ProcessPaymentInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Log.Warnw("payload de aprovação inválido", "error", err)
		writeJSON(w, http.StatusOK, ApprovedResponse{Success: false, Message: "JSON inválido"})
		return
	}
	if input.Origin == "" {
		input.Origin = usecase.OriginManual
	}

	err := h.ProcessPaymentUC.Execute(r.Context(), input)
	middleware.RecordPaymentReconciled(input.Origin, err == nil)
	if err != nil {
		h.Log.Warnw("aprovação não conciliada", "uid", input.UID, "code", usecase.ErrorCode(err), "error", err)
		writeJSON(w, http.StatusOK, ApprovedResponse{Success: false, Message: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, ApprovedResponse{Success: true})
}
