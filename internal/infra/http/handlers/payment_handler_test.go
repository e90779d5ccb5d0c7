package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/integration/mercadopago"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

func newPaymentHandler(create *MockPaymentCreator, process *MockPaymentProcessor) *PaymentHandler {
	return NewPaymentHandler(create, process, zap.NewNop().Sugar())
}

func TestHandleCreatePayment(t *testing.T) {
	create := new(MockPaymentCreator)
	create.On("Execute", mock.Anything, mock.MatchedBy(func(in usecase.CreatePaymentInput) bool {
		return in.UID == "sub-1" && in.PaymentMethod == "pix"
	})).Return(&usecase.CreatePaymentOutput{ID: "987", Status: "pending", UID: "sub-1", PixCode: "000201"}, nil)

	body := `{"uid":"sub-1","amount":29.9,"payment_method":"pix","payer_email":"ana@example.com","payer_name":"Ana"}`
	req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(body))
	w := httptest.NewRecorder()

	newPaymentHandler(create, new(MockPaymentProcessor)).HandleCreate(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	var out usecase.CreatePaymentOutput
	require.NoError(t, json.NewDecoder(w.Body).Decode(&out))
	assert.Equal(t, "987", out.ID)
	assert.Equal(t, "000201", out.PixCode)
}

func TestHandleCreatePaymentErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "json inválido",
			body:       `{"uid":`,
			wantStatus: http.StatusBadRequest,
			wantCode:   usecase.CodeValidation,
		},
		{
			name:       "validação",
			body:       `{}`,
			err:        &usecase.DomainError{Code: usecase.CodeValidation, Message: "validation failed: uid: is required"},
			wantStatus: http.StatusBadRequest,
			wantCode:   usecase.CodeValidation,
		},
		{
			name:       "gateway fora",
			body:       `{"uid":"sub-1"}`,
			err:        &usecase.TechnicalError{Code: usecase.CodeGatewayFailed, Message: "gateway recusou o pagamento", Err: errors.New("503")},
			wantStatus: http.StatusBadGateway,
			wantCode:   usecase.CodeGatewayFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			create := new(MockPaymentCreator)
			if tt.err != nil {
				create.On("Execute", mock.Anything, mock.Anything).Return(nil, tt.err)
			}

			req := httptest.NewRequest(http.MethodPost, "/payments", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			newPaymentHandler(create, new(MockPaymentProcessor)).HandleCreate(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantCode, resp.Code)
		})
	}
}

func TestHandleGetPayment(t *testing.T) {
	create := new(MockPaymentCreator)
	create.On("GetPayment", mock.Anything, "42").Return(&mercadopago.Payment{
		ID: "42", Status: "approved", ExternalReference: "sub-7", TransactionAmount: 49.9,
	}, nil)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/payments/42", nil), "id", "42")
	w := httptest.NewRecorder()

	newPaymentHandler(create, new(MockPaymentProcessor)).HandleGet(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp PaymentStatusResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	assert.Equal(t, "approved", resp.Status)
	assert.Equal(t, "sub-7", resp.UID)
}

func TestHandleApprovedAlwaysReturns200(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		processErr  error
		callProcess bool
		wantSuccess bool
	}{
		{"conciliado", `{"uid":"sub-1","transaction_amount":49.9}`, nil, true, true},
		{"falha na conciliação", `{"uid":"sub-1","transaction_amount":49.9}`, &usecase.TechnicalError{Code: usecase.CodeReconciliationFailed, Message: "falhou"}, true, false},
		{"json inválido", `nope`, nil, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			process := new(MockPaymentProcessor)
			if tt.callProcess {
				process.On("Execute", mock.Anything, usecase.ProcessPaymentInput{
					UID:    "sub-1",
					Amount: 49.9,
					Origin: usecase.OriginManual,
				}).Return(tt.processErr)
			}

			req := httptest.NewRequest(http.MethodPost, "/payments/approved", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			newPaymentHandler(new(MockPaymentCreator), process).HandleApproved(w, req)

			assert.Equal(t, http.StatusOK, w.Code)
			var resp ApprovedResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, tt.wantSuccess, resp.Success)
			process.AssertExpectations(t)
		})
	}
}
