package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/mercadopago"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

// MockPaymentCreator
type MockPaymentCreator struct {
	mock.Mock
}

func (m *MockPaymentCreator) Execute(ctx context.Context, input usecase.CreatePaymentInput) (*usecase.CreatePaymentOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*usecase.CreatePaymentOutput), args.Error(1)
}

func (m *MockPaymentCreator) GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.Payment), args.Error(1)
}

// MockPaymentProcessor
type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) Execute(ctx context.Context, input usecase.ProcessPaymentInput) error {
	args := m.Called(ctx, input)
	return args.Error(0)
}

// MockLeadSyncer
type MockLeadSyncer struct {
	mock.Mock
}

func (m *MockLeadSyncer) SyncAll(ctx context.Context) (usecase.SyncReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(usecase.SyncReport), args.Error(1)
}

// MockLeadRepository
type MockLeadRepository struct {
	mock.Mock
}

func (m *MockLeadRepository) Upsert(ctx context.Context, lead *entity.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

func (m *MockLeadRepository) FindByUID(ctx context.Context, uid string) (*entity.Lead, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Lead), args.Error(1)
}

func (m *MockLeadRepository) UpdatePayment(ctx context.Context, uid string, update entity.PaymentUpdate) error {
	args := m.Called(ctx, uid, update)
	return args.Error(0)
}

// withURLParam injeta um parâmetro de rota do chi na request.
func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}
