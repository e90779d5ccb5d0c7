package usecase

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/infra/integration/mercadopago"
	"github.com/xavierca1/ligue-leads/internal/infra/queue"
)

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

// MockSheetReader
type MockSheetReader struct {
	mock.Mock
}

func (m *MockSheetReader) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	args := m.Called(ctx, spreadsheetID, readRange)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([][]string), args.Error(1)
}

// MockLeadSyncer
type MockLeadSyncer struct {
	mock.Mock
}

func (m *MockLeadSyncer) SyncAll(ctx context.Context) (SyncReport, error) {
	args := m.Called(ctx)
	return args.Get(0).(SyncReport), args.Error(1)
}

// MockReconciler
type MockReconciler struct {
	mock.Mock
}

func (m *MockReconciler) MarkPaid(ctx context.Context, uid string, amount float64) bool {
	args := m.Called(ctx, uid, amount)
	return args.Bool(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishPaymentApproved(ctx context.Context, payload queue.PaymentApprovedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}

// MockGateway
type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) CreatePayment(ctx context.Context, input mercadopago.CreatePaymentInput) (*mercadopago.Payment, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.Payment), args.Error(1)
}

func (m *MockGateway) GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*mercadopago.Payment), args.Error(1)
}

// memoryLeadRepository imita o upsert por uid do banco.
type memoryLeadRepository struct {
	mu      sync.Mutex
	leads   map[string]*entity.Lead
	upserts int
}

func newMemoryLeadRepository() *memoryLeadRepository {
	return &memoryLeadRepository{leads: make(map[string]*entity.Lead)}
}

func (r *memoryLeadRepository) Upsert(_ context.Context, lead *entity.Lead) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++

	cp := *lead
	if existing, ok := r.leads[lead.UID]; ok {
		cp.PaymentStatus = existing.PaymentStatus
		cp.PaidAt = existing.PaidAt
		cp.AmountPaid = existing.AmountPaid
		if cp.Phone == "" {
			cp.Phone = existing.Phone
		}
	}
	r.leads[lead.UID] = &cp
	return nil
}

func (r *memoryLeadRepository) FindByUID(_ context.Context, uid string) (*entity.Lead, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[uid]
	if !ok {
		return nil, entity.ErrLeadNotFound
	}
	cp := *lead
	return &cp, nil
}

func (r *memoryLeadRepository) UpdatePayment(_ context.Context, uid string, update entity.PaymentUpdate) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	lead, ok := r.leads[uid]
	if !ok {
		return entity.ErrLeadNotFound
	}
	paidAt := update.PaidAt
	lead.PaymentStatus = update.Status
	lead.PaidAt = &paidAt
	lead.AmountPaid = update.AmountPaid
	return nil
}
