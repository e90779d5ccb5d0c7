package entity

import (
	"context"
	"errors"
	"time"
)

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "pending"
	PaymentApproved PaymentStatus = "approved"
)

// DefaultLeadName é usado quando a planilha não traz o nome do respondente.
const DefaultLeadName = "Sem nome"

var ErrLeadNotFound = errors.New("lead não encontrado")

// Lead representa uma submissão do formulário e o estado do pagamento dela.
type Lead struct {
	UID           string        `json:"uid"`
	Name          string        `json:"name"`
	Email         string        `json:"email"`
	Phone         string        `json:"phone,omitempty"`
	RegisteredAt  time.Time     `json:"registered_at"`
	StartedTest   bool          `json:"started_test"`
	CompletedTest bool          `json:"completed_test"`
	PaymentStatus PaymentStatus `json:"payment_status"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
	AmountPaid    float64       `json:"amount_paid"`

	// Reservados: criados zerados e não alterados pelo sync nem pela conciliação.
	ResultSent       bool `json:"result_sent"`
	WhatsAppNotified bool `json:"whatsapp_notified"`
	EmailStage       int  `json:"email_stage"`
	ReminderCount    int  `json:"reminder_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewLead monta um lead recém-ingerido, sempre pendente de pagamento.
func NewLead(uid, name, email string, registeredAt time.Time, completed bool) *Lead {
	if name == "" {
		name = DefaultLeadName
	}
	now := time.Now()
	return &Lead{
		UID:           uid,
		Name:          name,
		Email:         email,
		RegisteredAt:  registeredAt,
		StartedTest:   true,
		CompletedTest: completed,
		PaymentStatus: PaymentPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

func (l *Lead) IsPaid() bool {
	return l.PaymentStatus == PaymentApproved
}

// PaymentUpdate é o conjunto parcial de campos escrito pela conciliação.
type PaymentUpdate struct {
	Status     PaymentStatus
	PaidAt     time.Time
	AmountPaid float64
}

type LeadRepositoryInterface interface {
	// Upsert grava o lead usando uid como chave de conflito, sem tocar nos campos de pagamento.
	Upsert(ctx context.Context, lead *Lead) error
	// FindByUID retorna ErrLeadNotFound quando não existe registro.
	FindByUID(ctx context.Context, uid string) (*Lead, error)
	// UpdatePayment retorna ErrLeadNotFound quando nenhuma linha foi afetada.
	UpdatePayment(ctx context.Context, uid string, update PaymentUpdate) error
}
