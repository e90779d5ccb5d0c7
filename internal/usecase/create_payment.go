package usecase

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xavierca1/ligue-leads/internal/infra/integration/mercadopago"
)

type CreatePaymentUseCase struct {
	Gateway         PaymentGateway
	NotificationURL string
	Log             *zap.SugaredLogger
}

func NewCreatePaymentUseCase(gateway PaymentGateway, notificationURL string, log *zap.SugaredLogger) *CreatePaymentUseCase {
	return &CreatePaymentUseCase{
		Gateway:         gateway,
		NotificationURL: notificationURL,
		Log:             log,
	}
}

// Execute valida a entrada e repassa o pagamento ao gateway, usando o uid como external_reference.
func (uc *CreatePaymentUseCase) Execute(ctx context.Context, input CreatePaymentInput) (*CreatePaymentOutput, error) {
	validationErrors := ValidateCreatePaymentInput(input)
	if len(validationErrors) > 0 {
		msgs := make([]string, 0, len(validationErrors))
		for _, e := range validationErrors {
			msgs = append(msgs, e.Error())
		}
		return nil, &DomainError{
			Code:    CodeValidation,
			Message: "validation failed: " + strings.Join(msgs, ", "),
		}
	}

	description := input.Description
	if description == "" {
		description = "Resultado do teste - " + input.UID
	}

	firstName, lastName := splitName(input.PayerName)
	idempotencyKey := uuid.New().String()

	payment, err := uc.Gateway.CreatePayment(ctx, mercadopago.CreatePaymentInput{
		IdempotencyKey:    idempotencyKey,
		TransactionAmount: input.Amount,
		Description:       description,
		PaymentMethodID:   strings.ToLower(input.PaymentMethod),
		Token:             input.Token,
		Installments:      input.Installments,
		ExternalReference: input.UID,
		NotificationURL:   uc.NotificationURL,
		PayerEmail:        input.PayerEmail,
		PayerFirstName:    firstName,
		PayerLastName:     lastName,
		Metadata: map[string]string{
			"uid":   input.UID,
			"phone": input.PayerPhone,
		},
	})
	if err != nil {
		return nil, &TechnicalError{
			Code:    CodeGatewayFailed,
			Message: "gateway recusou o pagamento",
			Err:     err,
		}
	}

	uc.Log.Infow("pagamento criado no gateway", "uid", input.UID, "payment_id", payment.ID, "status", payment.Status)

	return &CreatePaymentOutput{
		ID:             payment.ID,
		Status:         payment.Status,
		UID:            input.UID,
		Amount:         payment.TransactionAmount,
		PixCode:        payment.PixCode(),
		PixQRCode:      payment.PixQRCodeBase64(),
		TicketURL:      payment.TicketURL(),
		IdempotencyKey: idempotencyKey,
	}, nil
}

// GetPayment consulta o pagamento no gateway.
func (uc *CreatePaymentUseCase) GetPayment(ctx context.Context, id string) (*mercadopago.Payment, error) {
	if strings.TrimSpace(id) == "" {
		return nil, &DomainError{Code: CodeValidation, Message: "id do pagamento é obrigatório"}
	}
	payment, err := uc.Gateway.GetPayment(ctx, id)
	if err != nil {
		return nil, &TechnicalError{Code: CodeGatewayFailed, Message: "falha ao consultar pagamento", Err: err}
	}
	return payment, nil
}

func splitName(full string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(full), " ", 2)
	if len(parts) == 2 {
		return parts[0], parts[1]
	}
	return parts[0], ""
}
