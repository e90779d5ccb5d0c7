package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Métodos sem cartão; qualquer outro payment_method_id é tratado como bandeira de cartão.
var offlinePaymentMethods = map[string]bool{
	"pix":         true,
	"bolbradesco": true,
}

func ValidateCreatePaymentInput(input CreatePaymentInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.UID) == "" {
		errors = append(errors, ValidationError{"uid", "is required"})
	}

	if input.Amount <= 0 {
		errors = append(errors, ValidationError{"amount", "must be greater than zero"})
	}

	if strings.TrimSpace(input.PayerEmail) == "" {
		errors = append(errors, ValidationError{"payer_email", "is required"})
	} else if _, err := mail.ParseAddress(input.PayerEmail); err != nil {
		errors = append(errors, ValidationError{"payer_email", "is invalid"})
	}

	method := strings.ToLower(strings.TrimSpace(input.PaymentMethod))
	if method == "" {
		errors = append(errors, ValidationError{"payment_method", "is required"})
	} else if !offlinePaymentMethods[method] {
		if input.Token == "" {
			errors = append(errors, ValidationError{"token", "is required for card payment"})
		}
		if input.Installments < 1 || input.Installments > 12 {
			errors = append(errors, ValidationError{"installments", "must be between 1 and 12"})
		}
	}

	if input.PayerPhone != "" && !isValidPhoneNumber(input.PayerPhone) {
		errors = append(errors, ValidationError{"payer_phone", "must be a valid phone number"})
	}

	return errors
}

var nonDigit = regexp.MustCompile(`\D`)

func isValidPhoneNumber(phone string) bool {
	cleaned := nonDigit.ReplaceAllString(phone, "")
	return len(cleaned) >= 10 && len(cleaned) <= 13
}
