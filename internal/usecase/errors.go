package usecase

import "errors"

const (
	CodeValidation           = "VALIDATION_ERROR"
	CodeSubmissionIDMissing  = "SUBMISSION_ID_COLUMN_NOT_FOUND"
	CodeSheetFetchFailed     = "SHEET_FETCH_FAILED"
	CodeGatewayFailed        = "PAYMENT_GATEWAY_ERROR"
	CodeReconciliationFailed = "RECONCILIATION_FAILED"
	CodeDatabase             = "DATABASE_ERROR"
)

// DomainError é um erro de regra/entrada: quem chama consegue corrigir.
type DomainError struct {
	Code    string
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func IsDomainError(err error) bool {
	var de *DomainError
	return errors.As(err, &de)
}

// TechnicalError embrulha falhas de infraestrutura (banco, planilha, gateway).
type TechnicalError struct {
	Code    string
	Message string
	Err     error
}

func (e *TechnicalError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *TechnicalError) Unwrap() error {
	return e.Err
}

func IsTechnicalError(err error) bool {
	var te *TechnicalError
	return errors.As(err, &te)
}

// ErrorCode devolve o código do erro de domínio ou técnico, ou "" se não houver.
func ErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	var te *TechnicalError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
