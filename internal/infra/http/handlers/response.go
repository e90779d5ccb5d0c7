package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/entity"
	"github.com/xavierca1/ligue-leads/internal/usecase"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// statusFor traduz os erros da camada de usecase para HTTP.
func statusFor(err error) int {
	if errors.Is(err, entity.ErrLeadNotFound) {
		return http.StatusNotFound
	}

	var domainErr *usecase.DomainError
	if errors.As(err, &domainErr) {
		if domainErr.Code == usecase.CodeValidation {
			return http.StatusBadRequest
		}
		return http.StatusUnprocessableEntity
	}

	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) && techErr.Code == usecase.CodeGatewayFailed {
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)

	msg := err.Error()
	var techErr *usecase.TechnicalError
	if errors.As(err, &techErr) {
		msg = techErr.Message
	} else if status == http.StatusInternalServerError {
		msg = "erro interno"
	}

	writeJSON(w, status, ErrorResponse{
		Error: msg,
		Code:  usecase.ErrorCode(err),
	})
}
