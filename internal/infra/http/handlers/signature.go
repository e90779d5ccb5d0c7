package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

var (
	ErrMissingSignature = errors.New("x-signature ausente")
	ErrInvalidSignature = errors.New("assinatura do webhook inválida")
)

// parseSignature lê o header x-signature no formato "ts=1704908010,v1=abc...".
func parseSignature(header string) (ts, v1 string) {
	for _, part := range strings.Split(header, ",") {
		key, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if !ok {
			continue
		}
		switch strings.TrimSpace(key) {
		case "ts":
			ts = strings.TrimSpace(value)
		case "v1":
			v1 = strings.TrimSpace(value)
		}
	}
	return ts, v1
}

func signatureManifest(dataID, requestID, ts string) string {
	var b strings.Builder
	if dataID != "" {
		b.WriteString("id:" + strings.ToLower(dataID) + ";")
	}
	if requestID != "" {
		b.WriteString("request-id:" + requestID + ";")
	}
	if ts != "" {
		b.WriteString("ts:" + ts + ";")
	}
	return b.String()
}

func SignManifest(secret, dataID, requestID, ts string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(signatureManifest(dataID, requestID, ts)))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature confere o HMAC-SHA256 enviado pelo Mercado Pago.
func VerifySignature(secret, header, dataID, requestID string) error {
	if header == "" {
		return ErrMissingSignature
	}
	ts, v1 := parseSignature(header)
	if ts == "" || v1 == "" {
		return ErrInvalidSignature
	}

	expected := SignManifest(secret, dataID, requestID, ts)
	if !hmac.Equal([]byte(expected), []byte(strings.ToLower(v1))) {
		return ErrInvalidSignature
	}
	return nil
}
