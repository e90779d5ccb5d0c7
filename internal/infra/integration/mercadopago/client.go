package mercadopago

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const DefaultBaseURL = "https://api.mercadopago.com"

type Client struct {
	baseURL     string
	accessToken string
	http        *http.Client
}

func NewClient(accessToken, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		baseURL:     baseURL,
		accessToken: accessToken,
		http:        &http.Client{Timeout: 10 * time.Second},
	}
}

// CreatePayment cria o pagamento no Mercado Pago. O IdempotencyKey evita cobrança duplicada
// quando a mesma requisição chega duas vezes.
func (c *Client) CreatePayment(ctx context.Context, input CreatePaymentInput) (*Payment, error) {
	payload := createPaymentRequest{
		TransactionAmount: input.TransactionAmount,
		Description:       input.Description,
		PaymentMethodID:   input.PaymentMethodID,
		Token:             input.Token,
		Installments:      input.Installments,
		ExternalReference: input.ExternalReference,
		NotificationURL:   input.NotificationURL,
		Payer: payerRequest{
			Email:     input.PayerEmail,
			FirstName: input.PayerFirstName,
			LastName:  input.PayerLastName,
		},
		Metadata: input.Metadata,
	}

	jsonBody, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("erro ao gerar json do pagamento: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/v1/payments", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)
	if input.IdempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", input.IdempotencyKey)
	}

	return c.do(req)
}

func (c *Client) GetPayment(ctx context.Context, id string) (*Payment, error) {
	endpoint := fmt.Sprintf("%s/v1/payments/%s", c.baseURL, url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	c.setHeaders(req)

	return c.do(req)
}

func (c *Client) do(req *http.Request) (*Payment, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro na conexão com mercado pago: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		var apiErr APIError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Message != "" {
			apiErr.StatusCode = resp.StatusCode
			return nil, &apiErr
		}
		return nil, &APIError{StatusCode: resp.StatusCode, Message: string(body)}
	}

	var response paymentResponse
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return nil, fmt.Errorf("erro ao ler resposta do mercado pago: %w", err)
	}

	return response.toPayment(), nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "LigueLeads/1.0")
}

func (r paymentResponse) toPayment() *Payment {
	p := &Payment{
		ID:                strconv.FormatInt(r.ID, 10),
		Status:            r.Status,
		StatusDetail:      r.StatusDetail,
		TransactionAmount: r.TransactionAmount,
		ExternalReference: r.ExternalReference,
		PaymentMethodID:   r.PaymentMethodID,
		DateApproved:      r.DateApproved,
		PayerEmail:        r.Payer.Email,
		Metadata:          r.Metadata,
		transactionData:   r.PointOfInteraction.TransactionData,
	}
	return p
}
