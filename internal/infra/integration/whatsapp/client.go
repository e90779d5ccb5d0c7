package whatsapp

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const DefaultBaseURL = "https://graph.facebook.com/v18.0"

var ErrNotConfigured = errors.New("whatsapp não configurado")

type Client struct {
	accessToken  string
	phoneID      string
	baseURL      string
	languageCode string
	http         *http.Client
}

func NewClient(accessToken, phoneID, baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		accessToken:  accessToken,
		phoneID:      phoneID,
		baseURL:      baseURL,
		languageCode: "pt_BR",
		http:         &http.Client{Timeout: 10 * time.Second},
	}
}

// SendMessage envia uma mensagem de template e devolve o id retornado pela API.
func (c *Client) SendMessage(ctx context.Context, input SendMessageInput) (string, error) {
	if c.accessToken == "" || c.phoneID == "" {
		return "", ErrNotConfigured
	}

	payload := sendMessageRequest{
		MessagingProduct: "whatsapp",
		RecipientType:    "individual",
		To:               input.PhoneNumber,
		Type:             "template",
		Template: template{
			Name:     input.TemplateName,
			Language: language{Code: c.languageCode},
			Components: []component{
				{Type: "body", Parameters: convertParametersToAPI(input.Parameters)},
			},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("erro ao serializar payload whatsapp: %w", err)
	}

	url := fmt.Sprintf("%s/%s/messages", c.baseURL, c.phoneID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.accessToken)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("erro ao enviar mensagem whatsapp: %w", err)
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(resp.Body)

	var result SendMessageResponse
	if len(respBody) > 0 {
		if err := json.Unmarshal(respBody, &result); err != nil {
			return "", fmt.Errorf("erro ao parsear resposta whatsapp (status %d): %w", resp.StatusCode, err)
		}
	}

	if result.Error != nil {
		return "", fmt.Errorf("whatsapp: %s (code %d)", result.Error.Message, result.Error.Code)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return "", fmt.Errorf("whatsapp api error: %d", resp.StatusCode)
	}
	if len(result.Messages) == 0 {
		return "", nil
	}
	return result.Messages[0].ID, nil
}

func convertParametersToAPI(params []string) []parameter {
	result := make([]parameter, 0, len(params))
	for _, p := range params {
		result = append(result, parameter{Type: "text", Text: p})
	}
	return result
}
