package sheets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"
)

// ValuesGetter isola a chamada da API para facilitar testes.
type ValuesGetter interface {
	Get(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error)
}

type Client struct {
	values ValuesGetter
}

// NewClient cria o cliente do Google Sheets usando as credenciais informadas
// (JSON inline ou caminho para o arquivo da service account).
func NewClient(ctx context.Context, credentials string) (*Client, error) {
	opts := append(ClientOptions(credentials), option.WithScopes(gsheets.SpreadsheetsReadonlyScope))

	srv, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar serviço do google sheets: %w", err)
	}
	return &Client{values: &serviceValues{srv: srv}}, nil
}

func NewClientWithGetter(values ValuesGetter) *Client {
	return &Client{values: values}
}

// ClientOptions aceita JSON inline, caminho de arquivo ou vazio (credenciais padrão do ambiente).
func ClientOptions(credentials string) []option.ClientOption {
	creds := strings.TrimSpace(credentials)
	if creds == "" {
		creds = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}
	if creds == "" {
		return nil
	}
	if strings.HasPrefix(creds, "{") {
		return []option.ClientOption{option.WithCredentialsJSON([]byte(creds))}
	}
	return []option.ClientOption{option.WithCredentialsFile(creds)}
}

// ReadRange devolve as células como texto; linhas vazias no meio do intervalo viram slices vazios.
func (c *Client) ReadRange(ctx context.Context, spreadsheetID, readRange string) ([][]string, error) {
	raw, err := c.values.Get(ctx, spreadsheetID, readRange)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler %s da planilha %s: %w", readRange, spreadsheetID, err)
	}

	rows := make([][]string, 0, len(raw))
	for _, r := range raw {
		row := make([]string, len(r))
		for i, v := range r {
			if v == nil {
				continue
			}
			row[i] = fmt.Sprint(v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

type serviceValues struct {
	srv *gsheets.Service
}

func (s *serviceValues) Get(ctx context.Context, spreadsheetID, readRange string) ([][]interface{}, error) {
	resp, err := s.srv.Spreadsheets.Values.Get(spreadsheetID, readRange).
		ValueRenderOption("FORMATTED_VALUE").
		Context(ctx).
		Do()
	if err != nil {
		return nil, err
	}
	return resp.Values, nil
}
