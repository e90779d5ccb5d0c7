package usecase

import (
	"strings"
	"time"
)

// DefaultCompletionColumn é a coluna da última resposta do teste (31ª coluna).
const DefaultCompletionColumn = 30

// ColumnMapping lista, por campo, os nomes de cabeçalho aceitos em ordem de prioridade.
// A comparação é case-insensitive e por substring.
type ColumnMapping struct {
	SubmissionID     []string
	Name             []string
	Email            []string
	Phone            []string
	Timestamp        []string
	CompletionColumn int
}

func DefaultColumnMapping() ColumnMapping {
	return ColumnMapping{
		SubmissionID:     []string{"submission id", "submission_id", "response id", "id da resposta"},
		Name:             []string{"nome", "name"},
		Email:            []string{"e-mail", "email"},
		Phone:            []string{"whatsapp", "telefone", "phone", "celular"},
		Timestamp:        []string{"submitted at", "timestamp", "carimbo", "data"},
		CompletionColumn: DefaultCompletionColumn,
	}
}

// columnIndex guarda as posições resolvidas; -1 quando o campo não existe na planilha.
type columnIndex struct {
	uid       int
	name      int
	email     int
	phone     int
	timestamp int
}

func (m ColumnMapping) resolve(header []string) columnIndex {
	return columnIndex{
		uid:       findColumn(header, m.SubmissionID),
		name:      findColumn(header, m.Name),
		email:     findColumn(header, m.Email),
		phone:     findColumn(header, m.Phone),
		timestamp: findColumn(header, m.Timestamp),
	}
}

func findColumn(header []string, candidates []string) int {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, candidate := range candidates {
		c := strings.ToLower(candidate)
		for i, h := range normalized {
			if h != "" && strings.Contains(h, c) {
				return i
			}
		}
	}
	return -1
}

func cell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"02/01/2006 15:04:05",
	"02/01/2006 15:04",
	"1/2/2006 15:04:05",
	"2006-01-02",
	"02/01/2006",
}

// parseTimestampOrNow nunca falha: entrada vazia ou ilegível vira time.Now().
func parseTimestampOrNow(value string) time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Now()
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	return time.Now()
}
