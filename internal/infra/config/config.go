package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config é montado uma vez no start do processo e passado para os componentes.
type Config struct {
	Environment string
	Port        string

	DatabaseURL string `validate:"required"`
	AutoMigrate bool

	SpreadsheetID     string `validate:"required"`
	SheetRange        string `validate:"required"`
	GoogleCredentials string
	SyncInterval      time.Duration

	MercadoPagoToken         string
	MercadoPagoBaseURL       string
	MercadoPagoWebhookSecret string
	NotificationURL          string

	AMQPURL string

	WhatsAppToken    string
	WhatsAppPhoneID  string
	WhatsAppBaseURL  string
	WhatsAppTemplate string

	MailHost string
	MailPort int
	MailUser string
	MailPass string
	MailFrom string

	AllowedOrigins []string
}

// apiConfig são as chaves obrigatórias só para o servidor HTTP.
type apiConfig struct {
	MercadoPagoToken string `validate:"required"`
	AMQPURL          string `validate:"required"`
}

// Load lê o .env (se existir) e as variáveis de ambiente. Só checa ausência.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

// FromEnv monta a configuração a partir de uma função de lookup.
func FromEnv(getenv func(string) string) (*Config, error) {
	syncInterval, err := parseDuration(getenv("SYNC_INTERVAL"), 0)
	if err != nil {
		return nil, fmt.Errorf("SYNC_INTERVAL inválido: %w", err)
	}
	mailPort, err := parseInt(getenv("MAIL_PORT"), 587)
	if err != nil {
		return nil, fmt.Errorf("MAIL_PORT inválido: %w", err)
	}

	cfg := &Config{
		Environment: withDefault(getenv("ENVIRONMENT"), "development"),
		Port:        withDefault(getenv("PORT"), "8080"),

		DatabaseURL: getenv("DATABASE_URL"),
		AutoMigrate: strings.EqualFold(getenv("AUTO_MIGRATE"), "true"),

		SpreadsheetID:     getenv("SPREADSHEET_ID"),
		SheetRange:        withDefault(getenv("SHEET_RANGE"), "Respostas!A:AZ"),
		GoogleCredentials: getenv("GOOGLE_CREDENTIALS"),
		SyncInterval:      syncInterval,

		MercadoPagoToken:         getenv("MERCADOPAGO_ACCESS_TOKEN"),
		MercadoPagoBaseURL:       getenv("MERCADOPAGO_URL"),
		MercadoPagoWebhookSecret: getenv("MERCADOPAGO_WEBHOOK_SECRET"),
		NotificationURL:          getenv("MERCADOPAGO_NOTIFICATION_URL"),

		AMQPURL: getenv("AMQP_URL"),

		WhatsAppToken:    getenv("WHATSAPP_ACCESS_TOKEN"),
		WhatsAppPhoneID:  getenv("WHATSAPP_PHONE_ID"),
		WhatsAppBaseURL:  getenv("WHATSAPP_URL"),
		WhatsAppTemplate: withDefault(getenv("WHATSAPP_TEMPLATE_NAME"), "pagamento_aprovado"),

		MailHost: getenv("MAIL_HOST"),
		MailPort: mailPort,
		MailUser: getenv("MAIL_USER"),
		MailPass: getenv("MAIL_PASS"),
		MailFrom: withDefault(getenv("MAIL_FROM"), "nao-responda@liguemedicina.com"),

		AllowedOrigins: splitList(withDefault(getenv("ALLOWED_ORIGINS"), "*")),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("configuração incompleta: %w", err)
	}
	return cfg, nil
}

// ValidateAPI checa as chaves que só o servidor HTTP precisa.
func (c *Config) ValidateAPI() error {
	if err := validate.Struct(apiConfig{
		MercadoPagoToken: c.MercadoPagoToken,
		AMQPURL:          c.AMQPURL,
	}); err != nil {
		return fmt.Errorf("configuração da API incompleta: %w", err)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

func (c *Config) MailEnabled() bool {
	return c.MailHost != ""
}

var validate = validator.New(validator.WithRequiredStructEnabled())

func withDefault(v, def string) string {
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}

func parseInt(v string, def int) (int, error) {
	if strings.TrimSpace(v) == "" {
		return def, nil
	}
	return strconv.Atoi(v)
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
