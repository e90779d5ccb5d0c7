package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New devolve um logger JSON em produção e um logger de console legível no resto.
func New(environment string) (*zap.SugaredLogger, error) {
	var cfg zap.Config
	switch strings.ToLower(environment) {
	case "prod", "production":
		cfg = zap.NewProductionConfig()
	default:
		cfg = zap.NewDevelopmentConfig()
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().With("service", "ligue-leads"), nil
}
