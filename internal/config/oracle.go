package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/provostbot/pkg/log"
)

type OracleConfig struct {
	// The key is read from the environment only and must never be logged.
	APIKey  string        `env:"GEMINI_API_KEY,required,notEmpty"`
	Model   string        `env:"PROVOST_ORACLE_MODEL" envDefault:"gemini-2.5-flash"`
	Timeout time.Duration `env:"PROVOST_ORACLE_TIMEOUT" envDefault:"60s"`
}

func NewOracleConfig(ctx context.Context) *OracleConfig {
	c := &OracleConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Oracle config")
	}
	return c
}
