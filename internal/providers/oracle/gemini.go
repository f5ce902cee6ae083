// Package oracle wraps the external grounded-search service. One call per
// request, no retries: the two-stage pipeline already splits work into small
// prompts, and retrying here would double the quota cost of every question.
package oracle

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sandevgo/provostbot/internal/config"
	"github.com/sandevgo/provostbot/internal/core"
	"github.com/sandevgo/provostbot/pkg/log"
	"google.golang.org/genai"
)

type Gemini struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGemini(ctx context.Context, cfg *config.OracleConfig) (*Gemini, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	log.FromCtx(ctx).Info().
		Str("model", cfg.Model).
		Dur("timeout", cfg.Timeout).
		Msg("starting oracle client")

	return &Gemini{
		client:  client,
		model:   cfg.Model,
		timeout: cfg.Timeout,
	}, nil
}

// Generate runs one grounded generation call and returns the raw text.
// The GoogleSearch tool lets the model read the URL embedded in the prompt.
func (g *Gemini) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	cfg := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
	}

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("%w after %s", core.ErrOracleTimeout, g.timeout)
		}
		return "", fmt.Errorf("%w: %v", core.ErrOracle, err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("%w: empty response", core.ErrOracle)
	}
	return text, nil
}
