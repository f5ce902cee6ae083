// Package pipeline orchestrates one question through the two-stage flow:
// route to a catalog document, answer grounded on it (or fall back to general
// conversation), shape the reply, then record the exchange.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/sandevgo/provostbot/internal/core"
	"github.com/sandevgo/provostbot/internal/memory"
	"github.com/sandevgo/provostbot/pkg/log"
)

// SourceGeneral marks answers produced without a document reference.
const SourceGeneral = "general"

type Router interface {
	Route(ctx context.Context, question string, candidates []string, history []core.Turn) core.RoutingDecision
}

type Answerer interface {
	Grounded(ctx context.Context, question, url string, history []core.Turn) (string, error)
	Fallback(ctx context.Context, question string, history []core.Turn) string
}

type Pipeline struct {
	catalog   core.Catalog
	router    Router
	answerer  Answerer
	window    *memory.Window
	exchanges core.ExchangesRepository // optional
	markers   []string
}

func New(
	catalog core.Catalog,
	router Router,
	answerer Answerer,
	window *memory.Window,
	exchanges core.ExchangesRepository,
	notFoundMarkers []string,
) *Pipeline {
	return &Pipeline{
		catalog:   catalog,
		router:    router,
		answerer:  answerer,
		window:    window,
		exchanges: exchanges,
		markers:   notFoundMarkers,
	}
}

// Ask runs one complete exchange. On success exactly two turns (User, then
// Assistant) are appended to the conversation window. A grounded-branch
// oracle failure returns the error and records nothing.
func (p *Pipeline) Ask(ctx context.Context, question string) (core.Result, error) {
	logger := log.FromCtx(ctx)

	question = strings.TrimSpace(question)
	if question == "" {
		return core.Result{}, core.ErrMissingQuestion
	}

	// One snapshot feeds both prompts so the two stages see the same context.
	history := p.window.Turns()

	decision := p.router.Route(ctx, question, p.catalog.Identifiers(), history)

	var url string
	if decision.Matched {
		url = p.catalog.Lookup(decision.Identifier)
		if url == "" {
			// A matched identifier comes from the candidate set, so a lookup
			// miss means the catalog and router disagree about the world.
			logger.Error().Str("identifier", decision.Identifier).Msg("matched identifier missing from catalog")
			decision = core.Unmatched()
		}
	}

	var answer, source string
	if decision.Matched {
		grounded, err := p.answerer.Grounded(ctx, question, url, history)
		if err != nil {
			logger.Error().Err(err).
				Str("identifier", decision.Identifier).
				Str("question", question).
				Msg("grounded answer failed")
			return core.Result{}, err
		}
		answer = grounded
		source = "Live Search on " + url
	} else {
		answer = p.answerer.Fallback(ctx, question, history)
		source = SourceGeneral
	}

	answer = p.shape(answer, url)

	p.window.Append(
		core.Turn{Role: core.RoleUser, Content: question},
		core.Turn{Role: core.RoleAssistant, Content: answer},
	)

	if p.exchanges != nil {
		ex := core.Exchange{
			Question:   question,
			Identifier: decision.Identifier,
			SourceURL:  url,
			Answer:     answer,
		}
		if err := p.exchanges.AddExchange(ctx, ex); err != nil {
			logger.Error().Err(err).Msg("failed to record exchange")
		}
	}

	return core.Result{Answer: answer, Source: source}, nil
}

// shape replaces a grounded "that is not listed" style answer with a pointer
// to the reference page, so the user always gets somewhere to look.
func (p *Pipeline) shape(answer, url string) string {
	if url == "" {
		return answer
	}

	lower := strings.ToLower(answer)
	for _, marker := range p.markers {
		marker = strings.TrimSpace(strings.ToLower(marker))
		if marker == "" {
			continue
		}
		if strings.Contains(lower, marker) {
			return fmt.Sprintf("I couldn't find that information, but here is the reference webpage: %s", url)
		}
	}
	return answer
}
