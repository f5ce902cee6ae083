// Package router implements the first pipeline stage: picking the single
// catalog document most likely to answer a question, or nothing.
package router

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
	"github.com/sandevgo/provostbot/internal/core"
	"github.com/sandevgo/provostbot/internal/memory"
	"github.com/sandevgo/provostbot/pkg/log"
)

type Router struct {
	oracle        core.Oracle
	tokenBudget   int
	maxCandidates int

	encOnce sync.Once
	enc     *tiktoken.Tiktoken
}

// New creates a Router. tokenBudget caps the routing prompt size (0 disables
// the check); maxCandidates caps the identifier list embedded in the prompt
// (0 disables the pre-filter).
func New(oracle core.Oracle, tokenBudget, maxCandidates int) *Router {
	return &Router{
		oracle:        oracle,
		tokenBudget:   tokenBudget,
		maxCandidates: maxCandidates,
	}
}

// Route asks the oracle for the most relevant identifier and validates the
// reply by exact membership in candidates. Anything else, including an oracle
// failure, yields Unmatched: routing is best-effort and fails open into the
// general-conversation branch.
func (r *Router) Route(ctx context.Context, question string, candidates []string, history []core.Turn) core.RoutingDecision {
	logger := log.FromCtx(ctx)

	if len(candidates) == 0 {
		return core.Unmatched()
	}

	shown := r.shortlist(question, candidates)
	prompt := buildPrompt(question, shown, history)

	if r.tokenBudget > 0 {
		for r.countTokens(prompt) > r.tokenBudget && len(shown) > 8 {
			shown = shown[:len(shown)/2]
			prompt = buildPrompt(question, shown, history)
		}
	}

	reply, err := r.oracle.Generate(ctx, prompt)
	if err != nil {
		logger.Warn().Err(err).Msg("routing call failed, falling back")
		return core.Unmatched()
	}

	reply = strings.TrimSpace(reply)
	for _, c := range candidates {
		if reply == c {
			logger.Debug().Str("identifier", reply).Msg("routed question")
			return core.Matched(reply)
		}
	}

	logger.Warn().Str("reply", reply).Msg("oracle returned an identifier not in the candidate list")
	return core.Unmatched()
}

// shortlist ranks candidates by lexical overlap with the question and keeps
// the top maxCandidates. The full list is returned untouched when it fits;
// ranking only kicks in for catalogs too large to embed wholesale.
func (r *Router) shortlist(question string, candidates []string) []string {
	if r.maxCandidates <= 0 || len(candidates) <= r.maxCandidates {
		out := make([]string, len(candidates))
		copy(out, candidates)
		return out
	}

	terms := tokenize(question)

	type scored struct {
		index int
		score int
	}
	ranked := make([]scored, len(candidates))
	for i, c := range candidates {
		ranked[i] = scored{index: i, score: overlap(terms, tokenize(c))}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})
	ranked = ranked[:r.maxCandidates]

	// Restore the catalog's original ordering for the prompt.
	sort.Slice(ranked, func(i, j int) bool {
		return ranked[i].index < ranked[j].index
	})

	out := make([]string, len(ranked))
	for i, s := range ranked {
		out[i] = candidates[s.index]
	}
	return out
}

func (r *Router) countTokens(s string) int {
	r.encOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			r.enc = enc
		}
	})
	if r.enc != nil {
		return len(r.enc.Encode(s, nil, nil))
	}
	// Vocabulary unavailable (offline); rough bytes-per-token estimate.
	return len(s) / 4
}

func tokenize(s string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, t := range strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !('a' <= r && r <= 'z' || '0' <= r && r <= '9')
	}) {
		if len(t) > 2 {
			out[t] = struct{}{}
		}
	}
	return out
}

func overlap(a, b map[string]struct{}) int {
	n := 0
	for t := range b {
		if _, ok := a[t]; ok {
			n++
		}
	}
	return n
}

func buildPrompt(question string, candidates []string, history []core.Turn) string {
	return fmt.Sprintf(`You are a file routing assistant. Your task is to identify the single most relevant filename from the provided list to answer the user's question.
---
**Conversation History:**
---
%s
---
**Instructions:**
1.  Read the user's question carefully.
2.  Review the list of filenames.
3.  Respond with ONLY the single filename that is most likely to contain the answer. Do not add any other text or explanation.

**List of Filenames:**
---
%s
---

**User's Question:**
%s

**Most Relevant Filename:**
`, memory.Render(history), strings.Join(candidates, "\n"), question)
}
