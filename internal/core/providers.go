package core

import "context"

// Oracle is the external generative search service: free text in, free text out.
type Oracle interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Catalog is the read-only mapping from document identifier to source URL.
type Catalog interface {
	Identifiers() []string
	Lookup(identifier string) string
}

type ExchangesRepository interface {
	AddExchange(ctx context.Context, ex Exchange) error
}
