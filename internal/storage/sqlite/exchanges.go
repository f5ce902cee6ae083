package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/provostbot/internal/core"
)

// ExchangesRepo is the write-side audit log of completed question/answer
// pairs. It is never read back into prompts; the conversation window stays
// purely in-process.
type ExchangesRepo struct {
	db *sql.DB
}

func NewExchangesRepo(db *sql.DB) *ExchangesRepo {
	return &ExchangesRepo{db: db}
}

func (r *ExchangesRepo) AddExchange(ctx context.Context, ex core.Exchange) error {
	query := `INSERT INTO exchanges (question, identifier, source_url, answer) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, ex.Question, ex.Identifier, ex.SourceURL, ex.Answer); err != nil {
		return fmt.Errorf("failed to insert exchange: %w", err)
	}
	return nil
}

// RecentExchanges returns the newest exchanges first, for inspection.
func (r *ExchangesRepo) RecentExchanges(ctx context.Context, limit int) ([]core.Exchange, error) {
	query := `SELECT id, question, identifier, source_url, answer, created_at FROM exchanges ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	var out []core.Exchange
	for rows.Next() {
		var ex core.Exchange
		if err := rows.Scan(&ex.ID, &ex.Question, &ex.Identifier, &ex.SourceURL, &ex.Answer, &ex.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		out = append(out, ex)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
