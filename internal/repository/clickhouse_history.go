package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"StockPulse/internal/domain/models"
	pkgch "StockPulse/pkg/clickhouse"
	applogger "StockPulse/pkg/logger"
)

// CHTransitionHistory implements History backed by ClickHouse. Each detected
// recommendation flip becomes one row for later analysis.
type CHTransitionHistory struct {
	client *pkgch.Client
	db     *sql.DB
	l      *applogger.Logger
}

// NewCHTransitionHistory creates the recorder and ensures the table exists.
func NewCHTransitionHistory(ch *pkgch.Client, l *applogger.Logger) (*CHTransitionHistory, error) {
	h := &CHTransitionHistory{client: ch, db: ch.DB(), l: l}

	stmts := []string{`
        CREATE TABLE IF NOT EXISTS recommendation_transitions (
            ts         DateTime,
            symbol     LowCardinality(String),
            company    String,
            old_rec    LowCardinality(String),
            new_rec    LowCardinality(String),
            sentiment  Float64
        ) ENGINE = MergeTree()
        ORDER BY (symbol, ts)
        TTL ts + INTERVAL 1 YEAR
    `}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := ch.InitSchema(ctx, stmts); err != nil {
		return nil, fmt.Errorf("transition history schema: %w", err)
	}
	return h, nil
}

func (h *CHTransitionHistory) RecordTransition(ctx context.Context, ev models.TransitionEvent) error {
	start := time.Now()
	const q = `
        INSERT INTO recommendation_transitions (ts, symbol, company, old_rec, new_rec, sentiment)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := h.db.ExecContext(ctx, q,
		ev.Timestamp, ev.Symbol, ev.Company, string(ev.OldRec), string(ev.NewRec), ev.Sentiment)
	if err != nil {
		if h.l != nil {
			h.l.Error("clickhouse record_transition insert error",
				applogger.String("symbol", ev.Symbol),
				applogger.Error(err),
			)
		}
		return fmt.Errorf("record transition: %w", err)
	}
	if h.l != nil {
		h.l.Debug("clickhouse record_transition ok",
			applogger.String("symbol", ev.Symbol),
			applogger.Duration("duration_ms", time.Since(start)),
		)
	}
	return nil
}

// Recent returns the latest transitions for a symbol, newest first. Empty
// symbol returns transitions across the whole universe.
func (h *CHTransitionHistory) Recent(ctx context.Context, symbol string, limit int) ([]models.TransitionEvent, error) {
	if limit <= 0 {
		limit = 50
	}

	q := `
        SELECT ts, symbol, company, old_rec, new_rec, sentiment
        FROM recommendation_transitions
        ORDER BY ts DESC
        LIMIT ?
    `
	args := []interface{}{limit}
	if symbol != "" {
		q = `
            SELECT ts, symbol, company, old_rec, new_rec, sentiment
            FROM recommendation_transitions
            WHERE symbol = ?
            ORDER BY ts DESC
            LIMIT ?
        `
		args = []interface{}{symbol, limit}
	}

	rows, err := h.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("recent transitions: %w", err)
	}
	defer rows.Close()

	out := make([]models.TransitionEvent, 0, limit)
	for rows.Next() {
		var ev models.TransitionEvent
		var oldRec, newRec string
		if err := rows.Scan(&ev.Timestamp, &ev.Symbol, &ev.Company, &oldRec, &newRec, &ev.Sentiment); err != nil {
			return nil, fmt.Errorf("scan transition: %w", err)
		}
		ev.Type = "recommendation_change"
		ev.OldRec = models.Recommendation(oldRec)
		ev.NewRec = models.Recommendation(newRec)
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

// Close closes the underlying connection pool.
func (h *CHTransitionHistory) Close() error {
	return h.client.Close()
}
