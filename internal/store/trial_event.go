package store

import (
	"context"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// eventRepo implements EventRepo with ent's SQL builder over the shared driver.
type eventRepo struct {
	drv *entsql.Driver
	seq *sequenceCounter
}

func builder() *entsql.DialectBuilder {
	return entsql.Dialect(dialect.SQLite)
}

func (r *eventRepo) AppendTrialEvent(ctx context.Context, data TrialEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(trialEventsTableName).
		Columns("sequence", "timestamp", "session_id", "subject", "condition", "trial_index",
			"card", "pellets", "background_touches", "video_touches", "latency_ms").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Subject, data.Condition, data.TrialIndex,
			data.Card, data.Pellets, data.BackgroundTouches, data.VideoTouches, data.Latency.Milliseconds()).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save trial event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryTrials(ctx context.Context, opts QueryOpts) ([]TrialEventRecord, error) {
	sel := builder().Select("sequence", "timestamp", "session_id", "subject", "condition", "trial_index",
		"card", "pellets", "background_touches", "video_touches", "latency_ms").
		From(entsql.Table(trialEventsTableName))
	applyOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query trial events: %w", err)
	}
	defer rows.Close()

	var records []TrialEventRecord
	for rows.Next() {
		var (
			rec       TrialEventRecord
			latencyMs int64
		)
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Subject, &rec.Condition,
			&rec.TrialIndex, &rec.Card, &rec.Pellets, &rec.BackgroundTouches, &rec.VideoTouches, &latencyMs); err != nil {
			return nil, fmt.Errorf("scan trial event: %w", err)
		}
		rec.Latency = time.Duration(latencyMs) * time.Millisecond
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trial events: %w", err)
	}
	return records, nil
}

func (r *eventRepo) TrialCounts(ctx context.Context) ([]TrialCount, error) {
	query, args := builder().Select("subject", "condition", entsql.Count("*")).
		From(entsql.Table(trialEventsTableName)).
		GroupBy("subject", "condition").
		OrderBy("subject", "condition").
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query trial counts: %w", err)
	}
	defer rows.Close()

	var counts []TrialCount
	for rows.Next() {
		var c TrialCount
		if err := rows.Scan(&c.Subject, &c.Condition, &c.Trials); err != nil {
			return nil, fmt.Errorf("scan trial count: %w", err)
		}
		counts = append(counts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trial counts: %w", err)
	}
	return counts, nil
}

// applyOpts adds the shared filters and newest-first ordering to sel.
func applyOpts(sel *entsql.Selector, opts QueryOpts) {
	var preds []*entsql.Predicate
	if opts.Subject != "" {
		preds = append(preds, entsql.EQ("subject", opts.Subject))
	}
	if opts.Condition != "" {
		preds = append(preds, entsql.EQ("condition", opts.Condition))
	}
	if opts.After > 0 {
		preds = append(preds, entsql.GT("sequence", opts.After))
	}
	if opts.Before > 0 {
		preds = append(preds, entsql.LT("sequence", opts.Before))
	}
	if !opts.From.IsZero() {
		preds = append(preds, entsql.GTE("timestamp", opts.From.UTC()))
	}
	if !opts.To.IsZero() {
		preds = append(preds, entsql.LTE("timestamp", opts.To.UTC()))
	}
	if len(preds) > 0 {
		sel.Where(entsql.And(preds...))
	}
	sel.OrderBy(entsql.Desc("sequence"))
	if opts.Limit > 0 {
		sel.Limit(opts.Limit)
	}
}
