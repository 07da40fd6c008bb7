package store

import (
	"context"
	"fmt"
	"time"

	entsql "entgo.io/ent/dialect/sql"
)

func (r *eventRepo) AppendSessionEvent(ctx context.Context, data SessionEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args := builder().Insert(sessionEventsTableName).
		Columns("sequence", "timestamp", "session_id", "subject", "condition", "action",
			"resume_trial_index", "trials_run").
		Values(seqNum, time.Now().UTC(), data.SessionID, data.Subject, data.Condition, data.Action,
			data.ResumeTrialIndex, data.TrialsRun).
		Query()
	if err := r.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save session event: %w", err)
	}
	return nil
}

func (r *eventRepo) QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error) {
	sel := builder().Select("sequence", "timestamp", "session_id", "subject", "condition", "action",
		"resume_trial_index", "trials_run").
		From(entsql.Table(sessionEventsTableName))
	applyOpts(sel, opts)

	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query session events: %w", err)
	}
	defer rows.Close()

	var records []SessionEventRecord
	for rows.Next() {
		var rec SessionEventRecord
		if err := rows.Scan(&rec.Sequence, &rec.Timestamp, &rec.SessionID, &rec.Subject, &rec.Condition,
			&rec.Action, &rec.ResumeTrialIndex, &rec.TrialsRun); err != nil {
			return nil, fmt.Errorf("scan session event: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate session events: %w", err)
	}
	return records, nil
}
