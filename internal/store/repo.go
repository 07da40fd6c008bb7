package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Subject   string    // exact subject name ("" = any)
	Condition string    // exact condition ID ("" = any)
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	Before    int64     // sequence < Before
	From      time.Time // timestamp >= From
	To        time.Time // timestamp <= To
}

// Session event actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session starting or ending for a subject.
type SessionEventData struct {
	SessionID        string
	Subject          string
	Condition        string
	Action           string
	ResumeTrialIndex int
	TrialsRun        int
}

// SessionEventRecord is a persisted session event.
type SessionEventRecord struct {
	SessionEventData
	Sequence  int64
	Timestamp time.Time
}

// TrialEventData captures one completed trial.
type TrialEventData struct {
	SessionID         string
	Subject           string
	Condition         string
	TrialIndex        int
	Card              string
	Pellets           int
	BackgroundTouches int
	VideoTouches      int
	Latency           time.Duration
}

// TrialEventRecord is a persisted trial event.
type TrialEventRecord struct {
	TrialEventData
	Sequence  int64
	Timestamp time.Time
}

// TrialCount aggregates trials per subject and condition.
type TrialCount struct {
	Subject   string
	Condition string
	Trials    int
}

// EventRepo provides append and query access to experiment events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendTrialEvent records a completed trial.
	AppendTrialEvent(ctx context.Context, data TrialEventData) error

	// QueryTrials returns trial events, newest first.
	QueryTrials(ctx context.Context, opts QueryOpts) ([]TrialEventRecord, error)

	// QuerySessions returns session events, newest first.
	QuerySessions(ctx context.Context, opts QueryOpts) ([]SessionEventRecord, error)

	// TrialCounts returns the number of mirrored trials per subject and
	// condition.
	TrialCounts(ctx context.Context) ([]TrialCount, error)
}
