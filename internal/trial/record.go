// Package trial holds the per-trial record and the per-subject CSV log it
// is written to.
package trial

import (
	"strings"
	"time"
)

const (
	dateLayout = "01-02-06"
	// The hour is 24h followed by AM/PM; existing logs use this format.
	timeLayout = "15:04:05 PM"
)

// Record captures one trial attempt. It is created when the trial starts
// and filled in when the subject makes a choice.
type Record struct {
	Subject           string
	Condition         string // display name
	TrialIndex        int    // zero-based
	Date              string
	Time              string
	StartedAt         time.Time
	BackgroundTouches int
	VideoTouches      int
	ChoiceLatency     time.Duration
	CardSelected      string
	PelletsDispensed  int
}

// New starts a record for trial index of condition for subject.
func New(subject, condition string, index int, now time.Time) *Record {
	return &Record{
		Subject:    subject,
		Condition:  condition,
		TrialIndex: index,
		Date:       now.Format(dateLayout),
		Time:       now.Format(timeLayout),
		StartedAt:  now,
	}
}

// LatencySeconds returns the choice latency in seconds.
func (r *Record) LatencySeconds() float64 {
	return r.ChoiceLatency.Seconds()
}

// FileStem converts "Hello World" into "hello_world" for use in file names.
func FileStem(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "_")
}
