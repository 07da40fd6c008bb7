package session

import (
	"github.com/abhisek/primate/internal/scheduler"
)

// sessionStartedMsg is sent when the condition has been assigned.
type sessionStartedMsg struct {
	Condition scheduler.Condition
	Err       error
}

// dispensedMsg is sent once the dispenser has finished for a trial.
type dispensedMsg struct {
	Requested int
	Dispensed int
}

// feedbackDoneMsg is sent when the feedback window after a choice ends.
type feedbackDoneMsg struct{}

// blankDoneMsg is sent when the inter-trial blank ends.
type blankDoneMsg struct{}
