package session

import "time"

// Summary holds the counts shown when a session ends.
type Summary struct {
	SessionID        string
	Subject          string
	Condition        string
	ResumeTrialIndex int
	TrialsRun        int
	SafeChoices      int
	RiskyChoices     int
	Pellets          int
	Duration         time.Duration
}

// RiskyRate returns the fraction of choices that went to the risky card.
func (s Summary) RiskyRate() float64 {
	if s.TrialsRun == 0 {
		return 0
	}
	return float64(s.RiskyChoices) / float64(s.TrialsRun)
}
