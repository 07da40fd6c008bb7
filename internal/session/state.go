package session

import "fmt"

// Phase represents where the session is in the trial cycle.
type Phase int

const (
	PhaseIdle     Phase = iota // No subject selected
	PhaseReady                 // Condition assigned, waiting for the next trial
	PhaseTrial                 // Cards shown, waiting for a choice
	PhaseComplete              // Condition finished; nothing left to run this session
	PhaseClosed                // Shutdown save done
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseReady:
		return "ready"
	case PhaseTrial:
		return "trial"
	case PhaseComplete:
		return "complete"
	case PhaseClosed:
		return "closed"
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Card identifies which of the two cards the subject chose.
type Card int

const (
	// CardSafe is the left, low-variance card.
	CardSafe Card = iota
	// CardRisky is the right, high-variance card.
	CardRisky
)

// String returns the label written to the trial log.
func (c Card) String() string {
	switch c {
	case CardSafe:
		return "Green Card"
	case CardRisky:
		return "Red Card"
	}
	return fmt.Sprintf("Card(%d)", int(c))
}
