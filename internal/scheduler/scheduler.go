package scheduler

import (
	"errors"
	"fmt"

	"github.com/abhisek/primate/internal/catalog"
	"github.com/abhisek/primate/internal/progress"
)

var (
	// ErrUnknownCondition is returned by RecordTrialPassed when the subject
	// has no entry for the condition; SelectNext must come first.
	ErrUnknownCondition = errors.New("unknown condition")

	// ErrSubjectDone is returned by SelectNext when nothing is playable.
	ErrSubjectDone = errors.New("subject has no playable conditions")

	// ErrConditionComplete is returned by RecordTrialPassed when the
	// condition has already run all of its trials.
	ErrConditionComplete = errors.New("condition already complete")
)

// Catalog is the ordered condition list the scheduler draws from.
type Catalog interface {
	List() []string
	AssetPath(id string) string
}

// Condition is the value handed to the caller for one assignment.
type Condition struct {
	ID               string
	AssetPath        string
	DisplayName      string
	ResumeTrialIndex int
}

// Scheduler applies the condition selection rules for a fixed catalog and
// trial count.
type Scheduler struct {
	ids         []string
	assets      map[string]string
	totalTrials int
}

// New snapshots the catalog order; later changes to cat are not observed.
func New(cat Catalog, totalTrials int) (*Scheduler, error) {
	if totalTrials < 1 {
		return nil, fmt.Errorf("total trials must be positive, got %d", totalTrials)
	}
	ids := cat.List()
	assets := make(map[string]string, len(ids))
	for _, id := range ids {
		assets[id] = cat.AssetPath(id)
	}
	return &Scheduler{ids: ids, assets: assets, totalTrials: totalTrials}, nil
}

// TotalTrials returns the number of trials in every condition.
func (s *Scheduler) TotalTrials() int {
	return s.totalTrials
}

// Conditions returns the catalog IDs in scheduling order.
func (s *Scheduler) Conditions() []string {
	return append([]string(nil), s.ids...)
}

// Playable returns the conditions subj may run next, highest priority
// first. It does not modify subj.
func (s *Scheduler) Playable(subj *progress.Subject) []Condition {
	var out []Condition
	for _, id := range s.ids {
		p, started := subj.Progress(id)
		switch {
		case !started:
			out = append(out, s.condition(id, 0))
		case p.NextTrialIndex < s.totalTrials:
			out = append(out, s.condition(id, p.NextTrialIndex))
		case p.LastPlayed:
			out = append([]Condition{s.condition(id, p.NextTrialIndex)}, out...)
		}
	}
	return out
}

// IsDone reports whether subj has nothing left to run.
func (s *Scheduler) IsDone(subj *progress.Subject) bool {
	return len(s.Playable(subj)) == 0
}

// SelectNext assigns the highest-priority playable condition to subj and
// flags it LastPlayed before any trial runs, so an interruption resumes it.
func (s *Scheduler) SelectNext(subj *progress.Subject) (Condition, error) {
	playable := s.Playable(subj)
	if len(playable) == 0 {
		return Condition{}, fmt.Errorf("%w: %q", ErrSubjectDone, subj.Name)
	}
	next := playable[0]
	subj.Ensure(next.ID).LastPlayed = true
	return next, nil
}

// RecordTrialPassed counts one completed trial of c for subj. Reaching the
// trial total clears LastPlayed so the condition never resumes.
func (s *Scheduler) RecordTrialPassed(subj *progress.Subject, c Condition) error {
	p := subj.Entry(c.ID)
	if p == nil {
		return fmt.Errorf("%w: subject %q has no entry for %q", ErrUnknownCondition, subj.Name, c.ID)
	}
	if p.NextTrialIndex >= s.totalTrials {
		return fmt.Errorf("%w: subject %q condition %q", ErrConditionComplete, subj.Name, c.ID)
	}
	p.NextTrialIndex++
	if p.NextTrialIndex == s.totalTrials {
		p.LastPlayed = false
	}
	return nil
}

// Remaining returns how many trials of id subj still has to run.
func (s *Scheduler) Remaining(subj *progress.Subject, id string) int {
	p, _ := subj.Progress(id)
	return s.totalTrials - p.NextTrialIndex
}

func (s *Scheduler) condition(id string, resume int) Condition {
	return Condition{
		ID:               id,
		AssetPath:        s.assets[id],
		DisplayName:      catalog.DisplayName(id),
		ResumeTrialIndex: resume,
	}
}
