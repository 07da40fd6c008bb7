// Package progress owns the durable per-subject progress record: which
// conditions each subject has started and how far into each they are.
//
// All mutation happens in memory on a Roster the caller owns. Nothing is
// written until Save is called.
package progress

import (
	"errors"
	"fmt"
)

var (
	// ErrProgressFileMissing is returned by Load when the file does not exist.
	ErrProgressFileMissing = errors.New("progress file missing")

	// ErrCorruptProgressFile is returned when the file cannot be trusted.
	ErrCorruptProgressFile = errors.New("corrupt progress file")

	// ErrUnknownSubject is returned when a name is not on the roster.
	ErrUnknownSubject = errors.New("unknown subject")

	// ErrDuplicateSubject is returned when adding a name that already exists.
	ErrDuplicateSubject = errors.New("duplicate subject")
)

// CorruptError describes why a progress file was rejected. It matches
// ErrCorruptProgressFile with errors.Is.
type CorruptError struct {
	Path string
	Err  error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt progress file %s: %v", e.Path, e.Err)
}

func (e *CorruptError) Unwrap() []error { return []error{ErrCorruptProgressFile, e.Err} }

// ConditionProgress records how far a subject has advanced through one
// condition and whether it was the condition most recently assigned.
type ConditionProgress struct {
	NextTrialIndex int  `json:"next_trial_index"`
	LastPlayed     bool `json:"last_played"`
}

// Subject is one roster entry. A missing Conditions entry means the
// condition was never attempted.
type Subject struct {
	Name       string                        `json:"name"`
	Conditions map[string]*ConditionProgress `json:"conditions,omitempty"`
}

// Progress returns a copy of the entry for id and whether one exists.
func (s *Subject) Progress(id string) (ConditionProgress, bool) {
	p, ok := s.Conditions[id]
	if !ok || p == nil {
		return ConditionProgress{}, false
	}
	return *p, true
}

// Entry returns the mutable entry for id, or nil if the condition was never
// attempted.
func (s *Subject) Entry(id string) *ConditionProgress {
	return s.Conditions[id]
}

// Ensure returns the entry for id, creating a zero entry on first use.
func (s *Subject) Ensure(id string) *ConditionProgress {
	if s.Conditions == nil {
		s.Conditions = make(map[string]*ConditionProgress)
	}
	p, ok := s.Conditions[id]
	if !ok || p == nil {
		p = &ConditionProgress{}
		s.Conditions[id] = p
	}
	return p
}

// Roster is the full set of subjects in file order.
type Roster struct {
	subjects []*Subject
}

// NewRoster builds a roster of subjects with no progress.
func NewRoster(names ...string) (*Roster, error) {
	r := &Roster{}
	for _, n := range names {
		if err := r.Add(n); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Subjects returns the roster entries in file order.
func (r *Roster) Subjects() []*Subject {
	return r.subjects
}

// Names returns subject names in file order.
func (r *Roster) Names() []string {
	names := make([]string, len(r.subjects))
	for i, s := range r.subjects {
		names[i] = s.Name
	}
	return names
}

// Subject looks up a subject by name.
func (r *Roster) Subject(name string) (*Subject, error) {
	for _, s := range r.subjects {
		if s.Name == name {
			return s, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownSubject, name)
}

// Add appends a subject with no progress.
func (r *Roster) Add(name string) error {
	if name == "" {
		return errors.New("subject name is empty")
	}
	if _, err := r.Subject(name); err == nil {
		return fmt.Errorf("%w: %q", ErrDuplicateSubject, name)
	}
	r.subjects = append(r.subjects, &Subject{Name: name})
	return nil
}

// Validate checks every entry against the run's trial count. A file written
// for a larger trial count than the current configuration is rejected
// rather than clamped.
func (r *Roster) Validate(totalTrials int) error {
	for _, s := range r.subjects {
		for id, p := range s.Conditions {
			if p.NextTrialIndex < 0 || p.NextTrialIndex > totalTrials {
				return fmt.Errorf("%w: subject %q condition %q: next_trial_index %d outside [0, %d]",
					ErrCorruptProgressFile, s.Name, id, p.NextTrialIndex, totalTrials)
			}
		}
	}
	return nil
}
