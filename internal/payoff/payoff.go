// Package payoff reads the pellet payoff schedules that decide how many
// pellets each card choice is worth.
//
// A schedule is a CSV file with one row per trial. The first column of each
// row is the pellet count; any further columns are ignored.
package payoff

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrScheduleExhausted is returned when a schedule has no rows left.
	ErrScheduleExhausted = errors.New("payoff schedule exhausted")

	// ErrInvalidRow is returned for a row whose first column is not a
	// non-negative integer.
	ErrInvalidRow = errors.New("invalid payoff row")
)

// Schedule is a forward-only reader over a payoff CSV.
type Schedule struct {
	path   string
	file   io.Closer
	reader *csv.Reader
	row    int

	// pending holds a row read by Peek and not yet consumed.
	pending    int
	hasPending bool
}

// Open opens the schedule at path.
func Open(path string) (*Schedule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open payoff schedule: %w", err)
	}
	s := NewReader(f)
	s.path = path
	s.file = f
	return s, nil
}

// NewReader reads a schedule from r. The caller keeps ownership of r.
func NewReader(r io.Reader) *Schedule {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	return &Schedule{reader: cr}
}

// Path returns the file the schedule was opened from, if any.
func (s *Schedule) Path() string {
	return s.path
}

// Position returns how many rows have been consumed.
func (s *Schedule) Position() int {
	if s.hasPending {
		return s.row - 1
	}
	return s.row
}

// Peek returns the pellet count Next would return without consuming it.
func (s *Schedule) Peek() (int, error) {
	if s.hasPending {
		return s.pending, nil
	}
	n, err := s.read()
	if err != nil {
		return 0, err
	}
	s.pending, s.hasPending = n, true
	return n, nil
}

// Next returns the pellet count for the next trial.
func (s *Schedule) Next() (int, error) {
	if s.hasPending {
		s.hasPending = false
		return s.pending, nil
	}
	return s.read()
}

func (s *Schedule) read() (int, error) {
	rec, err := s.reader.Read()
	if errors.Is(err, io.EOF) {
		return 0, fmt.Errorf("%w after %d rows", ErrScheduleExhausted, s.row)
	}
	if err != nil {
		return 0, fmt.Errorf("read payoff row %d: %w", s.row+1, err)
	}
	s.row++

	n, err := strconv.Atoi(strings.TrimSpace(rec[0]))
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: row %d: %q", ErrInvalidRow, s.row, rec[0])
	}
	return n, nil
}

// Skip discards n rows so that the next call to Next returns the payoff for
// trial index n when resuming a condition.
func (s *Schedule) Skip(n int) error {
	if n > 0 && s.hasPending {
		s.hasPending = false
		n--
	}
	for i := 0; i < n; i++ {
		if _, err := s.reader.Read(); err != nil {
			if errors.Is(err, io.EOF) {
				return fmt.Errorf("%w: skipping to row %d", ErrScheduleExhausted, n)
			}
			return fmt.Errorf("skip payoff row %d: %w", s.row+1, err)
		}
		s.row++
	}
	return nil
}

// Close releases the underlying file.
func (s *Schedule) Close() error {
	if s.file == nil {
		return nil
	}
	return s.file.Close()
}

// Pair holds the safe and risky schedules used for one session.
type Pair struct {
	Safe  *Schedule
	Risky *Schedule
}

// OpenPair opens both schedules and advances each to resumeIndex.
func OpenPair(safePath, riskyPath string, resumeIndex int) (*Pair, error) {
	safe, err := Open(safePath)
	if err != nil {
		return nil, err
	}
	risky, err := Open(riskyPath)
	if err != nil {
		safe.Close()
		return nil, err
	}
	p := &Pair{Safe: safe, Risky: risky}
	if err := p.Skip(resumeIndex); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

// Skip advances both schedules by n rows.
func (p *Pair) Skip(n int) error {
	if err := p.Safe.Skip(n); err != nil {
		return fmt.Errorf("safe schedule: %w", err)
	}
	if err := p.Risky.Skip(n); err != nil {
		return fmt.Errorf("risky schedule: %w", err)
	}
	return nil
}

// Close closes both schedules.
func (p *Pair) Close() error {
	return errors.Join(p.Safe.Close(), p.Risky.Close())
}
