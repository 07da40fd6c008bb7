// Package session drives one subject through the trials of its assigned
// condition. It is the engine's caller: it asks the scheduler for a
// condition, logs every trial, counts it against the subject's progress and
// commits the roster when the condition completes or the session closes.
//
// Session is not safe for concurrent use; the UI goroutine owns it.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/abhisek/primate/internal/dispenser"
	"github.com/abhisek/primate/internal/logging"
	"github.com/abhisek/primate/internal/payoff"
	"github.com/abhisek/primate/internal/progress"
	"github.com/abhisek/primate/internal/scheduler"
	"github.com/abhisek/primate/internal/store"
	"github.com/abhisek/primate/internal/trial"
)

var (
	// ErrConditionFinished is returned by BeginTrial once the assigned
	// condition has run all of its trials.
	ErrConditionFinished = errors.New("condition finished")

	// ErrNoActiveTrial is returned when a trial event arrives outside a trial.
	ErrNoActiveTrial = errors.New("no active trial")

	// ErrNotStarted is returned when a trial is requested before Start.
	ErrNotStarted = errors.New("session not started")
)

// Deps are the collaborators a Session needs. Scheduler, Roster and
// ProgressPath are required; the rest have working defaults.
type Deps struct {
	Scheduler    *scheduler.Scheduler
	Roster       *progress.Roster
	ProgressPath string

	// TrialLogDir holds the per-subject CSV logs.
	TrialLogDir string

	// SafePayoff and RiskyPayoff are the schedule CSVs for each card.
	SafePayoff  string
	RiskyPayoff string

	Dispenser       dispenser.Dispenser
	InterPelletWait time.Duration

	// Events mirrors sessions and trials into SQLite (nil disables).
	Events store.EventRepo

	Logger *slog.Logger
	Now    func() time.Time
	NewID  func() string
}

// Session runs trials for one subject and one condition.
type Session struct {
	deps Deps

	id        string
	phase     Phase
	subject   *progress.Subject
	condition scheduler.Condition
	payoffs   *payoff.Pair
	log       *trial.Log
	current   *trial.Record
	startedAt time.Time
	summary   Summary
	finished  bool
	endLogged bool
}

// New validates deps and returns an idle session.
func New(deps Deps) (*Session, error) {
	if deps.Scheduler == nil {
		return nil, errors.New("session: scheduler is required")
	}
	if deps.Roster == nil {
		return nil, errors.New("session: roster is required")
	}
	if deps.ProgressPath == "" {
		return nil, errors.New("session: progress path is required")
	}
	if deps.Dispenser == nil {
		deps.Dispenser = &dispenser.Noop{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.NewID == nil {
		deps.NewID = uuid.NewString
	}
	return &Session{deps: deps, phase: PhaseIdle}, nil
}

// Start assigns the next condition to the named subject, positions both
// payoff schedules at the resume index and opens the subject's trial log.
func (s *Session) Start(ctx context.Context, name string) (scheduler.Condition, error) {
	if s.phase != PhaseIdle {
		return scheduler.Condition{}, fmt.Errorf("session already started for %q", s.summary.Subject)
	}

	subj, err := s.deps.Roster.Subject(name)
	if err != nil {
		return scheduler.Condition{}, err
	}
	cond, err := s.deps.Scheduler.SelectNext(subj)
	if err != nil {
		return scheduler.Condition{}, err
	}

	payoffs, err := payoff.OpenPair(s.deps.SafePayoff, s.deps.RiskyPayoff, cond.ResumeTrialIndex)
	if err != nil {
		return scheduler.Condition{}, fmt.Errorf("open payoff schedules: %w", err)
	}
	log, err := trial.OpenLog(s.deps.TrialLogDir, subj.Name)
	if err != nil {
		payoffs.Close()
		return scheduler.Condition{}, err
	}

	s.id = s.deps.NewID()
	s.subject = subj
	s.condition = cond
	s.payoffs = payoffs
	s.log = log
	s.startedAt = s.deps.Now()
	s.phase = PhaseReady
	s.summary = Summary{
		SessionID:        s.id,
		Subject:          subj.Name,
		Condition:        cond.ID,
		ResumeTrialIndex: cond.ResumeTrialIndex,
	}

	s.logger().Info("condition assigned",
		"resume_trial", cond.ResumeTrialIndex,
		"asset", cond.AssetPath,
		"trial_log", log.Path(),
	)
	s.mirrorSession(ctx, store.ActionStart)

	if s.Remaining() == 0 {
		// Complete but still flagged: nothing to run, so the flag is
		// cleared as any completion would.
		s.subject.Ensure(cond.ID).LastPlayed = false
		return cond, s.complete(ctx)
	}
	return cond, nil
}

// ID returns the session UUID ("" before Start).
func (s *Session) ID() string {
	return s.id
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Subject returns the subject name ("" before Start).
func (s *Session) Subject() string {
	if s.subject == nil {
		return ""
	}
	return s.subject.Name
}

// Condition returns the assigned condition.
func (s *Session) Condition() scheduler.Condition {
	return s.condition
}

// NextTrialIndex returns the zero-based index of the next trial to run.
func (s *Session) NextTrialIndex() int {
	if s.subject == nil {
		return 0
	}
	p, _ := s.subject.Progress(s.condition.ID)
	return p.NextTrialIndex
}

// Remaining returns how many trials of the condition are left.
func (s *Session) Remaining() int {
	if s.subject == nil {
		return 0
	}
	return s.deps.Scheduler.Remaining(s.subject, s.condition.ID)
}

// Finished reports whether the assigned condition has no trials left.
func (s *Session) Finished() bool {
	return s.finished
}

// Current returns the trial in progress, or nil between trials.
func (s *Session) Current() *trial.Record {
	return s.current
}

// Summary returns the counts so far.
func (s *Session) Summary() Summary {
	sum := s.summary
	if !s.startedAt.IsZero() {
		sum.Duration = s.deps.Now().Sub(s.startedAt)
	}
	return sum
}

// BeginTrial starts the next trial at now.
func (s *Session) BeginTrial(now time.Time) (*trial.Record, error) {
	switch s.phase {
	case PhaseIdle:
		return nil, ErrNotStarted
	case PhaseComplete, PhaseClosed:
		return nil, ErrConditionFinished
	case PhaseTrial:
		return s.current, nil
	}
	if s.Remaining() == 0 {
		return nil, ErrConditionFinished
	}
	s.current = trial.New(s.subject.Name, s.condition.DisplayName, s.NextTrialIndex(), now)
	s.phase = PhaseTrial
	return s.current, nil
}

// TouchBackground counts a touch on an empty card slot.
func (s *Session) TouchBackground() {
	if s.current != nil {
		s.current.BackgroundTouches++
	}
}

// TouchVideo counts a touch on the condition video.
func (s *Session) TouchVideo() {
	if s.current != nil {
		s.current.VideoTouches++
	}
}

// Choose completes the current trial with card, chosen latency after the
// trial began. It returns the pellet count from that card's schedule.
//
// The row is written to the trial log before the trial is counted against
// the subject's progress. When the count completes the condition the roster
// is saved.
func (s *Session) Choose(ctx context.Context, card Card, latency time.Duration) (int, error) {
	if s.current == nil {
		return 0, ErrNoActiveTrial
	}

	sched := s.payoffs.Safe
	if card == CardRisky {
		sched = s.payoffs.Risky
	}
	// The row stays unconsumed until the trial is logged, so a failed
	// write leaves the schedule aligned with the trial index.
	pellets, err := sched.Peek()
	if err != nil {
		return 0, fmt.Errorf("%s payoff: %w", card, err)
	}

	rec := s.current
	rec.CardSelected = card.String()
	rec.ChoiceLatency = latency
	rec.PelletsDispensed = pellets
	if err := s.log.Append(rec); err != nil {
		return 0, err
	}
	if _, err := sched.Next(); err != nil {
		return 0, fmt.Errorf("%s payoff: %w", card, err)
	}
	s.mirrorTrial(ctx, rec, card)

	if err := s.deps.Scheduler.RecordTrialPassed(s.subject, s.condition); err != nil {
		return 0, err
	}
	s.current = nil
	s.phase = PhaseReady

	s.summary.TrialsRun++
	s.summary.Pellets += pellets
	if card == CardRisky {
		s.summary.RiskyChoices++
	} else {
		s.summary.SafeChoices++
	}

	s.logger().Info("trial recorded",
		"trial", rec.TrialIndex,
		"card", rec.CardSelected,
		"pellets", pellets,
		"latency", latency,
		"background_touches", rec.BackgroundTouches,
		"video_touches", rec.VideoTouches,
	)

	if s.Remaining() == 0 {
		if err := s.complete(ctx); err != nil {
			return pellets, err
		}
	}
	return pellets, nil
}

// Dispense releases n pellets. Dispenser failures are logged and never fail
// the trial; the return value is how many pellets actually dropped.
func (s *Session) Dispense(ctx context.Context, n int) int {
	got, err := dispenser.DispenseN(ctx, s.deps.Dispenser, n, s.deps.InterPelletWait)
	if err != nil {
		s.logger().Warn("dispense failed", "requested", n, "dispensed", got, "error", err)
	}
	return got
}

// Close saves the roster and releases the payoff schedules. It is safe to
// call more than once.
func (s *Session) Close(ctx context.Context) error {
	if s.phase == PhaseClosed {
		return nil
	}
	prev := s.phase
	s.phase = PhaseClosed

	var errs []error
	if prev != PhaseIdle {
		if err := s.save(); err != nil {
			errs = append(errs, err)
		}
		s.mirrorEnd(ctx)
	}
	if s.payoffs != nil {
		if err := s.payoffs.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close payoff schedules: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *Session) complete(ctx context.Context) error {
	s.phase = PhaseComplete
	s.finished = true
	s.logger().Info("condition complete", "trials_run", s.summary.TrialsRun)
	err := s.save()
	s.mirrorEnd(ctx)
	return err
}

func (s *Session) save() error {
	if err := progress.Save(s.deps.ProgressPath, s.deps.Roster); err != nil {
		s.logger().Error("progress save failed", "path", s.deps.ProgressPath, "error", err)
		return err
	}
	s.logger().Info("progress saved", "path", s.deps.ProgressPath)
	return nil
}

func (s *Session) logger() *slog.Logger {
	return s.deps.Logger.With(
		"session_id", s.id,
		"subject", s.Subject(),
		"condition", s.condition.ID,
	)
}

func (s *Session) mirrorEnd(ctx context.Context) {
	if s.endLogged {
		return
	}
	s.endLogged = true
	s.mirrorSession(ctx, store.ActionEnd)
}

func (s *Session) mirrorSession(ctx context.Context, action string) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendSessionEvent(ctx, store.SessionEventData{
		SessionID:        s.id,
		Subject:          s.Subject(),
		Condition:        s.condition.ID,
		Action:           action,
		ResumeTrialIndex: s.condition.ResumeTrialIndex,
		TrialsRun:        s.summary.TrialsRun,
	})
	if err != nil {
		s.logger().Warn("mirror session event failed", "action", action, "error", err)
	}
}

func (s *Session) mirrorTrial(ctx context.Context, rec *trial.Record, card Card) {
	if s.deps.Events == nil {
		return
	}
	err := s.deps.Events.AppendTrialEvent(ctx, store.TrialEventData{
		SessionID:         s.id,
		Subject:           rec.Subject,
		Condition:         s.condition.ID,
		TrialIndex:        rec.TrialIndex,
		Card:              card.String(),
		Pellets:           rec.PelletsDispensed,
		BackgroundTouches: rec.BackgroundTouches,
		VideoTouches:      rec.VideoTouches,
		Latency:           rec.ChoiceLatency,
	})
	if err != nil {
		s.logger().Warn("mirror trial event failed", "trial", rec.TrialIndex, "error", err)
	}
}

// FeedbackRemainder returns how long the feedback screen stays up after the
// pellets have been dispensed, so that choice to blank takes window overall.
func FeedbackRemainder(window, interPelletWait time.Duration, pellets int) time.Duration {
	d := window - time.Duration(pellets)*interPelletWait
	if d < 0 {
		return 0
	}
	return d
}
