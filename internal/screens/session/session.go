package session

import (
	"context"
	"errors"
	"math/rand/v2"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/primate/internal/catalog"
	"github.com/abhisek/primate/internal/router"
	"github.com/abhisek/primate/internal/scheduler"
	"github.com/abhisek/primate/internal/screen"
	"github.com/abhisek/primate/internal/screens/summary"
	sess "github.com/abhisek/primate/internal/session"
	"github.com/abhisek/primate/internal/ui/layout"
)

// slotCount is the number of card positions on the trial screen.
const slotCount = 7

type phase int

const (
	phaseStarting phase = iota // Waiting for the condition assignment
	phasePrompt                // Waiting for the operator to start a trial
	phaseTrial                 // Cards shown
	phaseFeedback              // Choice made, pellets dispensing
	phaseBlank                 // Inter-trial blank
	phaseError                 // Unrecoverable error shown
)

// Options configure a trial screen.
type Options struct {
	Subject string
	Session *sess.Session

	// ImageDir holds optional per-condition card images.
	ImageDir string

	FeedbackWindow  time.Duration
	InterTrialBlank time.Duration
	InterPelletWait time.Duration

	// Rand places the cards; nil uses a random source.
	Rand *rand.Rand
	Now  func() time.Time
}

// SessionScreen runs trials for one subject.
type SessionScreen struct {
	opts      Options
	phase     phase
	condition scheduler.Condition
	images    catalog.CardImages

	left, right int // card slot indices
	trialStart  time.Time
	chosen      sess.Card
	pellets     int
	dispensed   int

	showingQuitConfirm bool
	errMsg             string
}

var _ screen.Screen = (*SessionScreen)(nil)
var _ screen.KeyHintProvider = (*SessionScreen)(nil)
var _ screen.StatusProvider = (*SessionScreen)(nil)
var _ screen.BackBlocker = (*SessionScreen)(nil)

// New creates a trial screen. The session is started by Init.
func New(opts Options) *SessionScreen {
	if opts.Rand == nil {
		opts.Rand = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &SessionScreen{opts: opts, phase: phaseStarting}
}

func (s *SessionScreen) Init() tea.Cmd {
	return s.startSession()
}

func (s *SessionScreen) Title() string {
	return "Trial"
}

func (s *SessionScreen) Status() (string, string) {
	return s.opts.Subject, s.condition.DisplayName
}

// BlocksBack keeps Esc from leaving a running session; it asks to quit
// instead.
func (s *SessionScreen) BlocksBack() bool {
	return s.phase != phaseError
}

func (s *SessionScreen) KeyHints() []layout.KeyHint {
	if s.showingQuitConfirm {
		return []layout.KeyHint{
			{Key: "Y", Description: "Save and quit"},
			{Key: "N", Description: "Keep going"},
		}
	}
	switch s.phase {
	case phasePrompt:
		return []layout.KeyHint{
			{Key: "Space", Description: "Start trial"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseTrial:
		return []layout.KeyHint{
			{Key: "1-7", Description: "Touch slot"},
			{Key: "V", Description: "Touch video"},
			{Key: "Esc", Description: "Quit"},
		}
	case phaseError:
		return []layout.KeyHint{
			{Key: "any key", Description: "Back"},
		}
	}
	return nil
}

func (s *SessionScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case sessionStartedMsg:
		return s.handleStarted(msg)

	case dispensedMsg:
		s.dispensed = msg.Dispensed
		return s, nil

	case feedbackDoneMsg:
		return s.handleFeedbackDone()

	case blankDoneMsg:
		return s.handleBlankDone()

	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

// startSession assigns the subject's next condition. Start runs here on the
// UI goroutine, which owns the session; only the result is delivered as a
// message.
func (s *SessionScreen) startSession() tea.Cmd {
	cond, err := s.opts.Session.Start(context.Background(), s.opts.Subject)
	return func() tea.Msg {
		return sessionStartedMsg{Condition: cond, Err: err}
	}
}

func (s *SessionScreen) handleStarted(msg sessionStartedMsg) (screen.Screen, tea.Cmd) {
	s.condition = msg.Condition
	if msg.Err != nil {
		s.fail(msg.Err)
		return s, nil
	}
	s.images = catalog.Images(s.opts.ImageDir, msg.Condition.ID)
	if s.opts.Session.Finished() {
		return s, s.showSummary()
	}
	s.phase = phasePrompt
	return s, nil
}

func (s *SessionScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.phase == phaseError {
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	}

	if s.showingQuitConfirm {
		switch key {
		case "y", "Y":
			s.showingQuitConfirm = false
			return s, tea.Quit
		case "n", "N", "esc":
			s.showingQuitConfirm = false
		}
		return s, nil
	}

	if key == "esc" {
		s.showingQuitConfirm = true
		return s, nil
	}

	switch s.phase {
	case phasePrompt:
		if key == "space" || key == " " || key == "enter" {
			return s.beginTrial()
		}
	case phaseTrial:
		if key == "v" || key == "V" {
			s.opts.Session.TouchVideo()
			return s, nil
		}
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= slotCount {
			return s.touchSlot(n - 1)
		}
	}
	return s, nil
}

func (s *SessionScreen) beginTrial() (screen.Screen, tea.Cmd) {
	now := s.opts.Now()
	if _, err := s.opts.Session.BeginTrial(now); err != nil {
		if errors.Is(err, sess.ErrConditionFinished) {
			return s, s.showSummary()
		}
		s.fail(err)
		return s, nil
	}
	s.left, s.right = placeCards(s.opts.Rand, slotCount)
	s.trialStart = now
	s.phase = phaseTrial
	return s, nil
}

func (s *SessionScreen) touchSlot(slot int) (screen.Screen, tea.Cmd) {
	switch slot {
	case s.left:
		return s.choose(sess.CardSafe)
	case s.right:
		return s.choose(sess.CardRisky)
	}
	s.opts.Session.TouchBackground()
	return s, nil
}

func (s *SessionScreen) choose(card sess.Card) (screen.Screen, tea.Cmd) {
	latency := s.opts.Now().Sub(s.trialStart)
	pellets, err := s.opts.Session.Choose(context.Background(), card, latency)
	if err != nil {
		s.fail(err)
		return s, nil
	}
	s.chosen = card
	s.pellets = pellets
	s.dispensed = 0
	s.phase = phaseFeedback

	wait := sess.FeedbackRemainder(s.opts.FeedbackWindow, s.opts.InterPelletWait, pellets)
	return s, tea.Batch(
		s.dispense(pellets),
		tea.Tick(wait, func(time.Time) tea.Msg { return feedbackDoneMsg{} }),
	)
}

// dispense drops the pellets off the UI goroutine.
func (s *SessionScreen) dispense(n int) tea.Cmd {
	if n == 0 {
		return nil
	}
	session := s.opts.Session
	return func() tea.Msg {
		got := session.Dispense(context.Background(), n)
		return dispensedMsg{Requested: n, Dispensed: got}
	}
}

func (s *SessionScreen) handleFeedbackDone() (screen.Screen, tea.Cmd) {
	if s.phase != phaseFeedback {
		return s, nil
	}
	s.phase = phaseBlank
	return s, tea.Tick(s.opts.InterTrialBlank, func(time.Time) tea.Msg { return blankDoneMsg{} })
}

func (s *SessionScreen) handleBlankDone() (screen.Screen, tea.Cmd) {
	if s.phase != phaseBlank {
		return s, nil
	}
	if s.opts.Session.Finished() {
		return s, s.showSummary()
	}
	s.phase = phasePrompt
	return s, nil
}

func (s *SessionScreen) showSummary() tea.Cmd {
	sum := summary.New(s.opts.Session.Summary(), s.condition.DisplayName)
	return func() tea.Msg {
		return router.ReplaceScreenMsg{Screen: sum}
	}
}

func (s *SessionScreen) fail(err error) {
	s.phase = phaseError
	s.errMsg = err.Error()
}

// placeCards picks two distinct slots for the left and right cards.
func placeCards(r *rand.Rand, slots int) (left, right int) {
	left = r.IntN(slots)
	right = r.IntN(slots - 1)
	if right >= left {
		right++
	}
	return left, right
}
