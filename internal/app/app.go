package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/primate/internal/logging"
	"github.com/abhisek/primate/internal/progress"
	"github.com/abhisek/primate/internal/router"
	"github.com/abhisek/primate/internal/screen"
	"github.com/abhisek/primate/internal/screens/home"
	trialscreen "github.com/abhisek/primate/internal/screens/session"
	"github.com/abhisek/primate/internal/session"
	"github.com/abhisek/primate/internal/ui/layout"
)

// Options configure the interactive runner.
type Options struct {
	// Session holds everything a trial session needs. Scheduler, Roster and
	// ProgressPath double as the home screen's roster view.
	Session session.Deps

	ImageDir        string
	FeedbackWindow  time.Duration
	InterTrialBlank time.Duration
}

// sessions tracks every session the app created so they can be closed
// on exit.
type sessions struct {
	list []*session.Session
}

func (s *sessions) closeAll(ctx context.Context) error {
	var errs []error
	for _, sess := range s.list {
		if err := sess.Close(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router       *router.Router
	sessions     *sessions
	roster       *progress.Roster
	progressPath string
	logger       *slog.Logger
	width        int
	height       int
}

// newAppModel creates a new AppModel with the subject list as its home
// screen.
func newAppModel(opts Options) (AppModel, error) {
	if _, err := session.New(opts.Session); err != nil {
		return AppModel{}, err
	}
	logger := opts.Session.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	tracked := &sessions{}
	newTrial := func(subject string) screen.Screen {
		// Deps were validated above.
		sess, _ := session.New(opts.Session)
		tracked.list = append(tracked.list, sess)
		logger.Info("session opened", "subject", subject)
		return trialscreen.New(trialscreen.Options{
			Subject:         subject,
			Session:         sess,
			ImageDir:        opts.ImageDir,
			FeedbackWindow:  opts.FeedbackWindow,
			InterTrialBlank: opts.InterTrialBlank,
			InterPelletWait: opts.Session.InterPelletWait,
		})
	}

	homeScreen := home.New(home.Deps{
		Roster:       opts.Session.Roster,
		Scheduler:    opts.Session.Scheduler,
		ProgressPath: opts.Session.ProgressPath,
		NewTrial:     newTrial,
	})
	return AppModel{
		router:       router.New(homeScreen),
		sessions:     tracked,
		roster:       opts.Session.Roster,
		progressPath: opts.Session.ProgressPath,
		logger:       logger,
	}, nil
}

func (m AppModel) Init() tea.Cmd {
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if b, ok := m.router.Active().(screen.BackBlocker); ok && b.BlocksBack() {
				break
			}
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the header, the active screen and the footer.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var subject, condition string
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.StatusProvider); ok {
			subject, condition = sp.Status()
		}
	}

	header := layout.RenderHeader(title, subject, condition, m.width)

	var footerHints []layout.KeyHint
	if kp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = kp.KeyHints()
	}
	if footerHints == nil {
		if m.router.Depth() > 1 {
			footerHints = []layout.KeyHint{
				{Key: "Esc", Description: "Back"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		} else {
			footerHints = []layout.KeyHint{
				{Key: "↑↓", Description: "Navigate"},
				{Key: "Enter", Description: "Select"},
				{Key: "Ctrl+C", Description: "Quit"},
			}
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

// shutdown closes every session and commits the roster, so subjects added
// while a save was failing still reach disk.
func (m AppModel) shutdown(ctx context.Context) error {
	err := m.sessions.closeAll(ctx)
	if saveErr := progress.Save(m.progressPath, m.roster); saveErr != nil {
		m.logger.Error("progress save at shutdown failed", "path", m.progressPath, "error", saveErr)
		err = errors.Join(err, saveErr)
	}
	return err
}

// Run starts the Bubble Tea program and saves progress when it exits.
func Run(opts Options) error {
	m, err := newAppModel(opts)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m)
	_, runErr := p.Run()
	if runErr != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", runErr)
	}
	if err := m.shutdown(context.Background()); err != nil {
		return errors.Join(runErr, err)
	}
	return runErr
}
