// Package employee is the screen that collects the employee id and
// submits the answers.
package employee

import (
	"context"
	"errors"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/dqi/internal/router"
	"github.com/abhisek/dqi/internal/screen"
	"github.com/abhisek/dqi/internal/session"
	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/abhisek/dqi/internal/ui/components"
	"github.com/abhisek/dqi/internal/ui/layout"
)

// Submitter sends a finished answer set.
type Submitter interface {
	Submit(ctx context.Context, empID string, answers map[string]string) (*surveyapi.Ack, error)
}

// Exporter writes one employee's workbook.
type Exporter interface {
	ExportOne(ctx context.Context, empID string) (string, error)
}

// Deps are the services the screen talks to.
type Deps struct {
	Submitter Submitter

	// Exporter runs after a successful submit. Optional.
	Exporter Exporter

	Log     *zap.Logger
	Timeout time.Duration
	Now     func() time.Time
}

func (d Deps) withDefaults() Deps {
	if d.Log == nil {
		d.Log = zap.NewNop()
	}
	if d.Timeout <= 0 {
		d.Timeout = 30 * time.Second
	}
	if d.Now == nil {
		d.Now = time.Now
	}
	return d
}

// EmployeeScreen implements screen.Screen for employee id entry and submit.
type EmployeeScreen struct {
	deps   Deps
	state  *session.State
	input  components.TextInput
	menu   components.Menu
	errMsg string

	// exportNote explains a failed post-submit export.
	exportNote string
}

var _ screen.Screen = (*EmployeeScreen)(nil)
var _ screen.KeyHintProvider = (*EmployeeScreen)(nil)
var _ screen.BackHandler = (*EmployeeScreen)(nil)

// New creates an EmployeeScreen for state.
func New(state *session.State, deps Deps) *EmployeeScreen {
	s := &EmployeeScreen{
		deps:  deps.withDefaults(),
		state: state,
		input: components.NewTextInput("A1234", components.AlphaNumeric, 5),
	}
	if state.EmpID != "" {
		s.input.SetValue(state.EmpID)
	}
	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "Start a new survey", Action: s.restart},
		{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }},
	})
	return s
}

func (s *EmployeeScreen) Init() tea.Cmd {
	return s.input.Init()
}

func (s *EmployeeScreen) Title() string {
	return "Submit Survey"
}

func (s *EmployeeScreen) HandlesBack() bool { return true }

func (s *EmployeeScreen) KeyHints() []layout.KeyHint {
	switch s.state.Phase {
	case session.PhaseSubmitting:
		return nil
	case session.PhaseDone:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
		}
	}
	hint := "Submit"
	if s.state.SubmitError != "" {
		hint = "Retry"
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: hint},
		{Key: "Esc", Description: "Back to review"},
	}
}

func (s *EmployeeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submitResultMsg:
		return s.handleSubmitResult(msg)
	case exportResultMsg:
		return s.handleExportResult(msg)
	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *EmployeeScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch s.state.Phase {
	case session.PhaseSubmitting:
		return s, nil
	case session.PhaseDone:
		var cmd tea.Cmd
		s.menu, cmd = s.menu.Update(msg)
		return s, cmd
	}

	switch msg.String() {
	case "esc":
		s.state.BackToReview()
		return s, func() tea.Msg { return router.PopScreenMsg{} }
	case "enter":
		return s.submit()
	}

	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	s.errMsg = ""
	return s, cmd
}

func (s *EmployeeScreen) submit() (screen.Screen, tea.Cmd) {
	if err := s.state.BeginSubmit(s.input.Value()); err != nil {
		s.input.Submit(false)
		s.errMsg = err.Error()
		return s, nil
	}
	s.input.Submit(true)
	s.errMsg = ""

	empID := s.state.EmpID
	answers := s.state.Snapshot()
	deps := s.deps
	sessionID := s.state.ID
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Timeout)
		defer cancel()
		deps.Log.Info("submitting survey",
			zap.String("session_id", sessionID),
			zap.String("emp_id", empID),
			zap.Int("answers", len(answers)),
		)
		ack, err := deps.Submitter.Submit(ctx, empID, answers)
		return submitResultMsg{ack: ack, err: err}
	}
}

func (s *EmployeeScreen) handleSubmitResult(msg submitResultMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		reason := msg.err.Error()
		var se *surveyapi.SubmissionError
		if errors.As(msg.err, &se) {
			reason = se.Reason
		}
		s.deps.Log.Warn("submission failed",
			zap.String("session_id", s.state.ID),
			zap.String("emp_id", s.state.EmpID),
			zap.Error(msg.err),
		)
		s.state.SubmitFailed(reason)
		return s, nil
	}

	s.state.SubmitSucceeded(msg.ack, s.deps.Now())
	s.deps.Log.Info("submission acknowledged",
		zap.String("session_id", s.state.ID),
		zap.String("emp_id", s.state.EmpID),
		zap.Int64("submission_id", s.state.Summary.SubmissionID),
	)
	if s.deps.Exporter == nil {
		return s, nil
	}

	empID := s.state.EmpID
	deps := s.deps
	return s, func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Timeout)
		defer cancel()
		path, err := deps.Exporter.ExportOne(ctx, empID)
		return exportResultMsg{path: path, err: err}
	}
}

// handleExportResult records the export path. A failed export does not
// undo the submission; it is logged and noted on screen.
func (s *EmployeeScreen) handleExportResult(msg exportResultMsg) (screen.Screen, tea.Cmd) {
	if msg.err != nil {
		s.deps.Log.Warn("post-submit export failed",
			zap.String("emp_id", s.state.EmpID),
			zap.Error(msg.err),
		)
		s.exportNote = "Your answers were saved, but the spreadsheet export failed."
		return s, nil
	}
	if s.state.Summary != nil {
		s.state.Summary.ExportPath = msg.path
	}
	return s, nil
}

func (s *EmployeeScreen) restart() tea.Cmd {
	s.state.Restart(s.deps.Now())
	return func() tea.Msg { return router.PopToRootMsg{} }
}
