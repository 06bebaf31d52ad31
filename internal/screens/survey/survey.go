// Package survey is the main questionnaire screen: an accordion of
// categories and subcategories with one option list per question.
package survey

import (
	"context"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/dqi/internal/answers"
	"github.com/abhisek/dqi/internal/completeness"
	"github.com/abhisek/dqi/internal/questionbank"
	"github.com/abhisek/dqi/internal/router"
	"github.com/abhisek/dqi/internal/screen"
	"github.com/abhisek/dqi/internal/screens/employee"
	"github.com/abhisek/dqi/internal/screens/review"
	"github.com/abhisek/dqi/internal/session"
	"github.com/abhisek/dqi/internal/ui/components"
	"github.com/abhisek/dqi/internal/ui/layout"
)

// Questions loads question sets and exposes the ones already loaded.
type Questions interface {
	Load(ctx context.Context, name string) ([]questionbank.Question, error)
	Cached(name string) ([]questionbank.Question, bool)
}

// Validator runs the completeness check.
type Validator interface {
	Check(ctx context.Context, ans completeness.Answers) (*completeness.Result, error)
}

// Deps are the services the survey flow talks to.
type Deps struct {
	Questions Questions
	Validator Validator

	// Employee is handed to the employee id screen.
	Employee employee.Deps

	Log     *zap.Logger
	Timeout time.Duration
	Now     func() time.Time
}

// SurveyScreen implements screen.Screen for the questionnaire.
type SurveyScreen struct {
	deps  Deps
	state *session.State

	cursor   int
	loading  map[string]bool
	loadErrs map[string]error
	checking bool

	// optCursor remembers the option cursor per question.
	optCursor map[answers.Key]int

	// sessionID detects a restarted session so the cursor can reset.
	sessionID string

	status    string
	statusErr bool
}

var _ screen.Screen = (*SurveyScreen)(nil)
var _ screen.KeyHintProvider = (*SurveyScreen)(nil)
var _ screen.StatusProvider = (*SurveyScreen)(nil)

// New creates a SurveyScreen over state.
func New(state *session.State, deps Deps) *SurveyScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = 30 * time.Second
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Employee.Now == nil {
		deps.Employee.Now = deps.Now
	}
	return &SurveyScreen{
		deps:      deps,
		state:     state,
		loading:   make(map[string]bool),
		loadErrs:  make(map[string]error),
		optCursor: make(map[answers.Key]int),
		sessionID: state.ID,
	}
}

// Init starts loading every question set in the background so progress
// can be counted before a section is opened.
func (s *SurveyScreen) Init() tea.Cmd {
	var cmds []tea.Cmd
	for _, name := range s.state.Tree.DatasetNames() {
		cmds = append(cmds, s.load(name))
	}
	return tea.Batch(cmds...)
}

func (s *SurveyScreen) Title() string {
	return "Data Quality Index Survey"
}

// Status shows answered against known questions.
func (s *SurveyScreen) Status() string {
	p := s.progress()
	return fmt.Sprintf("%d/%d answered", p.Answered, p.Total)
}

func (s *SurveyScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open/Choose"},
	}
	if r, ok := s.current(); ok && r.kind == rowQuestion {
		hints = append(hints, layout.KeyHint{Key: "←→/1-9", Description: "Option"})
	}
	return append(hints,
		layout.KeyHint{Key: "r", Description: "Reset section"},
		layout.KeyHint{Key: "s", Description: "Submit"},
		layout.KeyHint{Key: "q", Description: "Quit"},
	)
}

func (s *SurveyScreen) progress() session.Progress {
	return s.state.Progress(s.deps.Questions.Cached)
}

func (s *SurveyScreen) rows() []row {
	return s.buildRows(s.state.Panels(s.deps.Now()))
}

func (s *SurveyScreen) current() (row, bool) {
	rows := s.rows()
	if s.cursor < 0 || s.cursor >= len(rows) {
		return row{}, false
	}
	return rows[s.cursor], true
}

func (s *SurveyScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if s.sessionID != s.state.ID {
		s.restarted()
	}

	switch msg := msg.(type) {
	case questionsLoadedMsg:
		s.handleLoaded(msg)
		return s, nil
	case validationMsg:
		return s.handleValidation(msg)
	case highlightExpiredMsg:
		s.state.ExpireHighlight(s.deps.Now())
		return s, nil
	case tea.KeyMsg:
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *SurveyScreen) restarted() {
	s.sessionID = s.state.ID
	s.cursor = 0
	s.checking = false
	clear(s.optCursor)
	s.status = "Started a new survey"
	s.statusErr = false
}

func (s *SurveyScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		s.move(-1)
		return s, nil
	case "down", "j":
		s.move(1)
		return s, nil
	case "q":
		return s, tea.Quit
	case "r":
		s.reset()
		return s, nil
	case "s":
		return s, s.submit()
	}

	r, ok := s.current()
	if !ok {
		return s, nil
	}
	switch r.kind {
	case rowCategory:
		if k := msg.String(); k == "enter" || k == "space" {
			s.state.ToggleCategory(r.category.ID)
			s.focusHeader(r)
		}
	case rowSubcategory:
		if k := msg.String(); k == "enter" || k == "space" {
			s.state.ToggleSubcategory(r.category.ID, r.subcategory)
			s.focusHeader(r)
			return s, s.ensureLoaded(r.subcategory)
		}
	case rowQuestion:
		s.answer(r, msg)
	}
	return s, nil
}

// move steps the cursor over selectable rows.
func (s *SurveyScreen) move(dir int) {
	rows := s.rows()
	for i := s.cursor + dir; i >= 0 && i < len(rows); i += dir {
		if rows[i].selectable() {
			s.cursor = i
			return
		}
	}
}

// focusHeader keeps the cursor on a header row after the accordion changed
// shape above it.
func (s *SurveyScreen) focusHeader(r row) {
	i := find(s.rows(), func(o row) bool {
		return o.kind == r.kind && o.category.ID == r.category.ID && o.subcategory == r.subcategory
	})
	if i >= 0 {
		s.cursor = i
	}
}

func (s *SurveyScreen) answer(r row, msg tea.KeyMsg) {
	chosen, _ := s.state.Answers.Get(r.category.Title, r.subcategory, r.question.ID)
	list := components.NewOptionList(r.question.Question, r.question.Options, chosen)
	list.Cursor = s.optionCursor(r, list.Cursor)

	list, cmd := list.Update(msg)
	s.setOptionCursor(r, list.Cursor)
	if cmd == nil {
		return
	}
	s.state.Select(r.category.Title, r.subcategory, r.question.ID, list.Chosen)
	s.status = ""
}

func (s *SurveyScreen) optionCursor(r row, def int) int {
	if c, ok := s.optCursor[r.key()]; ok {
		return c
	}
	return def
}

func (s *SurveyScreen) setOptionCursor(r row, c int) {
	s.optCursor[r.key()] = c
}

// reset clears the answers of the subcategory under the cursor.
func (s *SurveyScreen) reset() {
	r, ok := s.current()
	if !ok || r.kind == rowCategory {
		s.status = "Move to a section to reset it"
		s.statusErr = false
		return
	}
	n := s.state.Reset(r.category.Title, r.subcategory)
	s.deps.Log.Info("reset subcategory",
		zap.String("session_id", s.state.ID),
		zap.String("category", r.category.Title),
		zap.String("subcategory", r.subcategory),
		zap.Int("removed", n),
	)
	s.status = fmt.Sprintf("Cleared %d answers in %s", n, r.subcategory)
	s.statusErr = false
}

func (s *SurveyScreen) submit() tea.Cmd {
	if s.checking {
		return nil
	}
	s.checking = true
	s.status = "Checking answers…"
	s.statusErr = false

	snapshot := frozenAnswers(s.state.Snapshot())
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Timeout)
		defer cancel()
		res, err := deps.Validator.Check(ctx, snapshot)
		return validationMsg{result: res, err: err}
	}
}

func (s *SurveyScreen) handleValidation(msg validationMsg) (screen.Screen, tea.Cmd) {
	s.checking = false
	if msg.err != nil {
		s.deps.Log.Warn("completeness check failed", zap.String("session_id", s.state.ID), zap.Error(msg.err))
		s.status = "Could not check answers: " + msg.err.Error()
		s.statusErr = true
		return s, nil
	}

	if s.state.ApplyValidation(msg.result, s.deps.Now()) {
		s.status = ""
		state, empDeps := s.state, s.deps.Employee
		next := review.New(state, func() screen.Screen { return employee.New(state, empDeps) })
		return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
	}

	first := msg.result.First
	s.status = fmt.Sprintf("Please answer: %s › %s (%d missing)", first.Category, first.Subcategory, len(msg.result.Missing))
	s.statusErr = true
	if i := find(s.rows(), func(r row) bool {
		return r.kind == rowQuestion && r.category.Title == first.Category &&
			r.subcategory == first.Subcategory && r.question.ID == first.QuestionID
	}); i >= 0 {
		s.cursor = i
	}
	return s, tea.Batch(
		s.ensureLoaded(first.Subcategory),
		tea.Tick(session.HighlightDuration, func(time.Time) tea.Msg { return highlightExpiredMsg{} }),
	)
}

func (s *SurveyScreen) ensureLoaded(name string) tea.Cmd {
	if _, ok := s.deps.Questions.Cached(name); ok {
		return nil
	}
	if s.loading[name] {
		return nil
	}
	return s.load(name)
}

func (s *SurveyScreen) load(name string) tea.Cmd {
	s.loading[name] = true
	delete(s.loadErrs, name)
	q, timeout := s.deps.Questions, s.deps.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		qs, err := q.Load(ctx, name)
		return questionsLoadedMsg{subcategory: name, questions: qs, err: err}
	}
}

func (s *SurveyScreen) handleLoaded(msg questionsLoadedMsg) {
	delete(s.loading, msg.subcategory)
	if msg.err != nil {
		s.deps.Log.Warn("question set failed to load",
			zap.String("subcategory", msg.subcategory),
			zap.Error(msg.err),
		)
		s.loadErrs[msg.subcategory] = msg.err
		return
	}
	delete(s.loadErrs, msg.subcategory)
}

// frozenAnswers is a copy of the answer store handed to the validator,
// which runs off the update loop.
type frozenAnswers map[string]string

func (f frozenAnswers) Get(category, subcategory string, questionID int) (string, bool) {
	v, ok := f[answers.NewKey(category, subcategory, questionID).String()]
	return v, ok
}
