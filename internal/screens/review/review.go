// Package review lists every question with its answer before the
// employee id is asked.
package review

import (
	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/dqi/internal/router"
	"github.com/abhisek/dqi/internal/screen"
	"github.com/abhisek/dqi/internal/session"
	"github.com/abhisek/dqi/internal/ui/components"
	"github.com/abhisek/dqi/internal/ui/layout"
)

// ReviewScreen implements screen.Screen for the review list.
type ReviewScreen struct {
	state   *session.State
	next    func() screen.Screen
	buttons components.ButtonRow
	offset  int

	// height is the last rendered list height, used for paging.
	height int
}

var _ screen.Screen = (*ReviewScreen)(nil)
var _ screen.KeyHintProvider = (*ReviewScreen)(nil)
var _ screen.BackHandler = (*ReviewScreen)(nil)

// New creates a ReviewScreen. next builds the screen pushed on confirm.
func New(state *session.State, next func() screen.Screen) *ReviewScreen {
	s := &ReviewScreen{state: state, next: next, height: 10}
	s.buttons = components.NewButtonRow(
		components.Button{Label: "Back to survey", OnPress: s.back},
		components.Button{Label: "Confirm & continue", OnPress: s.confirm},
	)
	s.buttons.Focused = 1
	return s
}

func (s *ReviewScreen) Init() tea.Cmd {
	return nil
}

func (s *ReviewScreen) Title() string {
	return "Review Answers"
}

func (s *ReviewScreen) HandlesBack() bool { return true }

func (s *ReviewScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "←→", Description: "Choose"},
		{Key: "Enter", Description: "Select"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *ReviewScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	switch kmsg.String() {
	case "esc":
		return s, s.back()
	case "up", "k":
		s.scroll(-1)
		return s, nil
	case "down", "j":
		s.scroll(1)
		return s, nil
	case "pgup":
		s.scroll(-s.height)
		return s, nil
	case "pgdown":
		s.scroll(s.height)
		return s, nil
	}

	var cmd tea.Cmd
	s.buttons, cmd = s.buttons.Update(msg)
	return s, cmd
}

func (s *ReviewScreen) scroll(n int) {
	s.offset = max(0, min(s.offset+n, len(s.lines())-1))
}

func (s *ReviewScreen) back() tea.Cmd {
	s.state.BackToSurvey()
	return func() tea.Msg { return router.PopScreenMsg{} }
}

func (s *ReviewScreen) confirm() tea.Cmd {
	s.state.ConfirmReview()
	next := s.next()
	return func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}
