// Package admin is the submissions dashboard: it lists every stored
// submission and exports them to spreadsheets.
package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"go.uber.org/zap"

	"github.com/abhisek/dqi/internal/export"
	"github.com/abhisek/dqi/internal/screen"
	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/abhisek/dqi/internal/ui/components"
	"github.com/abhisek/dqi/internal/ui/layout"
)

// Lister fetches the submission list.
type Lister interface {
	FetchAll(ctx context.Context) ([]surveyapi.Submission, error)
}

// Exporter writes workbooks.
type Exporter interface {
	ExportOne(ctx context.Context, empID string) (string, error)
	ExportAll(ctx context.Context, empIDs []string) (*export.BulkResult, error)
}

// Deps are the services the dashboard talks to.
type Deps struct {
	Lister   Lister
	Exporter Exporter
	Log      *zap.Logger
	Timeout  time.Duration
}

// AdminScreen implements screen.Screen for the dashboard.
type AdminScreen struct {
	deps Deps

	submissions []surveyapi.Submission
	loading     bool
	fetchErr    error

	cursor    int
	search    components.TextInput
	searching bool

	busy     bool
	alert    string
	alertErr bool
}

var _ screen.Screen = (*AdminScreen)(nil)
var _ screen.KeyHintProvider = (*AdminScreen)(nil)
var _ screen.BackHandler = (*AdminScreen)(nil)
var _ screen.StatusProvider = (*AdminScreen)(nil)

// New creates an AdminScreen.
func New(deps Deps) *AdminScreen {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = 30 * time.Second
	}
	return &AdminScreen{
		deps:   deps,
		search: components.NewTextInput("Search employee ID", nil, 20),
	}
}

// Init fetches the submission list.
func (s *AdminScreen) Init() tea.Cmd {
	return s.refresh()
}

func (s *AdminScreen) Title() string {
	return "Survey Submissions"
}

// Status shows how many submissions are listed.
func (s *AdminScreen) Status() string {
	if s.loading {
		return "loading…"
	}
	return fmt.Sprintf("%d submissions", len(s.submissions))
}

// HandlesBack is true while the search box has focus.
func (s *AdminScreen) HandlesBack() bool { return s.searching }

func (s *AdminScreen) KeyHints() []layout.KeyHint {
	if s.searching {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Clear"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "/", Description: "Search"},
		{Key: "e", Description: "Export"},
		{Key: "a", Description: "Export all"},
		{Key: "r", Description: "Refresh"},
		{Key: "q", Description: "Quit"},
	}
}

// visible returns the submissions matching the search filter.
func (s *AdminScreen) visible() []surveyapi.Submission {
	q := strings.ToLower(strings.TrimSpace(s.search.Value()))
	if q == "" {
		return s.submissions
	}
	var out []surveyapi.Submission
	for _, sub := range s.submissions {
		if strings.Contains(strings.ToLower(sub.EmpID), q) {
			out = append(out, sub)
		}
	}
	return out
}

func (s *AdminScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case submissionsMsg:
		s.handleSubmissions(msg)
		return s, nil
	case exportOneMsg:
		s.handleExportOne(msg)
		return s, nil
	case exportAllMsg:
		s.handleExportAll(msg)
		return s, nil
	case tea.KeyMsg:
		if s.searching {
			return s.handleSearchKey(msg)
		}
		return s.handleKey(msg)
	}
	return s, nil
}

func (s *AdminScreen) handleSearchKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.search.SetValue("")
		s.searching = false
		s.cursor = 0
		return s, nil
	case "enter":
		s.searching = false
		return s, nil
	}
	var cmd tea.Cmd
	s.search, cmd = s.search.Update(msg)
	s.cursor = 0
	return s, cmd
}

func (s *AdminScreen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(s.visible())-1 {
			s.cursor++
		}
	case "/":
		s.searching = true
		return s, s.search.Init()
	case "r":
		return s, s.refresh()
	case "e", "enter":
		return s, s.exportSelected()
	case "a":
		return s, s.exportAll()
	case "q":
		return s, tea.Quit
	}
	return s, nil
}

func (s *AdminScreen) refresh() tea.Cmd {
	if s.loading {
		return nil
	}
	s.loading = true
	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Timeout)
		defer cancel()
		subs, err := deps.Lister.FetchAll(ctx)
		return submissionsMsg{submissions: subs, err: err}
	}
}

func (s *AdminScreen) handleSubmissions(msg submissionsMsg) {
	s.loading = false
	if msg.err != nil {
		s.deps.Log.Warn("fetching submissions failed", zap.Error(msg.err))
		s.fetchErr = msg.err
		return
	}
	s.fetchErr = nil
	s.submissions = msg.submissions
	s.cursor = min(s.cursor, max(len(s.visible())-1, 0))
}

func (s *AdminScreen) exportSelected() tea.Cmd {
	subs := s.visible()
	if s.busy || len(subs) == 0 {
		return nil
	}
	empID := subs[s.cursor].EmpID
	s.busy = true
	s.setAlert(fmt.Sprintf("Exporting %s…", empID), false)

	deps := s.deps
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Timeout)
		defer cancel()
		path, err := deps.Exporter.ExportOne(ctx, empID)
		return exportOneMsg{empID: empID, path: path, err: err}
	}
}

func (s *AdminScreen) handleExportOne(msg exportOneMsg) {
	s.busy = false
	if msg.err != nil {
		s.deps.Log.Warn("export failed", zap.String("emp_id", msg.empID), zap.Error(msg.err))
		s.setAlert(fmt.Sprintf("Failed to export %s: %v", msg.empID, msg.err), true)
		return
	}
	s.setAlert("Saved "+msg.path, false)
}

// exportAll writes every listed submission, ignoring the search filter.
func (s *AdminScreen) exportAll() tea.Cmd {
	if s.busy || len(s.submissions) == 0 {
		return nil
	}
	ids := make([]string, len(s.submissions))
	for i, sub := range s.submissions {
		ids[i] = sub.EmpID
	}
	s.busy = true
	s.setAlert(fmt.Sprintf("Exporting %d submissions…", len(ids)), false)

	deps := s.deps
	return func() tea.Msg {
		// Bulk export fetches once per employee.
		ctx, cancel := context.WithTimeout(context.Background(), deps.Timeout*time.Duration(max(len(ids), 1)))
		defer cancel()
		res, err := deps.Exporter.ExportAll(ctx, ids)
		return exportAllMsg{result: res, err: err}
	}
}

func (s *AdminScreen) handleExportAll(msg exportAllMsg) {
	s.busy = false
	if msg.err != nil {
		s.deps.Log.Warn("bulk export failed", zap.Error(msg.err))
		s.setAlert("Bulk export failed: "+msg.err.Error(), true)
		return
	}
	res := msg.result
	text := fmt.Sprintf("Saved %d employees to %s", len(res.Exported), res.Path)
	if len(res.Skipped) > 0 {
		text += fmt.Sprintf(" (skipped %d: %s)", len(res.Skipped), strings.Join(res.Skipped, ", "))
	}
	s.setAlert(text, len(res.Skipped) > 0)
}

func (s *AdminScreen) setAlert(text string, isErr bool) {
	s.alert = text
	s.alertErr = isErr
}
