package admin

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dqi/internal/surveyapi"
	"github.com/abhisek/dqi/internal/ui/theme"
)

const dateLayout = "2006-01-02 15:04"

func (s *AdminScreen) View(width, height int) string {
	if s.fetchErr != nil && len(s.submissions) == 0 {
		body := lipgloss.JoinVertical(lipgloss.Center,
			theme.ErrorText.Render("Could not load submissions"),
			theme.Hint.Render(s.fetchErr.Error()),
			"",
			theme.Body.Render("Press r to retry."),
		)
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(body))
	}

	var top []string
	if s.searching || s.search.Value() != "" {
		top = append(top, theme.Hint.Render("Search: ")+s.search.View())
	}
	if s.fetchErr != nil {
		top = append(top, theme.Warning.Render("Refresh failed: "+s.fetchErr.Error()))
	}

	alert := " "
	if s.alert != "" {
		style := theme.Body
		if s.alertErr {
			style = theme.ErrorText
		}
		alert = style.Render(s.alert)
	}

	listHeight := max(height-len(top)-lipgloss.Height(alert)-2, 1)
	parts := append(top, s.renderTable(width-4, listHeight), "", alert)
	return lipgloss.NewStyle().Padding(0, 2).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (s *AdminScreen) renderTable(width, height int) string {
	if s.loading && len(s.submissions) == 0 {
		return lipgloss.NewStyle().Height(height).Render(theme.Hint.Render("Loading submissions…"))
	}

	subs := s.visible()
	if len(subs) == 0 {
		text := "No submissions yet."
		if s.search.Value() != "" {
			text = "No submissions match the search."
		}
		return lipgloss.NewStyle().Height(height).Render(theme.Hint.Render(text))
	}

	lines := []string{theme.Subtitle.Render(fmt.Sprintf("  %-10s %-18s %s", "Employee", "Submitted", "Answers"))}
	rows := height - 1
	start := 0
	if s.cursor >= rows {
		start = s.cursor - rows + 1
	}
	end := min(start+rows, len(subs))
	for i := start; i < end; i++ {
		line := fmt.Sprintf("%-10s %-18s %d", subs[i].EmpID, submittedAt(subs[i]), subs[i].AnswerCount)
		if i == s.cursor {
			lines = append(lines, theme.Selected.Render("▸ "+line))
		} else {
			lines = append(lines, theme.Body.Render("  "+line))
		}
	}
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines, "\n"))
}

// submittedAt formats the submission time in local time, falling back to
// the raw value.
func submittedAt(sub surveyapi.Submission) string {
	t, err := sub.SubmittedAt()
	if err != nil {
		return sub.SubmissionDate
	}
	return t.Local().Format(dateLayout)
}
