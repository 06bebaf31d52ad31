package employee

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dqi/internal/session"
	"github.com/abhisek/dqi/internal/ui/theme"
)

func (s *EmployeeScreen) View(width, height int) string {
	var content string
	switch s.state.Phase {
	case session.PhaseSubmitting:
		content = theme.Body.Render("Submitting your answers…")
	case session.PhaseDone:
		content = s.renderDone()
	default:
		content = s.renderEntry()
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.Card.Render(content))
}

func (s *EmployeeScreen) renderEntry() string {
	lines := []string{
		theme.Title.Render("Enter your employee ID"),
		"",
		s.input.View(),
		theme.Hint.Render("Format: A followed by 4 digits"),
	}
	if s.errMsg != "" {
		lines = append(lines, "", theme.ErrorText.Render(s.errMsg))
	}
	if s.state.SubmitError != "" {
		lines = append(lines,
			"",
			theme.ErrorText.Render(s.state.SubmitError),
			theme.Hint.Render("Your answers are kept. Press Enter to try again."),
		)
	}
	return strings.Join(lines, "\n")
}

func (s *EmployeeScreen) renderDone() string {
	sum := s.state.Summary
	lines := []string{theme.Title.Render("Thank you!"), ""}
	if sum != nil {
		lines = append(lines,
			theme.Body.Render(fmt.Sprintf("Submission #%d recorded for %s.", sum.SubmissionID, sum.EmpID)),
			theme.Hint.Render(fmt.Sprintf("%d answers in %s", sum.Answered, sum.Duration.Round(time.Second))),
		)
		if sum.ExportPath != "" {
			lines = append(lines, theme.Body.Render("Spreadsheet saved to "+sum.ExportPath))
		}
	}
	if s.exportNote != "" {
		lines = append(lines, theme.Warning.Render(s.exportNote))
	}
	lines = append(lines, "", s.menu.View())
	return strings.Join(lines, "\n")
}
