package review

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dqi/internal/ui/theme"
)

// lines renders the review list grouped by subcategory.
func (s *ReviewScreen) lines() []string {
	res := s.state.Review
	if res == nil {
		return []string{theme.Hint.Render("Nothing to review.")}
	}

	var out []string
	for _, u := range res.Unchecked {
		out = append(out, theme.Warning.Render(fmt.Sprintf(
			"⚠ %s › %s could not be loaded and was not checked", u.Category, u.Subcategory)))
	}
	if len(res.Unchecked) > 0 {
		out = append(out, "")
	}

	group := ""
	for _, item := range res.Review {
		if g := item.Category + " › " + item.Subcategory; g != group {
			if group != "" {
				out = append(out, "")
			}
			group = g
			out = append(out, theme.Subtitle.Render(g))
		}
		answer := theme.Answered.Render("    → " + item.Answer)
		if !item.Answered {
			answer = theme.Missing.Render("    → not answered")
		}
		out = append(out, theme.Body.Render("  "+item.Question), answer)
	}
	return out
}

func (s *ReviewScreen) View(width, height int) string {
	heading := theme.Title.Render("Please review your answers before submitting")
	buttons := s.buttons.View()

	listHeight := height - lipgloss.Height(heading) - lipgloss.Height(buttons) - 2
	if listHeight < 1 {
		listHeight = 1
	}
	s.height = listHeight

	lines := s.lines()
	start := min(s.offset, max(0, len(lines)-1))
	end := min(start+listHeight, len(lines))
	body := strings.Join(lines[start:end], "\n")
	body = lipgloss.NewStyle().Width(width - 4).Height(listHeight).Render(body)

	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, heading, "", body, "", buttons),
	)
}
