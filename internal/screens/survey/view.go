package survey

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dqi/internal/session"
	"github.com/abhisek/dqi/internal/ui/components"
	"github.com/abhisek/dqi/internal/ui/theme"
)

func (s *SurveyScreen) View(width, height int) string {
	p := s.progress()
	bar := components.NewProgressBar("Progress", p.Answered, p.Total, min(width-4, 60)).View()

	status := " "
	if s.status != "" {
		style := theme.Hint
		if s.statusErr {
			style = theme.Warning
		}
		status = style.Render(s.status)
	}

	listHeight := max(height-lipgloss.Height(bar)-lipgloss.Height(status)-2, 1)
	list := s.renderList(width-4, listHeight)

	return lipgloss.NewStyle().Padding(0, 2).Render(
		lipgloss.JoinVertical(lipgloss.Left, bar, "", list, status),
	)
}

// renderList renders the accordion and scrolls it so the cursor row is
// visible.
func (s *SurveyScreen) renderList(width, height int) string {
	panels := s.state.Panels(s.deps.Now())
	rows := s.buildRows(panels)

	var lines []string
	cursorStart, cursorEnd := 0, 0
	for i, r := range rows {
		block := strings.Split(s.renderRow(r, i == s.cursor, panels), "\n")
		if i == s.cursor {
			cursorStart, cursorEnd = len(lines), len(lines)+len(block)
		}
		lines = append(lines, block...)
	}

	start := 0
	if cursorEnd > height {
		start = cursorEnd - height
	}
	if cursorStart < start {
		start = cursorStart
	}
	end := min(start+height, len(lines))
	return lipgloss.NewStyle().Width(width).Height(height).Render(strings.Join(lines[start:end], "\n"))
}

func (s *SurveyScreen) renderRow(r row, focused bool, panels session.Panels) string {
	pointer := "  "
	if focused {
		pointer = theme.Selected.Render("▸ ")
	}

	switch r.kind {
	case rowCategory:
		arrow := "▸"
		if panels.OpenCategory == r.category.ID {
			arrow = "▾"
		}
		style := theme.Subtitle
		if focused {
			style = style.Underline(true)
		}
		return pointer + style.Render(arrow+" "+r.category.Title)

	case rowSubcategory:
		arrow := "▸"
		if panels.IsOpen(r.category.ID, r.subcategory) {
			arrow = "▾"
		}
		label := arrow + " " + r.subcategory
		if qs, ok := s.deps.Questions.Cached(r.subcategory); ok {
			label += theme.Hint.Render(fmt.Sprintf("  %d/%d", s.state.Answers.AnsweredIn(r.category.Title, r.subcategory), len(qs)))
		}
		style := theme.Body
		if focused {
			style = theme.Selected
		}
		return "  " + pointer + style.Render(label)

	case rowQuestion:
		chosen, _ := s.state.Answers.Get(r.category.Title, r.subcategory, r.question.ID)
		list := components.NewOptionList(r.question.Question, r.question.Options, chosen)
		list.Cursor = s.optionCursor(r, list.Cursor)
		list.Focused = focused
		list.Highlighted = panels.IsHighlighted(r.category.Title, r.subcategory, r.question.ID)
		return indent(list.View(), "      ", pointer)

	default:
		if r.err != nil {
			return "        " + theme.ErrorText.Render(r.notice+": "+r.err.Error()) +
				"\n        " + theme.Hint.Render("Collapse and reopen the section to retry.")
		}
		return "        " + theme.Hint.Render(r.notice)
	}
}

// indent prefixes every line of block, using first for the first line.
func indent(block, prefix, first string) string {
	lines := strings.Split(block, "\n")
	for i := range lines {
		p := prefix
		if i == 0 {
			p = prefix[:len(prefix)-2] + first
		}
		lines[i] = p + lines[i]
	}
	return strings.Join(lines, "\n")
}
