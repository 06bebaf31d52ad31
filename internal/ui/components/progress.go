package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/dqi/internal/ui/theme"
)

// ProgressBar displays answered over total questions.
type ProgressBar struct {
	Label    string
	Answered int
	Total    int
	Width    int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, answered, total, width int) ProgressBar {
	return ProgressBar{
		Label:    label,
		Answered: answered,
		Total:    total,
		Width:    width,
	}
}

// Percent returns the filled fraction in [0, 1].
func (p ProgressBar) Percent() float64 {
	if p.Total <= 0 {
		return 0
	}
	f := float64(p.Answered) / float64(p.Total)
	return min(max(f, 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string
	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	counts := fmt.Sprintf("  %d/%d", p.Answered, p.Total)
	barWidth := p.Width - lipgloss.Width(result) - len(counts)
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	result += lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled))
	result += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	result += lipgloss.NewStyle().Foreground(theme.TextDim).Render(counts)
	return result
}
