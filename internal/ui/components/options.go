package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/dqi/internal/ui/theme"
)

// OptionList shows one question with its answer options laid out on a
// single line. Cursor moves with left/right; Chosen is the recorded answer.
type OptionList struct {
	Question string
	Options  []string
	Cursor   int
	Chosen   string

	// Focused renders the cursor.
	Focused bool

	// Highlighted marks the question as the first missing one.
	Highlighted bool
}

// NewOptionList creates an option list with the cursor on the chosen
// option, or the first one.
func NewOptionList(question string, options []string, chosen string) OptionList {
	o := OptionList{Question: question, Options: options, Chosen: chosen}
	for i, opt := range options {
		if opt == chosen {
			o.Cursor = i
			break
		}
	}
	return o
}

// OptionChosenMsg reports a selection made in an OptionList.
type OptionChosenMsg struct {
	Option string
}

// Update handles left/right, enter/space, and number keys 1-9.
func (o OptionList) Update(msg tea.Msg) (OptionList, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok || len(o.Options) == 0 {
		return o, nil
	}

	switch key := kmsg.String(); key {
	case "left", "h":
		if o.Cursor > 0 {
			o.Cursor--
		}
	case "right", "l":
		if o.Cursor < len(o.Options)-1 {
			o.Cursor++
		}
	case "enter", "space", " ":
		return o.choose(o.Cursor)
	default:
		if len(key) == 1 && key[0] >= '1' && key[0] <= '9' {
			if i := int(key[0] - '1'); i < len(o.Options) {
				o.Cursor = i
				return o.choose(i)
			}
		}
	}
	return o, nil
}

func (o OptionList) choose(i int) (OptionList, tea.Cmd) {
	o.Chosen = o.Options[i]
	opt := o.Chosen
	return o, func() tea.Msg { return OptionChosenMsg{Option: opt} }
}

// View renders the question and its options.
func (o OptionList) View() string {
	qStyle := lipgloss.NewStyle().Foreground(theme.Text)
	if o.Highlighted {
		qStyle = theme.Missing
	} else if o.Focused {
		qStyle = qStyle.Bold(true)
	}

	var b strings.Builder
	b.WriteString(qStyle.Render(o.Question))
	b.WriteString("\n")

	if len(o.Options) == 0 {
		b.WriteString(theme.Hint.Render("  (no options)"))
		return b.String()
	}

	parts := make([]string, len(o.Options))
	for i, opt := range o.Options {
		label := fmt.Sprintf("%d) %s", i+1, opt)
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		switch {
		case opt == o.Chosen:
			style = theme.Answered
			label = "● " + label
		default:
			label = "○ " + label
		}
		if o.Focused && i == o.Cursor {
			style = style.Underline(true).Foreground(theme.Primary)
		}
		parts[i] = style.Render(label)
	}
	b.WriteString("  ")
	b.WriteString(strings.Join(parts, "   "))
	return b.String()
}
