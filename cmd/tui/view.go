package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	promptText   = "Enter stock symbol (e.g., BBCA.JK):"
	buttonText   = "Fetch Data"
	checkboxText = "Dark Mode"
	infoLines    = 3
)

func (m model) View() string {
	if !m.ready {
		return "\n  Loading tracker..."
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		m.topView(),
		m.chart.View(),
		m.bottomView(),
	)

	return lipgloss.Place(m.width, m.height, lipgloss.Left, lipgloss.Top,
		m.styles.Window.Render(body),
		lipgloss.WithWhitespaceBackground(m.styles.Palette.Background),
	)
}

// topView is everything above the chart: title, input, button, info lines.
func (m model) topView() string {
	s := m.styles
	var b strings.Builder

	b.WriteString(s.Button.Bold(true).Render(windowTitle) + "\n\n")
	b.WriteString(s.Label.Render(promptText) + "\n")
	b.WriteString(m.input.View() + "\n\n")

	button := s.Button
	if m.focus == focusButton {
		button = s.ButtonFocused
	}
	b.WriteString(button.Render(buttonText) + "\n\n")

	// The info area keeps its height so the chart doesn't shift
	for i := 0; i < infoLines; i++ {
		line := ""
		if i < len(m.info) {
			line = m.info[i]
		}
		b.WriteString(s.Label.Render(line) + "\n")
	}

	return b.String()
}

// bottomView is the checkbox, status bar and help line.
func (m model) bottomView() string {
	s := m.styles
	var b strings.Builder

	box := "[ ] "
	if m.theme.IsDark {
		box = "[x] "
	}
	checkbox := s.Checkbox
	if m.focus == focusCheckbox {
		checkbox = s.CheckboxFocused
	}
	b.WriteString("\n" + checkbox.Render(box+checkboxText) + "\n")

	b.WriteString(m.statusView() + "\n")
	b.WriteString(m.help.View(m.keys))

	return b.String()
}

func (m model) statusView() string {
	s := m.styles
	switch {
	case m.loading:
		return m.spinner.View() + s.Status.Render(fmt.Sprintf(" Fetching %q...", m.pending))
	case m.err != nil:
		return s.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case m.snapshot != nil:
		return s.Status.Render("Loaded "+m.snapshot.Symbol) +
			s.Help.Render(fmt.Sprintf(" • %d closes • Last refresh: %s", len(m.snapshot.Closes), m.updated.Format("15:04:05")))
	default:
		return s.Help.Render("Ready")
	}
}
