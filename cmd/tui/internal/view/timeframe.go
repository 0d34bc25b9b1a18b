package view

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Timeframe is a reporting period a user can pick.
type Timeframe int

const (
	TimeframeThisMonth Timeframe = iota
	TimeframeLastMonth
	TimeframeThisQuarter
	TimeframeThisYear
	TimeframeAll
	TimeframeCustom
)

func (t Timeframe) String() string {
	switch t {
	case TimeframeThisMonth:
		return "This Month"
	case TimeframeLastMonth:
		return "Last Month"
	case TimeframeThisQuarter:
		return "This Quarter"
	case TimeframeThisYear:
		return "This Year"
	case TimeframeAll:
		return "All Time"
	case TimeframeCustom:
		return "Custom Range"
	}

	return "Unknown"
}

// Range returns the first and last day of t relative to now. It is not
// meaningful for TimeframeAll or TimeframeCustom.
func (t Timeframe) Range(now time.Time) (time.Time, time.Time) {
	y, mo, d := now.Date()
	today := time.Date(y, mo, d, 0, 0, 0, 0, time.UTC)

	switch t {
	case TimeframeLastMonth:
		start := time.Date(y, mo-1, 1, 0, 0, 0, 0, time.UTC)
		return start, start.AddDate(0, 1, -1)
	case TimeframeThisQuarter:
		first := time.Month((int(mo)-1)/3*3 + 1)
		return time.Date(y, first, 1, 0, 0, 0, 0, time.UTC), today
	case TimeframeThisYear:
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), today
	}

	return time.Date(y, mo, 1, 0, 0, 0, 0, time.UTC), today
}

// TimeframeSelectedMsg is emitted once a range is chosen. From and To are
// inclusive days and both nil when All is true.
type TimeframeSelectedMsg struct {
	From *time.Time
	To   *time.Time
	All  bool
}

type timeframeState int

const (
	timeframeStateSelect timeframeState = iota
	timeframeStateCustom
)

type TimeframePicker struct {
	state    timeframeState
	selected Timeframe
	now      func() time.Time

	inputs     [2]textinput.Model
	focusIndex int

	err error
}

func NewTimeframePicker(initial Timeframe) TimeframePicker {
	var inputs [2]textinput.Model

	for i, prompt := range []string{"From: ", "To:   "} {
		ti := textinput.New()
		ti.Placeholder = time.DateOnly
		ti.CharLimit = len(time.DateOnly)
		ti.Width = 12
		ti.Prompt = prompt
		inputs[i] = ti
	}

	return TimeframePicker{
		state:    timeframeStateSelect,
		selected: initial,
		now:      time.Now,
		inputs:   inputs,
	}
}

func (m TimeframePicker) Update(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if m.state == timeframeStateCustom {
			return m.updateCustom(keyMsg)
		}

		return m.updateSelect(keyMsg), m.selectCmd(keyMsg)
	}

	if m.state == timeframeStateCustom {
		return m.updateInputs(msg)
	}

	return m, nil
}

func (m TimeframePicker) updateSelect(msg tea.KeyMsg) TimeframePicker {
	switch msg.Type {
	case tea.KeyUp:
		if m.selected > TimeframeThisMonth {
			m.selected--
		}
	case tea.KeyDown:
		if m.selected < TimeframeCustom {
			m.selected++
		}
	case tea.KeyEnter:
		if m.selected == TimeframeCustom {
			m.state = timeframeStateCustom
			m.focusIndex = 0
			m.inputs[0].Focus()
		}
	}

	return m
}

func (m TimeframePicker) selectCmd(msg tea.KeyMsg) tea.Cmd {
	if msg.Type != tea.KeyEnter {
		return nil
	}

	switch m.selected {
	case TimeframeCustom:
		return textinput.Blink
	case TimeframeAll:
		return func() tea.Msg { return TimeframeSelectedMsg{All: true} }
	}

	from, to := m.selected.Range(m.now())

	return func() tea.Msg { return TimeframeSelectedMsg{From: &from, To: &to} }
}

func (m TimeframePicker) updateCustom(msg tea.KeyMsg) (TimeframePicker, tea.Cmd) {
	switch msg.String() {
	case "tab", "shift+tab":
		m.inputs[m.focusIndex].Blur()
		m.focusIndex = (m.focusIndex + 1) % len(m.inputs)
		m.inputs[m.focusIndex].Focus()

		return m, textinput.Blink

	case "enter":
		from, err := time.Parse(time.DateOnly, strings.TrimSpace(m.inputs[0].Value()))
		if err != nil {
			m.err = fmt.Errorf("invalid from date (%s)", time.DateOnly)
			return m, nil
		}

		to, err := time.Parse(time.DateOnly, strings.TrimSpace(m.inputs[1].Value()))
		if err != nil {
			m.err = fmt.Errorf("invalid to date (%s)", time.DateOnly)
			return m, nil
		}

		if to.Before(from) {
			m.err = fmt.Errorf("to date is before from date")
			return m, nil
		}

		m.err = nil

		return m, func() tea.Msg { return TimeframeSelectedMsg{From: &from, To: &to} }

	case "esc":
		m.state = timeframeStateSelect
		m.err = nil

		return m, nil
	}

	return m.updateInputs(msg)
}

func (m TimeframePicker) updateInputs(msg tea.Msg) (TimeframePicker, tea.Cmd) {
	cmds := make([]tea.Cmd, len(m.inputs))
	for i := range m.inputs {
		m.inputs[i], cmds[i] = m.inputs[i].Update(msg)
	}

	return m, tea.Batch(cmds...)
}

func (m TimeframePicker) View() string {
	errStr := ""
	if m.err != nil {
		errStr = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("\n\nError: %v", m.err))
	}

	if m.state == timeframeStateCustom {
		return fmt.Sprintf(
			"Enter Custom Range:\n\n%s\n%s\n\n(Enter to confirm, Tab to switch, Esc to back)%s",
			m.inputs[0].View(),
			m.inputs[1].View(),
			errStr,
		)
	}

	var sb strings.Builder

	sb.WriteString("Select Period:\n\n")

	for t := TimeframeThisMonth; t <= TimeframeCustom; t++ {
		cursor := " "
		if m.selected == t {
			cursor = ">"
		}

		fmt.Fprintf(&sb, "%s %s\n", cursor, t)
	}

	sb.WriteString("\n(Enter to select, Esc to back)")

	return sb.String() + errStr
}

// IsSelecting reports whether the picker is on the period list rather than
// the custom range inputs.
func (m TimeframePicker) IsSelecting() bool {
	return m.state == timeframeStateSelect
}

func (m *TimeframePicker) Reset() {
	m.state = timeframeStateSelect
	m.err = nil

	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
}
