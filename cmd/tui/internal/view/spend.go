package view

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/poflow/internal/report"
)

type spendState int

const (
	spendStateTimeframe spendState = iota
	spendStatePath
	spendStateRunning
	spendStateResult
)

// spendForm holds the huh form bindings behind a pointer so they survive
// model copies.
type spendForm struct {
	dir     string
	project string
}

type SpendModel struct {
	CommonModel
	reportService *report.Service

	state           spendState
	err             error
	timeframePicker TimeframePicker
	filter          report.Filter

	form    *huh.Form
	input   *spendForm
	spinner spinner.Model
	summary string
	files   []string
}

func NewSpendModel(svc *report.Service) SpendModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))

	return SpendModel{
		reportService:   svc,
		state:           spendStateTimeframe,
		timeframePicker: NewTimeframePicker(TimeframeThisMonth),
		input:           &spendForm{dir: "./reports"},
		spinner:         s,
	}
}

func (m SpendModel) Title() string { return "Spend Report" }

func (m SpendModel) ShortHelp() string {
	switch m.state {
	case spendStateResult:
		return "Esc: back to menu"
	case spendStateRunning:
		return "Building report..."
	}

	return "Esc: back | Enter: confirm"
}

func (m SpendModel) Init() tea.Cmd {
	return nil
}

func (m SpendModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if tfMsg, ok := msg.(TimeframeSelectedMsg); ok {
		m.filter = report.Filter{From: tfMsg.From, To: tfMsg.To}
		m.form = m.buildForm()
		m.state = spendStatePath

		return m, m.form.Init()
	}

	if size, ok := msg.(tea.WindowSizeMsg); ok {
		m.SetSize(size)
		return m, nil
	}

	switch m.state {
	case spendStateTimeframe:
		return m.updateTimeframe(msg)
	case spendStatePath:
		return m.updatePath(msg)
	case spendStateRunning:
		return m.updateRunning(msg)
	case spendStateResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
			return m, Back
		}
	}

	return m, nil
}

func (m SpendModel) updateTimeframe(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc && m.timeframePicker.IsSelecting() {
			return m, Back
		}
	}

	var cmd tea.Cmd
	m.timeframePicker, cmd = m.timeframePicker.Update(msg)

	return m, cmd
}

func (m SpendModel) updatePath(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		m.state = spendStateTimeframe
		m.timeframePicker.Reset()

		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.filter.ProjectNumber = m.input.project
	m.state = spendStateRunning
	m.err = nil

	return m, tea.Batch(m.spinner.Tick, m.runCmd(m.filter, m.input.dir))
}

func (m SpendModel) updateRunning(msg tea.Msg) (tea.Model, tea.Cmd) {
	if result, ok := msg.(spendResultMsg); ok {
		m.state = spendStateResult
		m.err = result.err
		m.summary = result.summary
		m.files = result.files

		return m, nil
	}

	var cmd tea.Cmd
	m.spinner, cmd = m.spinner.Update(msg)

	return m, cmd
}

func (m SpendModel) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("project").
				Title("Project number").
				Description("Leave empty for all projects").
				Value(&m.input.project),

			huh.NewInput().
				Key("dir").
				Title("Output directory").
				Description("Directory will be created if it doesn't exist").
				Placeholder("./reports").
				Value(&m.input.dir),
		),
	).WithWidth(50).WithShowHelp(false)
}

func (m SpendModel) View() string {
	switch m.state {
	case spendStateTimeframe:
		return lipgloss.NewStyle().Padding(1).Render(m.timeframePicker.View())

	case spendStatePath:
		return lipgloss.NewStyle().Padding(1).Render(m.form.View())

	case spendStateRunning:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("%s Aggregating purchase order spend...", m.spinner.View()),
		)

	case spendStateResult:
		return m.viewResult()
	}

	return ""
}

func (m SpendModel) viewResult() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(1).Render(
			lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("Error: %v", m.err)),
		)
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("46")).
		Render("Report Complete!")

	lines := []string{header, "", m.summary, "Written:"}
	for _, f := range m.files {
		lines = append(lines, "  "+f)
	}

	return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

type spendResultMsg struct {
	summary string
	files   []string
	err     error
}

const reportTimeout = 2 * time.Minute

func (m SpendModel) runCmd(filter report.Filter, dir string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		spend, err := m.reportService.Spend(ctx, filter)
		if err != nil {
			return spendResultMsg{err: err}
		}

		files, err := writeSpendCSVs(dir, spend)
		if err != nil {
			return spendResultMsg{err: err}
		}

		return spendResultMsg{summary: m.reportService.Summary(spend), files: files}
	}
}

func writeSpendCSVs(dir string, spend report.Spend) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	files := make([]string, 0, len(report.Sections))

	for _, sec := range report.Sections {
		path := filepath.Join(dir, sec.Filename)

		if err := writeCSVFile(path, sec.Heading, sec.Totals(spend)); err != nil {
			return files, err
		}

		files = append(files, path)
	}

	return files, nil
}

func writeCSVFile(path, heading string, totals []report.Total) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()

	return report.WriteCSV(f, heading, totals)
}
