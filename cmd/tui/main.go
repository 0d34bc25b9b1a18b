package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/poflow/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/poflow/internal/app"
	"github.com/MrJamesThe3rd/poflow/internal/config"
	"github.com/MrJamesThe3rd/poflow/internal/logger"
)

type screen int

const (
	screenMenu screen = iota
	screenOrders
	screenAccounts
	screenSpend
)

type menuItem struct {
	key    string
	label  string
	screen screen
}

var menu = []menuItem{
	{"1", "Purchase Orders", screenOrders},
	{"2", "Accounts Queue", screenAccounts},
	{"3", "Spend Report", screenSpend},
}

type model struct {
	app *app.App

	current screen
	active  view.View
	width   int
	height  int
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) newView(s screen) view.View {
	switch s {
	case screenOrders:
		return view.NewOrdersModel(m.app.PurchaseOrders)
	case screenAccounts:
		return view.NewAccountsModel(m.app.Accounts)
	case screenSpend:
		return view.NewSpendModel(m.app.Reports)
	}

	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.current == screenMenu {
			if msg.String() == "q" {
				return m, tea.Quit
			}

			for _, item := range menu {
				if msg.String() == item.key {
					m.current = item.screen
					m.active = m.newView(item.screen)

					return m, tea.Batch(m.active.Init(), m.resize())
				}
			}

			return m, nil
		}
	case view.BackMsg:
		m.current = screenMenu
		m.active = nil

		return m, nil
	}

	if m.active == nil {
		return m, nil
	}

	next, cmd := m.active.Update(msg)
	m.active = next.(view.View)

	return m, cmd
}

// resize replays the last known window size to a freshly opened view.
func (m model) resize() tea.Cmd {
	if m.width == 0 {
		return nil
	}

	w, h := m.width, m.height

	return func() tea.Msg { return tea.WindowSizeMsg{Width: w, Height: h} }
}

func (m model) View() string {
	if m.active != nil {
		help := lipgloss.NewStyle().Faint(true).Render(m.active.ShortHelp())
		title := lipgloss.NewStyle().Bold(true).Render(m.active.Title())

		return lipgloss.JoinVertical(lipgloss.Left, title, m.active.View(), help)
	}

	var sb strings.Builder

	sb.WriteString("poflow\n\n")

	for _, item := range menu {
		fmt.Fprintf(&sb, "%s. %s\n", item.key, item.label)
	}

	sb.WriteString("\nq. Quit")

	return lipgloss.NewStyle().Padding(2).Render(sb.String())
}

func run() error {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Stderr would tear the alt screen.
	log, closeLog, err := tuiLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	a, err := app.New(context.Background(), cfg, log)
	if err != nil {
		return fmt.Errorf("starting: %w", err)
	}
	defer a.Close()

	p := tea.NewProgram(model{app: a, current: screenMenu}, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running TUI: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func tuiLogger(cfg *config.Config) (*logger.Logger, func(), error) {
	if cfg.App.LogFile == "" {
		return logger.Nop(), func() {}, nil
	}

	f, err := os.OpenFile(cfg.App.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("opening log file: %w", err)
	}

	log := logger.New(logger.Options{
		ServiceName: cfg.App.Name + "-tui",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		Output:      f,
	})

	return log, func() { _ = f.Close() }, nil
}
