package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/tally/cmd/tui/internal/view"
	"github.com/MrJamesThe3rd/tally/internal/app"
	"github.com/MrJamesThe3rd/tally/internal/config"
	"github.com/MrJamesThe3rd/tally/internal/export"
	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/matching"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type model struct {
	txService       *transaction.Service
	matchingService *matching.Service
	importService   *importer.Service
	exportService   *export.Service
	notifier        *view.Notifier
	exportDir       string

	currentView View
	status      view.StatusMsg
	size        tea.WindowSizeMsg

	transactionsView view.TransactionsModel
	summaryView      view.SummaryModel
	importView       view.ImportModel
	exportView       view.ExportModel
}

type View int

const (
	ViewMenu         View = 0
	ViewTransactions View = 1
	ViewSummary      View = 2
	ViewImport       View = 3
	ViewExport       View = 4
)

func initialModel(cfg *config.Config, svcs *app.Services, notifier *view.Notifier) model {
	return model{
		txService:       svcs.Transactions,
		matchingService: svcs.Matching,
		importService:   svcs.Importer,
		exportService:   svcs.Export,
		notifier:        notifier,
		exportDir:       cfg.Export.Dir,
		currentView:     ViewMenu,
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}

		if m.currentView == ViewMenu {
			switch msg.String() {
			case "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewTransactions
				m.transactionsView = view.NewTransactionsModel(m.txService, m.matchingService, m.notifier)

				return m.resize(m.transactionsView.Init())
			case "2":
				m.currentView = ViewSummary
				m.summaryView = view.NewSummaryModel(m.txService)

				return m, m.summaryView.Init()
			case "3":
				m.currentView = ViewImport
				m.importView = view.NewImportModel(m.txService, m.importService, m.notifier)

				return m, m.importView.Init()
			case "4":
				m.currentView = ViewExport
				m.exportView = view.NewExportModel(m.exportService, m.notifier, m.exportDir)

				return m, m.exportView.Init()
			}
		}
	case tea.WindowSizeMsg:
		m.size = msg
	case view.StatusMsg:
		m.status = msg
		return m, nil
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewTransactions:
		var newModel tea.Model
		newModel, cmd = m.transactionsView.Update(msg)
		m.transactionsView = newModel.(view.TransactionsModel)
	case ViewSummary:
		var newModel tea.Model
		newModel, cmd = m.summaryView.Update(msg)
		m.summaryView = newModel.(view.SummaryModel)
	case ViewImport:
		var newModel tea.Model
		newModel, cmd = m.importView.Update(msg)
		m.importView = newModel.(view.ImportModel)
	case ViewExport:
		var newModel tea.Model
		newModel, cmd = m.exportView.Update(msg)
		m.exportView = newModel.(view.ExportModel)
	}

	return m, cmd
}

// resize replays the last window size into the freshly created transactions view.
func (m model) resize(cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.size.Height > 0 {
		newModel, _ := m.transactionsView.Update(m.size)
		m.transactionsView = newModel.(view.TransactionsModel)
	}

	return m, cmd
}

func (m model) View() string {
	var (
		body string
		help string
	)

	switch m.currentView {
	case ViewMenu:
		body = lipgloss.NewStyle().Padding(2).Render(
			"Tally\n\n" +
				"1. Transactions\n" +
				"2. Summary\n" +
				"3. Import\n" +
				"4. Export\n\n" +
				"q. Quit",
		)
	case ViewTransactions:
		body, help = m.transactionsView.View(), m.transactionsView.ShortHelp()
	case ViewSummary:
		body, help = m.summaryView.View(), m.summaryView.ShortHelp()
	case ViewImport:
		body, help = m.importView.View(), m.importView.ShortHelp()
	case ViewExport:
		body, help = m.exportView.View(), m.exportView.ShortHelp()
	default:
		body = "Unknown View"
	}

	footer := lipgloss.NewStyle().Faint(true).Render(help)
	if status := view.RenderStatus(m.status); status != "" {
		footer = status + "\n" + footer
	}

	return lipgloss.JoinVertical(lipgloss.Left, body, lipgloss.NewStyle().PaddingLeft(1).Render(footer))
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logFile, err := os.OpenFile(cfg.Log.TUIFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	slog.SetDefault(app.NewLogger(logFile, cfg))

	backend, closeStore, err := app.OpenStore(cfg)
	if err != nil {
		slog.Error("failed to open storage", "error", err)
		return err
	}
	defer closeStore()

	svcs, err := app.NewServices(context.Background(), backend)
	if err != nil {
		slog.Error("failed to load transactions", "error", err)
		return err
	}

	notifier := &view.Notifier{}

	p := tea.NewProgram(initialModel(cfg, svcs, notifier), tea.WithAltScreen())
	notifier.Attach(p)

	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		return err
	}

	return nil
}
