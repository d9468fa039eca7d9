package view

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/importer"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type importState int

const (
	importStateFormatSelect importState = iota
	importStateFilePick
	importStateImporting
	importStateResult
)

type ImportModel struct {
	CommonModel
	txService     *transaction.Service
	importService *importer.Service
	notifier      notify.Notifier

	state          importState
	filePicker     filepicker.Model
	formatOptions  []importer.Format
	formatCursor   int
	selectedFormat importer.Format

	status string
	err    error
}

func NewImportModel(txSvc *transaction.Service, impSvc *importer.Service, notifier notify.Notifier) ImportModel {
	fp := filepicker.New()
	fp.CurrentDirectory, _ = os.Getwd()
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.SetHeight(15)

	return ImportModel{
		txService:     txSvc,
		importService: impSvc,
		notifier:      notifier,
		filePicker:    fp,
		formatOptions: []importer.Format{importer.FormatJSON, importer.FormatCSV},
	}
}

func (m ImportModel) Title() string { return "Import Transactions" }

func (m ImportModel) ShortHelp() string {
	return "Esc: back | Enter: select"
}

func (m ImportModel) Init() tea.Cmd {
	return m.filePicker.Init()
}

func (m ImportModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyEsc {
			return m.handleEsc()
		}

		if m.state == importStateFormatSelect {
			return m.updateFormatSelect(msg)
		}

	case importResultMsg:
		m.state = importStateResult
		m.err = msg.err

		switch {
		case msg.err != nil:
			m.status = fmt.Sprintf("Error: %v", msg.err)
		case len(msg.result.Imported) == 0:
			m.status = "The file contained no transactions."
		default:
			m.status = fmt.Sprintf("Imported %d transactions.", len(msg.result.Imported))
			if msg.result.Remapped > 0 {
				m.status += fmt.Sprintf(" %d received new ids.", msg.result.Remapped)
			}
		}

		return m, nil
	}

	if m.state != importStateFilePick {
		return m, nil
	}

	var cmd tea.Cmd
	m.filePicker, cmd = m.filePicker.Update(msg)

	if didSelect, path := m.filePicker.DidSelectFile(msg); didSelect {
		m.state = importStateImporting
		m.status = fmt.Sprintf("Importing from %s...", path)

		return m, m.importCmd(m.selectedFormat, path)
	}

	return m, cmd
}

func (m ImportModel) handleEsc() (tea.Model, tea.Cmd) {
	switch m.state {
	case importStateFilePick:
		m.state = importStateFormatSelect
		return m, nil
	case importStateResult:
		m.state = importStateFormatSelect
		m.err = nil
		m.status = ""

		return m, nil
	}

	return m, Back
}

func (m ImportModel) updateFormatSelect(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		if m.formatCursor > 0 {
			m.formatCursor--
		}
	case tea.KeyDown:
		if m.formatCursor < len(m.formatOptions)-1 {
			m.formatCursor++
		}
	case tea.KeyEnter:
		m.selectedFormat = m.formatOptions[m.formatCursor]
		m.filePicker.AllowedTypes = allowedExtensions(m.selectedFormat)
		m.state = importStateFilePick

		return m, m.filePicker.Init()
	}

	return m, nil
}

func allowedExtensions(f importer.Format) []string {
	if f == importer.FormatCSV {
		return []string{".csv", ".txt"}
	}

	return []string{".json"}
}

func (m ImportModel) View() string {
	switch m.state {
	case importStateFormatSelect:
		return m.viewFormatSelect()
	case importStateFilePick:
		return lipgloss.NewStyle().Padding(1).Render(
			fmt.Sprintf("Select file to import (%s):\n\n%s", m.selectedFormat, m.filePicker.View()),
		)
	case importStateImporting:
		return lipgloss.NewStyle().Padding(2).Render(m.status)
	case importStateResult:
		return m.viewResult()
	}

	return ""
}

func (m ImportModel) viewFormatSelect() string {
	var sb strings.Builder

	sb.WriteString("Select file format:\n\n")

	for i, f := range m.formatOptions {
		cursor := " "
		if i == m.formatCursor {
			cursor = ">"
		}

		fmt.Fprintf(&sb, "%s %s\n", cursor, strings.ToUpper(string(f)))
	}

	sb.WriteString(faintStyle.Render("\nJSON backups are merged after existing transactions.\nCSV needs a header row with date, description and amount."))

	return lipgloss.NewStyle().Padding(2).Render(sb.String())
}

func (m ImportModel) viewResult() string {
	style := lipgloss.NewStyle().Padding(2)
	if m.err != nil {
		return style.Render(errorStyle.Render(m.status) + "\n\n(Esc to go back)")
	}

	return style.Render(successStyle.Render(m.status) + "\n\n(Esc to go back)")
}

// Messages

type importResultMsg struct {
	result *transaction.ImportResult
	err    error
}

func (m ImportModel) importCmd(format importer.Format, path string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()

		result, err := m.importFile(format, path)

		msg := "Nothing to import"
		if result != nil && len(result.Imported) > 0 {
			msg = fmt.Sprintf("Imported %d transactions", len(result.Imported))
		}

		note, severity := notify.Outcome(msg, err)
		m.notifier.Notify(ctx, note, severity)

		return importResultMsg{result: result, err: err}
	}
}

func (m ImportModel) importFile(format importer.Format, path string) (*transaction.ImportResult, error) {
	ctx, cancel := storeCtx()
	defer cancel()

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	records, err := m.importService.Import(ctx, format, f)
	if err != nil {
		return nil, err
	}

	return m.txService.Import(ctx, records)
}
