package view

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/matching"
	"github.com/MrJamesThe3rd/tally/internal/notify"
	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

type txState int

const (
	txStateBrowse txState = iota
	txStateSearch
	txStateForm
	txStateConfirmDelete
	txStateConfirmClear
)

type TransactionsModel struct {
	CommonModel
	txService       *transaction.Service
	matchingService *matching.Service
	notifier        notify.Notifier
	now             func() time.Time

	state   txState
	table   table.Model
	search  textinput.Model
	period  Period
	filter  transaction.ListFilter
	txs     []transaction.Transaction
	summary transaction.Summary

	form      *huh.Form
	formData  *transactionForm
	confirmed *bool
}

func NewTransactionsModel(txSvc *transaction.Service, matchSvc *matching.Service, notifier notify.Notifier) TransactionsModel {
	columns := []table.Column{
		{Title: "Date", Width: 12},
		{Title: "Type", Width: 8},
		{Title: "Category", Width: 10},
		{Title: "Amount", Width: 12},
		{Title: "Description", Width: 36},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	search := textinput.New()
	search.Placeholder = "description, category, type or date"
	search.Prompt = "Search: "
	search.CharLimit = 64
	search.Width = 40

	m := TransactionsModel{
		txService:       txSvc,
		matchingService: matchSvc,
		notifier:        notifier,
		now:             time.Now,
		table:           t,
		search:          search,
	}
	m.refresh()

	return m
}

func (m TransactionsModel) Title() string { return "Transactions" }

func (m TransactionsModel) ShortHelp() string {
	switch m.state {
	case txStateSearch:
		return "Type to filter | Enter: done | Esc: clear"
	case txStateForm:
		return "Navigate form | Esc: cancel"
	case txStateConfirmDelete, txStateConfirmClear:
		return "←/→: choose | Enter: confirm | Esc: cancel"
	}

	return "Esc: back | /: search | a: add | e: edit | d: delete | C: clear all | p: period"
}

func (m TransactionsModel) Init() tea.Cmd {
	return nil
}

func (m TransactionsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case mutationMsg:
		m.refresh()
		return m, nil

	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.table.SetHeight(max(msg.Height-14, 5))

		return m, nil
	}

	switch m.state {
	case txStateSearch:
		return m.updateSearch(msg)
	case txStateForm:
		return m.updateForm(msg)
	case txStateConfirmDelete, txStateConfirmClear:
		return m.updateConfirm(msg)
	}

	return m.updateBrowse(msg)
}

func (m TransactionsModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if ok {
		switch keyMsg.String() {
		case "esc":
			if m.search.Value() != "" {
				m.search.SetValue("")
				m.refresh()

				return m, nil
			}

			return m, Back
		case "/":
			m.state = txStateSearch
			m.table.Blur()

			return m, m.search.Focus()
		case "a":
			return m.enterForm(nil)
		case "e", "enter":
			if tx := m.selected(); tx != nil {
				return m.enterForm(tx)
			}

			return m, nil
		case "d":
			if tx := m.selected(); tx != nil {
				return m.enterConfirm(txStateConfirmDelete, fmt.Sprintf("Delete %q?", tx.Description), "Delete")
			}

			return m, nil
		case "C":
			if len(m.txs) > 0 {
				return m.enterConfirm(txStateConfirmClear, "Delete ALL transactions? This cannot be undone.", "Clear")
			}

			return m, nil
		case "p":
			m.period = m.period.Next()
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)

	return m, cmd
}

func (m TransactionsModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.Type {
		case tea.KeyEsc:
			m.search.SetValue("")
			fallthrough
		case tea.KeyEnter:
			m.search.Blur()
			m.table.Focus()
			m.state = txStateBrowse
			m.refresh()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.refresh()

	return m, cmd
}

func (m TransactionsModel) enterForm(tx *transaction.Transaction) (tea.Model, tea.Cmd) {
	m.formData = newTransactionForm(tx, m.now())
	m.form = m.formData.build()
	m.state = txStateForm
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveModal(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		data := m.formData
		return m.leaveModal(), m.saveCmd(data)
	case huh.StateAborted:
		return m.leaveModal(), nil
	}

	return m, cmd
}

func (m TransactionsModel) enterConfirm(state txState, title, affirmative string) (tea.Model, tea.Cmd) {
	m.confirmed = new(false)
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative(affirmative).
				Negative("Cancel").
				Value(m.confirmed),
		),
	).WithWidth(50).WithShowHelp(false)
	m.state = state
	m.table.Blur()

	return m, m.form.Init()
}

func (m TransactionsModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		return m.leaveModal(), nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	state := m.state
	confirmed := *m.confirmed
	tx := m.selected()
	m = m.leaveModal()

	if !confirmed {
		return m, nil
	}

	if state == txStateConfirmClear {
		return m, m.clearCmd()
	}

	if tx == nil {
		return m, nil
	}

	return m, m.deleteCmd(tx.ID)
}

func (m TransactionsModel) leaveModal() TransactionsModel {
	m.state = txStateBrowse
	m.form = nil
	m.formData = nil
	m.confirmed = nil
	m.table.Focus()

	return m
}

func (m TransactionsModel) selected() *transaction.Transaction {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.txs) {
		return nil
	}

	tx := m.txs[idx]

	return &tx
}

func (m *TransactionsModel) refresh() {
	m.filter.Text = m.search.Value()
	m.period.Apply(&m.filter, m.now())

	m.txs = m.txService.List(m.filter)
	m.summary = transaction.Summarize(m.txs)

	rows := make([]table.Row, 0, len(m.txs))
	for _, tx := range m.txs {
		rows = append(rows, table.Row{
			FormatDate(tx.Date),
			string(tx.Type),
			string(tx.Category),
			FormatSigned(tx),
			tx.Description,
		})
	}

	m.table.SetRows(rows)

	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m TransactionsModel) View() string {
	header := fmt.Sprintf(
		"[p] Period: %s | Showing %d | Income %s | Expense %s | Balance %s",
		activeStyle(m.period.String()),
		m.summary.Count,
		FormatAmount(m.summary.TotalIncome),
		FormatAmount(m.summary.TotalExpense),
		activeStyle(FormatAmount(m.summary.Balance)),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	if len(m.txs) == 0 {
		tableView = faintStyle.Render("No transactions found.") + "\n" + tableView
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		m.search.View(),
		tableView,
	)

	if m.form != nil {
		title := "Add Transaction"

		switch m.state {
		case txStateConfirmDelete:
			title = "Delete Transaction"
		case txStateConfirmClear:
			title = "Clear All"
		case txStateForm:
			if m.formData != nil && m.formData.editing() {
				title = "Edit Transaction"
			}
		}

		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(fmt.Sprintf("%s\n\n%s", title, m.form.View()))

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

// Messages

type mutationMsg struct {
	err error
}

func (m TransactionsModel) saveCmd(data *transactionForm) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()

		tx, err := data.transaction()
		if err != nil {
			return m.report("", err)
		}

		if data.editing() {
			_, err = m.txService.Update(ctx, tx.ID, tx)
			return m.report("Transaction updated", err)
		}

		if tx.Category == categoryAuto {
			tx.Category = transaction.CategoryOther

			if suggested, err := m.matchingService.Suggest(ctx, tx.Description); err == nil && suggested != "" {
				tx.Category = suggested
			}
		}

		_, _, err = m.txService.Add(ctx, transaction.CreateParams{
			Date:        tx.Date,
			Description: tx.Description,
			Category:    tx.Category,
			Amount:      tx.Amount,
			Type:        tx.Type,
		})

		return m.report("Transaction added", err)
	}
}

func (m TransactionsModel) deleteCmd(id int64) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()

		_, err := m.txService.Remove(ctx, id)

		return m.report("Transaction deleted", err)
	}
}

func (m TransactionsModel) clearCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := storeCtx()
		defer cancel()

		_, err := m.txService.Clear(ctx)

		return m.report("All transactions cleared", err)
	}
}

func (m TransactionsModel) report(success string, err error) tea.Msg {
	ctx, cancel := storeCtx()
	defer cancel()

	msg, severity := notify.Outcome(success, err)
	m.notifier.Notify(ctx, msg, severity)

	return mutationMsg{err: err}
}
