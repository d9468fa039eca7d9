package view

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/MrJamesThe3rd/tally/internal/transaction"
)

const barWidth = 30

type SummaryModel struct {
	CommonModel
	txService *transaction.Service
	now       func() time.Time

	period  Period
	summary transaction.Summary
}

func NewSummaryModel(txSvc *transaction.Service) SummaryModel {
	m := SummaryModel{txService: txSvc, now: time.Now}
	m.refresh()

	return m
}

func (m SummaryModel) Title() string { return "Summary" }

func (m SummaryModel) ShortHelp() string { return "Esc: back | p: period | r: refresh" }

func (m SummaryModel) Init() tea.Cmd { return nil }

func (m SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "esc":
		return m, Back
	case "p":
		m.period = m.period.Next()
		m.refresh()
	case "r":
		m.refresh()
	}

	return m, nil
}

func (m *SummaryModel) refresh() {
	filter := transaction.ListFilter{}
	m.period.Apply(&filter, m.now())
	m.summary = m.txService.SummaryFor(filter)
}

func (m SummaryModel) View() string {
	s := m.summary

	balanceStyle := successStyle
	if s.Balance < 0 {
		balanceStyle = errorStyle
	}

	totals := fmt.Sprintf(
		"Transactions: %d\nIncome:       %s\nExpense:      %s\nBalance:      %s",
		s.Count,
		successStyle.Render(FormatAmount(s.TotalIncome)),
		errorStyle.Render(FormatAmount(s.TotalExpense)),
		balanceStyle.Render(FormatAmount(s.Balance)),
	)

	return lipgloss.NewStyle().Padding(1).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			fmt.Sprintf("[p] Period: %s", activeStyle(m.period.String())),
			"",
			totals,
			"",
			lipgloss.NewStyle().Bold(true).Render("Expenses by category"),
			renderBreakdown(s),
		),
	)
}

// renderBreakdown draws one bar per category scaled to the largest total.
func renderBreakdown(s transaction.Summary) string {
	var largest int64
	for _, ct := range s.Breakdown {
		largest = max(largest, ct.Amount)
	}

	var sb strings.Builder

	for _, ct := range s.Breakdown {
		filled := 0
		if largest > 0 {
			filled = int(ct.Amount * barWidth / largest)
		}

		if ct.Amount > 0 && filled == 0 {
			filled = 1
		}

		bar := accentStyle.Render(strings.Repeat("█", filled)) + faintStyle.Render(strings.Repeat("░", barWidth-filled))
		fmt.Fprintf(&sb, "%-10s %s %10s\n", ct.Category, bar, FormatAmount(ct.Amount))
	}

	return sb.String()
}
