package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/budgettracker/expense-api/cmd/tui/client"
	"github.com/budgettracker/expense-api/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const barWidth = 30

type categoryTotal struct {
	Category string
	Total    float64
	Count    int
}

type summaryLoadedMsg struct {
	expenses []models.ExpenseResponse
}

type summaryErrorMsg struct {
	err error
}

// summarize groups expenses by category, largest total first.
func summarize(expenses []models.ExpenseResponse) ([]categoryTotal, float64) {
	byCategory := make(map[string]*categoryTotal)
	var grand float64

	for _, e := range expenses {
		ct, ok := byCategory[e.Category]
		if !ok {
			ct = &categoryTotal{Category: e.Category}
			byCategory[e.Category] = ct
		}
		ct.Total += e.Amount
		ct.Count++
		grand += e.Amount
	}

	totals := make([]categoryTotal, 0, len(byCategory))
	for _, ct := range byCategory {
		totals = append(totals, *ct)
	}
	sort.Slice(totals, func(i, j int) bool {
		if totals[i].Total != totals[j].Total {
			return totals[i].Total > totals[j].Total
		}
		return totals[i].Category < totals[j].Category
	})

	return totals, grand
}

type SummaryModel struct {
	totals  []categoryTotal
	grand   float64
	count   int
	loading bool
	loaded  bool
	err     error
	client  *client.Client
}

func NewSummaryModel(c *client.Client) *SummaryModel {
	return &SummaryModel{client: c}
}

func (m *SummaryModel) Init() tea.Cmd {
	return nil
}

func loadSummaryCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		expenses, err := c.ListExpenses()
		if err != nil {
			return summaryErrorMsg{err: err}
		}
		return summaryLoadedMsg{expenses: expenses}
	}
}

func (m *SummaryModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		m.loading = false
		m.loaded = true
		m.err = nil
		m.totals, m.grand = summarize(msg.expenses)
		m.count = len(msg.expenses)
		return m, nil

	case summaryErrorMsg:
		m.loading = false
		m.loaded = true
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "r" && !m.loading {
			m.loading = true
			return m, loadSummaryCmd(m.client)
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, loadSummaryCmd(m.client)
	}

	return m, nil
}

func (m *SummaryModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().MarginTop(1).MarginBottom(1).Render(center(TitleStyle.Render("SPENDING SUMMARY"))))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(center(InfoStyle.Render("Crunching numbers...")))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(center(ErrorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	case m.count == 0:
		b.WriteString(center(InfoStyle.Render("Nothing to summarize yet.")))
		b.WriteString("\n")
	default:
		var rows []string
		for _, ct := range m.totals {
			var share float64
			if m.grand > 0 {
				share = ct.Total / m.grand
			}
			filled := int(share*barWidth + 0.5)
			if filled < 0 {
				filled = 0
			}
			if filled > barWidth {
				filled = barWidth
			}
			bar := lipgloss.NewStyle().Foreground(Primary).Render(strings.Repeat("█", filled)) +
				lipgloss.NewStyle().Foreground(Muted).Render(strings.Repeat("░", barWidth-filled))

			rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Left,
				LabelStyle.Render(truncate(ct.Category, 14)),
				bar,
				AmountStyle.Width(12).Align(lipgloss.Right).Render(formatAmount(ct.Total)),
				InfoStyle.Render(fmt.Sprintf(" (%d)", ct.Count)),
			))
		}
		b.WriteString(center(lipgloss.JoinVertical(lipgloss.Left, rows...)))
		b.WriteString("\n\n")

		total := SuccessStyle.Render("Total: ") + AmountStyle.Render(formatAmount(m.grand)) +
			InfoStyle.Render(fmt.Sprintf("  across %d expenses", m.count))
		b.WriteString(center(total))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("r refresh  •  q back")))

	return BoxStyle.Width(viewWidth - 4).Render(b.String())
}
