package ui

import (
	"fmt"
	"strings"

	"github.com/budgettracker/expense-api/cmd/tui/client"
	"github.com/budgettracker/expense-api/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const pageSize = 5

type listExpensesSuccessMsg struct {
	expenses []models.ExpenseResponse
}

type listExpensesErrorMsg struct {
	err error
}

type deleteExpenseSuccessMsg struct {
	id int64
}

type ListModel struct {
	expenses []models.ExpenseResponse
	cursor   int
	loading  bool
	err      error
	client   *client.Client
	loaded   bool
}

func (m *ListModel) Init() tea.Cmd {
	return nil
}

func NewListModel(c *client.Client) *ListModel {
	return &ListModel{
		client: c,
	}
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}

func listExpensesCmd(c *client.Client) tea.Cmd {
	return func() tea.Msg {
		expenses, err := c.ListExpenses()
		if err != nil {
			return listExpensesErrorMsg{err: err}
		}
		return listExpensesSuccessMsg{expenses: expenses}
	}
}

func deleteExpenseCmd(c *client.Client, id int64) tea.Cmd {
	return func() tea.Msg {
		if err := c.DeleteExpense(id); err != nil {
			return listExpensesErrorMsg{err: err}
		}
		return deleteExpenseSuccessMsg{id: id}
	}
}

func (m *ListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listExpensesSuccessMsg:
		m.loading = false
		m.expenses = msg.expenses
		m.err = nil
		m.loaded = true
		if m.cursor >= len(m.expenses) {
			m.cursor = max(len(m.expenses)-1, 0)
		}
		return m, nil

	case deleteExpenseSuccessMsg:
		return m, listExpensesCmd(m.client)

	case listExpensesErrorMsg:
		m.loading = false
		m.err = msg.err
		m.loaded = true
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.expenses)-1 {
				m.cursor++
			}
		case "d":
			if !m.loading && len(m.expenses) > 0 {
				m.loading = true
				m.err = nil
				return m, deleteExpenseCmd(m.client, m.expenses[m.cursor].ID)
			}
		case "r":
			if !m.loading {
				m.loading = true
				m.err = nil
				return m, listExpensesCmd(m.client)
			}
		}
	}

	if !m.loaded && !m.loading && m.client != nil {
		m.loading = true
		return m, listExpensesCmd(m.client)
	}

	return m, nil
}

func (m *ListModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().MarginTop(1).MarginBottom(1).Render(center(TitleStyle.Render("YOUR EXPENSES"))))
	b.WriteString("\n\n")

	switch {
	case m.loading:
		b.WriteString(center(lipgloss.NewStyle().Foreground(Accent).Render("Loading expenses...")))
		b.WriteString("\n")
	case m.err != nil:
		b.WriteString(center(ErrorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	case len(m.expenses) == 0:
		b.WriteString(center(lipgloss.NewStyle().Foreground(Muted).Render("No expenses yet. Add one from the menu.")))
		b.WriteString("\n")
	default:
		start := (m.cursor / pageSize) * pageSize
		end := min(start+pageSize, len(m.expenses))

		for i := start; i < end; i++ {
			b.WriteString(center(m.renderCard(i)))
		}
		b.WriteString(center(InfoStyle.Render(fmt.Sprintf("showing %d-%d of %d", start+1, end, len(m.expenses)))))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("↑/↓ navigate  •  d delete  •  r refresh  •  q back")))

	return BoxStyle.Width(viewWidth - 4).Render(b.String())
}

func (m *ListModel) renderCard(i int) string {
	e := m.expenses[i]

	border := Muted
	if i == m.cursor {
		border = Accent
	}
	cardStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 2).
		Width(64)

	top := lipgloss.JoinHorizontal(lipgloss.Left,
		lipgloss.NewStyle().Foreground(Secondary).Bold(true).Width(40).Render(truncate(e.Category, 38)),
		AmountStyle.Render(formatAmount(e.Amount)),
	)

	details := lipgloss.NewStyle().Foreground(Muted).Render(e.Date)
	if e.Note != nil {
		details += lipgloss.NewStyle().Foreground(Text).Render("  " + truncate(*e.Note, 45))
	}

	return cardStyle.Render(lipgloss.JoinVertical(lipgloss.Left, top, details))
}
