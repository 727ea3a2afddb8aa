package ui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/budgettracker/expense-api/cmd/tui/client"
	"github.com/budgettracker/expense-api/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type createExpenseSuccessMsg struct {
	expense *models.ExpenseResponse
}

type createExpenseErrorMsg struct {
	err error
}

const (
	expenseCategory = iota
	expenseAmount
	expenseDate
	expenseNote
)

type CreateModel struct {
	form    form
	loading bool
	result  *models.ExpenseResponse
	err     error
	client  *client.Client
}

func (m *CreateModel) Init() tea.Cmd {
	return nil
}

func NewCreateModel(c *client.Client) *CreateModel {
	return &CreateModel{
		form: newForm(
			field{label: "Category"},
			field{label: "Amount"},
			field{label: "Date", hint: " YYYY-MM-DD, blank for today"},
			field{label: "Note", hint: " optional"},
		),
		client: c,
	}
}

// buildExpenseRequest checks the form values before anything is sent.
func buildExpenseRequest(category, amount, date, note string) (models.CreateExpenseRequest, error) {
	req := models.CreateExpenseRequest{Category: category}

	if category == "" {
		return req, errors.New("category cannot be empty")
	}

	if amount == "" {
		return req, errors.New("amount cannot be empty")
	}
	value, err := strconv.ParseFloat(amount, 64)
	if err != nil {
		return req, fmt.Errorf("amount %q is not a number", amount)
	}
	req.Amount = &value

	if date != "" {
		if _, err := time.Parse(models.DateLayout, date); err != nil {
			return req, errors.New("date must be formatted as YYYY-MM-DD")
		}
		req.Date = date
	}

	if note != "" {
		req.Note = &note
	}

	return req, nil
}

func createExpenseCmd(c *client.Client, req models.CreateExpenseRequest) tea.Cmd {
	return func() tea.Msg {
		expense, err := c.CreateExpense(req)
		if err != nil {
			return createExpenseErrorMsg{err: err}
		}
		return createExpenseSuccessMsg{expense: expense}
	}
}

func (m *CreateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case createExpenseSuccessMsg:
		m.loading = false
		m.result = msg.expense
		m.err = nil
		m.form.clear()
		return m, nil

	case createExpenseErrorMsg:
		m.loading = false
		m.err = msg.err
		m.result = nil
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			req, err := buildExpenseRequest(
				m.form.value(expenseCategory),
				m.form.value(expenseAmount),
				m.form.value(expenseDate),
				m.form.value(expenseNote),
			)
			if err != nil {
				m.err = err
				return m, nil
			}

			m.loading = true
			m.err = nil
			m.result = nil
			return m, createExpenseCmd(m.client, req)
		case "ctrl+l":
			m.form.clear()
			m.result = nil
			m.err = nil
		default:
			m.form.handleKey(msg)
		}
	}
	return m, nil
}

func (m *CreateModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().MarginTop(1).MarginBottom(1).Render(center(TitleStyle.Render("ADD EXPENSE"))))
	b.WriteString("\n\n")

	b.WriteString(m.form.View())

	if m.loading {
		b.WriteString(center(InfoStyle.Render("Saving expense...")))
		b.WriteString("\n")
	}

	if m.result != nil {
		saved := fmt.Sprintf("Saved %s %s on %s",
			m.result.Category, AmountStyle.Render(formatAmount(m.result.Amount)), m.result.Date)
		b.WriteString(center(SuccessStyle.Render("✓ ") + saved))
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(center(ErrorStyle.Render("Error: " + m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter save  •  ctrl+l clear  •  esc back")))

	return BoxStyle.Width(viewWidth - 4).Render(b.String())
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
