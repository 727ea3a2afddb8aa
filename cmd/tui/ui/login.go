package ui

import (
	"errors"
	"strings"

	"github.com/budgettracker/expense-api/cmd/tui/client"
	"github.com/budgettracker/expense-api/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// authSuccessMsg is sent once the client holds a token for user.
type authSuccessMsg struct {
	user *models.UserResponse
}

type loginErrorMsg struct {
	err error
}

const (
	loginEmail = iota
	loginPassword
)

type LoginModel struct {
	form    form
	loading bool
	err     error
	client  *client.Client
}

func NewLoginModel(c *client.Client) *LoginModel {
	return &LoginModel{
		form: newForm(
			field{label: "Email"},
			field{label: "Password", masked: true},
		),
		client: c,
	}
}

func (m *LoginModel) Init() tea.Cmd {
	return nil
}

// loginCmd logs in and then loads the profile behind the new token.
func loginCmd(c *client.Client, email, password string) tea.Cmd {
	return func() tea.Msg {
		if _, err := c.Login(email, password); err != nil {
			return loginErrorMsg{err: err}
		}

		user, err := c.Me()
		if err != nil {
			return loginErrorMsg{err: err}
		}

		return authSuccessMsg{user: user}
	}
}

func (m *LoginModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authSuccessMsg:
		m.loading = false
		m.err = nil
		m.form.clear()
		return m, nil

	case loginErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			email := m.form.value(loginEmail)
			password := m.form.fields[loginPassword].value
			if email == "" {
				m.err = errors.New("email cannot be empty")
				return m, nil
			}
			if password == "" {
				m.err = errors.New("password cannot be empty")
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, loginCmd(m.client, email, password)
		case "ctrl+l":
			m.form.clear()
			m.err = nil
		default:
			m.form.handleKey(msg)
		}
	}
	return m, nil
}

func (m *LoginModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().MarginTop(1).Render(center(TitleStyle.Render("LOGIN"))))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("Sign in to track your spending.")))
	b.WriteString("\n\n")

	b.WriteString(m.form.View())

	if m.loading {
		b.WriteString(center(InfoStyle.Render("Logging in...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(center(ErrorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter login  •  ctrl+l clear  •  ctrl+s signup  •  ctrl+c quit")))

	return BoxStyle.Width(viewWidth - 4).Render(b.String())
}
