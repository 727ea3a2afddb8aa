package ui

import (
	"errors"
	"strings"

	"github.com/budgettracker/expense-api/cmd/tui/client"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type signupErrorMsg struct {
	err error
}

const (
	signupName = iota
	signupEmail
	signupPassword
)

type SignupModel struct {
	form    form
	loading bool
	err     error
	client  *client.Client
}

func NewSignupModel(c *client.Client) *SignupModel {
	return &SignupModel{
		form: newForm(
			field{label: "Name"},
			field{label: "Email"},
			field{label: "Password", masked: true},
		),
		client: c,
	}
}

func (m *SignupModel) Init() tea.Cmd {
	return nil
}

// signupCmd registers the account and logs straight in, since signup
// itself does not issue a token.
func signupCmd(c *client.Client, name, email, password string) tea.Cmd {
	return func() tea.Msg {
		user, err := c.Signup(name, email, password)
		if err != nil {
			return signupErrorMsg{err: err}
		}

		if _, err := c.Login(email, password); err != nil {
			return signupErrorMsg{err: err}
		}

		return authSuccessMsg{user: user}
	}
}

func (m *SignupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case authSuccessMsg:
		m.loading = false
		m.err = nil
		m.form.clear()
		return m, nil

	case signupErrorMsg:
		m.loading = false
		m.err = msg.err
		return m, nil

	case tea.KeyMsg:
		if m.loading {
			return m, nil
		}

		switch msg.String() {
		case "enter":
			name := m.form.value(signupName)
			email := m.form.value(signupEmail)
			password := m.form.fields[signupPassword].value
			if name == "" {
				m.err = errors.New("name cannot be empty")
				return m, nil
			}
			if email == "" {
				m.err = errors.New("email cannot be empty")
				return m, nil
			}
			if len(password) < 8 {
				m.err = errors.New("password must be at least 8 characters")
				return m, nil
			}

			m.loading = true
			m.err = nil
			return m, signupCmd(m.client, name, email, password)
		case "ctrl+l":
			m.form.clear()
			m.err = nil
		default:
			m.form.handleKey(msg)
		}
	}
	return m, nil
}

func (m *SignupModel) View() string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().MarginTop(1).Render(center(TitleStyle.Render("SIGN UP"))))
	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("Create an account to start recording expenses.")))
	b.WriteString("\n\n")

	b.WriteString(m.form.View())

	if m.loading {
		b.WriteString(center(InfoStyle.Render("Creating account...")))
		b.WriteString("\n")
	}
	if m.err != nil {
		b.WriteString(center(ErrorStyle.Render(m.err.Error())))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(center(InfoStyle.Render("tab switch  •  enter sign up  •  ctrl+l clear  •  ctrl+s login  •  ctrl+c quit")))

	return BoxStyle.Width(viewWidth - 4).Render(b.String())
}
