package ui

import (
	"github.com/budgettracker/expense-api/cmd/tui/client"
	"github.com/budgettracker/expense-api/internal/models"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type View int

const (
	LoginView View = iota
	SignupView
	MenuView
	CreateView
	ListView
	SummaryView
)

// isForm reports whether v takes free text input, where letters must not
// be read as shortcuts.
func (v View) isForm() bool {
	return v == LoginView || v == SignupView || v == CreateView
}

type Model struct {
	currentView View
	login       *LoginModel
	signup      *SignupModel
	menu        *MenuModel
	create      *CreateModel
	list        *ListModel
	summary     *SummaryModel
	client      *client.Client
	width       int
	height      int

	user *models.UserResponse
}

func NewModel(c *client.Client) Model {
	return Model{
		currentView: LoginView,
		login:       NewLoginModel(c),
		signup:      NewSignupModel(c),
		menu:        NewMenuModel(),
		create:      NewCreateModel(c),
		list:        NewListModel(c),
		summary:     NewSummaryModel(c),
		client:      c,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case authSuccessMsg:
		m.user = msg.user
		m.login.Update(msg)
		m.signup.Update(msg)
		m.currentView = MenuView
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "q":
			if m.currentView.isForm() {
				break
			}
			if m.currentView == MenuView {
				return m, tea.Quit
			}
			m.currentView = MenuView
			return m, nil

		case "esc":
			if m.user != nil && m.currentView != MenuView {
				m.currentView = MenuView
				return m, nil
			}

		case "ctrl+s":
			if m.currentView == LoginView {
				m.currentView = SignupView
				return m, nil
			} else if m.currentView == SignupView {
				m.currentView = LoginView
				return m, nil
			}
		}
	}

	switch m.currentView {
	case LoginView:
		updated, cmd := m.login.Update(msg)
		m.login = updated.(*LoginModel)
		return m, cmd

	case SignupView:
		updated, cmd := m.signup.Update(msg)
		m.signup = updated.(*SignupModel)
		return m, cmd

	case MenuView:
		updated, cmd := m.menu.Update(msg)
		m.menu = updated.(*MenuModel)
		if m.menu.selected == -1 {
			return m, cmd
		}

		switch m.menu.selected {
		case 0:
			m.currentView = CreateView
		case 1:
			m.currentView = ListView
			m.list.loaded = false
		case 2:
			m.currentView = SummaryView
			m.summary.loaded = false
		}
		m.menu.selected = -1

		// Give the new view a chance to start loading.
		return m.Update(nil)

	case CreateView:
		updated, cmd := m.create.Update(msg)
		m.create = updated.(*CreateModel)
		return m, cmd

	case ListView:
		updated, cmd := m.list.Update(msg)
		m.list = updated.(*ListModel)
		return m, cmd

	case SummaryView:
		updated, cmd := m.summary.Update(msg)
		m.summary = updated.(*SummaryModel)
		return m, cmd
	}

	return m, nil
}

func (m Model) View() string {
	var statusBar string
	if m.user != nil && !(m.currentView == LoginView || m.currentView == SignupView) {
		name := lipgloss.NewStyle().Foreground(Success).Render(m.user.Name)
		email := lipgloss.NewStyle().Foreground(Muted).Render(" (" + m.user.Email + ")")

		statusBar = lipgloss.NewStyle().
			Width(viewWidth).
			Align(lipgloss.Left).
			Background(BgDark).
			Padding(0, 2).
			Render(name + email)
	}

	var mainContent string
	switch m.currentView {
	case LoginView:
		mainContent = m.login.View()
	case SignupView:
		mainContent = m.signup.View()
	case MenuView:
		mainContent = m.menu.View()
	case CreateView:
		mainContent = m.create.View()
	case ListView:
		mainContent = m.list.View()
	case SummaryView:
		mainContent = m.summary.View()
	}

	if statusBar != "" {
		return lipgloss.JoinVertical(lipgloss.Left, statusBar, "\n", mainContent)
	}
	return mainContent
}
