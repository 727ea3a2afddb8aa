package main

import (
	"fmt"
	"os"

	"github.com/budgettracker/expense-api/cmd/tui/client"
	"github.com/budgettracker/expense-api/cmd/tui/ui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	apiURL := os.Getenv("API_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8000"
	}

	p := tea.NewProgram(
		ui.NewModel(client.NewClient(apiURL)),
		tea.WithAltScreen(),
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}
