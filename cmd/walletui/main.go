package main

import (
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sat20-labs/walletkit/common"
	"github.com/sat20-labs/walletkit/wallet"
)

func main() {
	p := parseCmdParams()

	// the terminal belongs to the program, the log goes nowhere unless asked
	common.Log.SetOutput(io.Discard)
	if f, err := tea.LogToFile("walletui.log", "walletui"); err == nil {
		common.Log.SetOutput(f)
		defer f.Close()
	}

	client := wallet.NewClient(p.server, p.apiKey, p.timeout)
	m := newModel(client, p)
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		common.Log.Fatal(err)
	}
}
