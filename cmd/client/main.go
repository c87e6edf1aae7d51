package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/user"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ndquang/thirteen/internal/logger"
	"github.com/ndquang/thirteen/internal/ui"
)

func main() {
	serverAddr := flag.String("server", "localhost:3001", "relay address")
	name := flag.String("name", defaultName(), "player name")
	flag.Parse()

	if err := logger.Init(); err != nil {
		log.Printf("debug log unavailable: %v", err)
	}
	defer logger.Close()

	serverURL := fmt.Sprintf("ws://%s/ws", *serverAddr)
	model := ui.NewModel(serverURL, *name)

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.SetSend(p.Send)

	if _, err := p.Run(); err != nil {
		log.Fatalf("client error: %v", err)
	}
}

func defaultName() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	if host, err := os.Hostname(); err == nil {
		return host
	}
	return "Player"
}
