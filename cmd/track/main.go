package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/safereport/safereport-backend/internal/tracker"
)

func main() {
	defaultURL := os.Getenv("SAFEREPORT_API_URL")
	if defaultURL == "" {
		defaultURL = "http://localhost:8080"
	}
	baseURL := flag.String("api", defaultURL, "base URL of the report service")
	flag.Parse()

	// Every lookup is tied to this context; quitting the program cancels
	// anything still in flight.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client := tracker.NewClient(*baseURL)
	program := tea.NewProgram(tracker.New(ctx, client))

	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "tracker failed: %v\n", err)
		os.Exit(1)
	}
}
