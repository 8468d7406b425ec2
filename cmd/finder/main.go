package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/actuallystonmai/newsletter-finder/internal/client"
	"github.com/actuallystonmai/newsletter-finder/internal/config"
	"github.com/actuallystonmai/newsletter-finder/internal/controller"
	"github.com/actuallystonmai/newsletter-finder/internal/logging"
	"github.com/actuallystonmai/newsletter-finder/internal/ui"
)

func main() {
	cfg, err := config.LoadFinder()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	endpoint := flag.String("endpoint", cfg.Endpoint, "Recommendation endpoint URL")
	flag.Parse()

	// Log to a file; the terminal belongs to the UI.
	logFile, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not open log file: %v\n", err)
		logging.Init(logging.Config{Level: "disabled"})
	} else {
		defer logFile.Close()
		logging.Init(logging.Config{Level: cfg.LogLevel, Format: "json", Output: logFile})
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.RequestTimeout}
	ctrl := controller.New(client.New(*endpoint, httpClient))

	logging.Info().Str("endpoint", *endpoint).Msg("[finder] starting")

	p := tea.NewProgram(ui.NewModel(ctx, ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		logging.Error().Err(err).Msg("[finder] program exited with error")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
