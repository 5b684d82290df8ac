package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"tagmanager/internal/adapters/apiclient"
	"tagmanager/internal/adapters/editor"
	"tagmanager/internal/adapters/search"
	"tagmanager/internal/adapters/tui"
	"tagmanager/internal/adapters/yamlstore"
	"tagmanager/internal/application/clientstate"
	"tagmanager/internal/config"
	"tagmanager/internal/logging"
)

func main() {
	apiURL := flag.String("api-url", config.APIURL(), "tag server base URL")
	tagsDir := flag.String("tags-dir", "", "local tags directory; enables opening tags in $EDITOR")
	logFile := flag.String("log-file", "", "write logs to this file (the terminal belongs to the UI)")
	flag.Parse()

	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger, err := logging.New(config.LogLevel(), config.LogFormat(), f)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		slog.SetDefault(logger)
	}

	store := clientstate.New(apiclient.New(*apiURL), clientstate.WithSearcher(search.NewFuzzy()))

	var opts []tui.Option
	if *tagsDir != "" {
		opts = append(opts, tui.WithEditor(editor.NewOpener(), yamlstore.NewRepository(*tagsDir)))
	}

	app := tui.NewApp(store, opts...)
	defer app.Close()

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
