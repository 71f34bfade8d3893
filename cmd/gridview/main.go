package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"

	"gridview/internal/config"
	"gridview/internal/eventbus"
	"gridview/internal/grid/orchestrator"
	"gridview/internal/ui"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default: ~/.config/gridview/config.toml)")
	delimiter := flag.String("delimiter", ",", "CSV field delimiter")
	logPath := flag.String("log", "gridview.log", "path to log file")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] <file.csv>\n\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	// Set up logging
	logFile, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		log.Printf("Could not open log file: %v", err)
	} else {
		defer logFile.Close()
		log.SetOutput(logFile)
	}

	csvPath := flag.Arg(0)
	if csvPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	delim := ','
	if *delimiter != "" {
		delim = []rune(*delimiter)[0]
	}

	// Create event bus
	bus := eventbus.New()
	defer bus.Close()

	// Load configuration
	configSvc := config.NewConfigServiceWithBus(bus)
	var cfg *config.Config
	if *configPath != "" {
		cfg, err = configSvc.LoadFromPath(*configPath)
	} else {
		cfg, err = configSvc.Load()
	}
	if err != nil {
		log.Printf("Error loading config: %v", err)
		cfg = config.DefaultConfig()
	}

	// Persist runtime setting changes (column widths) automatically
	bus.Subscribe(eventbus.EventConfigChanged, func(e eventbus.DomainEvent) {
		if event, ok := e.(eventbus.ConfigChangedEvent); ok {
			cfg.ColumnWidths = event.ColumnWidths
			var saveErr error
			if *configPath != "" {
				saveErr = configSvc.SaveToPath(cfg, *configPath)
			} else {
				saveErr = configSvc.Save(cfg)
			}
			if saveErr != nil {
				log.Printf("Failed to save config: %v", saveErr)
			}
		}
	})

	// Create the grid engine
	orch := orchestrator.New(bus, orchestrator.Options{
		OverscanFactor:   cfg.Tuning.OverscanFactor,
		Debounce:         cfg.Tuning.DebounceInterval(),
		DefaultRowHeight: cfg.Tuning.DefaultRowHeight,
		HeightTolerance:  0,
	})

	// Create UI model and program
	uiModel := ui.NewModel(bus, cfg, orch, csvPath, delim)
	p := tea.NewProgram(uiModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	uiModel.SetProgram(p)

	// Handle interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		p.Quit()
	}()

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
