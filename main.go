package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
	"messcut/internal/cli"
	"messcut/internal/config"
	"messcut/internal/logs"
	"messcut/internal/messcut"
	"messcut/internal/storage"
	"messcut/internal/tui"
)

func main() {
	// Parse CLI flags
	dataDirFlag := flag.String("data-dir", "", "Data directory")
	flag.StringVar(dataDirFlag, "d", "", "Data directory (shorthand)")
	storageKeyFlag := flag.String("storage-key", "", "Storage key of the mess cut document")
	originFlag := flag.String("origin", "", "Asset origin for the cache commands")
	ephemeralFlag := flag.Bool("ephemeral", false, "Keep data in memory only")
	flag.Parse()

	cliFlags := config.CLIFlags{
		DataDir:    *dataDirFlag,
		StorageKey: *storageKeyFlag,
		Origin:     *originFlag,
	}

	// Load configuration
	cfg, err := config.Load(cliFlags)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Ensure config file exists
	if err := config.EnsureConfigFile(); err != nil {
		log.Printf("Warning: could not create config file: %v", err)
	}

	if err := cfg.EnsureDataDir(); err != nil {
		log.Fatalf("Failed to create data directory: %v", err)
	}

	// Reinitialize logger
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not initialize logger: %v\n", err)
	}
	defer logs.Close()

	var backend storage.Storage
	if *ephemeralFlag {
		backend = storage.NewMemoryStorage()
	} else {
		fileStorage, err := storage.NewFileStorage(cfg.DataDir)
		if err != nil {
			log.Fatalf("Failed to open storage: %v", err)
		}
		backend = fileStorage
	}

	svc := messcut.NewService(messcut.NewStore(backend, cfg.StorageKey))

	// Check for CLI subcommands
	args := flag.Args()
	if len(args) > 0 {
		exitCode := cli.Run(args, &cli.Env{Service: svc, Config: cfg})
		logs.Close()
		os.Exit(exitCode)
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprintln(os.Stderr, "messcut: the calendar needs a terminal; see \"messcut help\" for commands")
		os.Exit(1)
	}

	// TUI mode
	logs.Logger.Println("Starting app in TUI mode")
	appModel := tui.NewAppModel(cfg, svc)
	p := tea.NewProgram(appModel, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		fmt.Println("Error running program:", err)
		os.Exit(1)
	}
}
