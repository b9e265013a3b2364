// Package main provides the pagehand MCP server: remote-controllable
// browser actions over stdio, backed by Playwright, with a DOM extraction
// core that compresses live pages into compact trees.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pagehand/pagehand/pkg/browser"
	"github.com/pagehand/pagehand/pkg/config"
	"github.com/pagehand/pagehand/pkg/dom"
	"github.com/pagehand/pagehand/pkg/logging"
	"github.com/pagehand/pagehand/pkg/server"
)

const version = "0.1.0"

type cliFlags struct {
	configFile  string
	headed      bool
	dumpFile    string
	showVersion bool
}

func main() {
	flags := parseFlags()

	if flags.showVersion {
		fmt.Printf("pagehand %s\n", version)
		return
	}

	if flags.dumpFile != "" {
		if err := dumpStatic(flags.dumpFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func parseFlags() cliFlags {
	var flags cliFlags
	flag.StringVar(&flags.configFile, "config", "", "Path to YAML configuration file")
	flag.BoolVar(&flags.headed, "headed", false, "Run the browser with a visible window")
	flag.StringVar(&flags.dumpFile, "dump", "", "Extract and print the outline of a static HTML file, then exit")
	flag.BoolVar(&flags.showVersion, "version", false, "Show version and exit")
	flag.Parse()
	return flags
}

func loadConfig(flags cliFlags) (config.Config, error) {
	cfg := config.Default()
	if flags.configFile != "" {
		loaded, err := config.Load(flags.configFile)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if flags.headed {
		headless := false
		cfg.Headless = &headless
	}
	return cfg, nil
}

func run(flags cliFlags) error {
	cfg, err := loadConfig(flags)
	if err != nil {
		return err
	}

	log, logErr := logging.NewLogger("main")
	if logErr != nil {
		fmt.Fprintf(os.Stderr, "Warning: file logging unavailable: %v\n", logErr)
	}
	defer log.Close()

	manager := browser.NewManager(browser.Options{
		Headless: *cfg.Headless,
		Viewport: browser.Viewport{
			Width:  cfg.ViewportWidth,
			Height: cfg.ViewportHeight,
		},
		Timeout:      cfg.TimeoutMS,
		ConsoleLimit: cfg.ConsoleLogLimit,
	}, log)
	defer func() {
		if err := manager.Shutdown(); err != nil {
			log.Errorf("browser shutdown: %v", err)
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg, manager, log)
	return srv.Run(ctx, version)
}

// dumpStatic extracts a static HTML file through the same core the
// browser_snapshot tool uses and prints the outline rendering. Handy for
// debugging the extractor without a browser.
func dumpStatic(path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	snapshot, err := dom.FromHTML(file)
	if err != nil {
		return err
	}

	tree, err := dom.Extract(snapshot)
	if err != nil {
		return err
	}

	payload, err := dom.Serialize(tree, dom.FormatOutline)
	if err != nil {
		return err
	}

	fmt.Print(payload)
	return nil
}
