// Sabius: context retrieval and prompt assembly core for the
// Convergence Lab conversational assistant (Universidad de La Sabana).
//
// The external real-time dialogue engine connects over MCP stdio and
// drives the core by name: it builds the per-turn instruction context,
// records dialogue turns into the bounded transcript window, and
// queries the entity catalogs.
//
// Usage:
//
//	sabius serve [-config path]   # Start MCP server (stdio transport)
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/convergencelab/sabius/internal/config"
	"github.com/convergencelab/sabius/internal/logging"
	sabiusserver "github.com/convergencelab/sabius/internal/server"
	"github.com/mark3labs/mcp-go/server"
	"go.uber.org/zap"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "serve":
		if err := run(os.Args[2:]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "--help", "-h", "help":
		printUsage()
	case "--version", "-v", "version":
		fmt.Printf("sabius v%s\n", sabiusserver.Version)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func run(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "path to the YAML configuration file (optional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	// All logging goes to stderr: stdout is the MCP stdio transport.
	if err := logging.Setup(os.Getenv("SABIUS_LOG_LEVEL")); err != nil {
		return fmt.Errorf("configuring logger: %w", err)
	}
	defer logging.Sync()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	s, err := sabiusserver.New(cfg)
	if err != nil {
		return fmt.Errorf("creating server: %w", err)
	}

	logging.L().Info("sabius context core ready",
		zap.String("version", sabiusserver.Version),
		zap.Int("max_budget", cfg.MaxBudget),
		zap.Int("max_modules", cfg.MaxModules),
		zap.Int("window_max_size", cfg.WindowMaxSize))

	return server.ServeStdio(s)
}

func printUsage() {
	fmt.Println(`sabius - context core for the Convergence Lab assistant

Usage:
  sabius serve [-config path]   Start the MCP server (stdio transport)
  sabius version                Show version
  sabius help                   Show this help

Environment:
  SABIUS_LOG_LEVEL   debug | info | warn | error (default: info)`)
}
