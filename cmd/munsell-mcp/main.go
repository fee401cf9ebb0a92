package main

import (
	"fmt"
	"log"
	"os"

	"github.com/ironsheep/munsell-mcp/internal/config"
	"github.com/ironsheep/munsell-mcp/internal/palette"
	"github.com/ironsheep/munsell-mcp/internal/server"
	"github.com/ironsheep/munsell-mcp/internal/table"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Handle --version and -v flags
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("munsell-mcp %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Println("munsell-mcp - MCP server for Munsell colour notation")
			fmt.Println()
			fmt.Println("Usage: munsell-mcp [options]")
			fmt.Println()
			fmt.Println("Options:")
			fmt.Println("  --version, -v    Print version information")
			fmt.Println("  --help, -h       Print this help message")
			fmt.Println()
			fmt.Println("Environment variables:")
			fmt.Println("  MUNSELL_MCP_LOG_LEVEL=debug    Enable debug logging")
			fmt.Println("  MUNSELL_MCP_TABLE=<path>       Load the reference table from a YAML file")
			fmt.Println("  MUNSELL_MCP_WORKERS=<n>        Worker goroutines for large batches")
			fmt.Println("  MUNSELL_MCP_CONFIG=<path>      YAML file with log_level, table and workers")
			fmt.Println()
			fmt.Println("This server communicates via MCP protocol over stdin/stdout.")
			fmt.Println("Configure it in your MCP client (e.g., Claude Desktop).")
			return
		}
	}

	// Configure logging to stderr (stdout is for MCP protocol)
	log.SetOutput(os.Stderr)
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Configuration error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Munsell MCP Server v%s (built %s, commit %s)", Version, BuildTime, GitCommit)
	}

	t, err := loadTable(cfg)
	if err != nil {
		log.Fatalf("Reference table error: %v", err)
	}
	if cfg.Debug() {
		log.Printf("Reference table: %d entries, %d workers", t.Len(), cfg.Workers)
	}

	engine := palette.New(t, palette.WithWorkers(cfg.Workers))
	srv := server.New(engine, cfg.Debug())
	if err := srv.Run(); err != nil {
		log.Fatalf("Server error: %v", err)
	}
}

func loadTable(cfg config.Config) (*table.Table, error) {
	if cfg.TablePath == "" {
		return table.Builtin(), nil
	}
	return table.LoadFile(cfg.TablePath)
}
