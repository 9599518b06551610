package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/locus/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	// Register custom flag for multiple config files
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: locus [flags] <command> [command flags]

Commands:
  search    Text search for places
  nearby    Search for places near a location
  details   Fetch details for a single place ID
  photo     Resolve a photo name to a download URI
  collect   Run search definitions and persist results
  list      List collected places from local storage
  version   Print version information

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	// Handle version flag
	if *showVersion || *showVersionV {
		fmt.Printf("Locus version %s\n", common.GetFullVersion())
		os.Exit(0)
	}

	args := flag.Args()
	if len(args) == 0 {
		usage()
		os.Exit(2)
	}

	if args[0] == "version" {
		fmt.Printf("Locus version %s\n", common.GetFullVersion())
		return
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load .env so GOOGLE_MAPS_API_KEY is visible to the config loader
	// 2. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 3. Initialize logger
	_ = godotenv.Load()

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("locus.toml"); err == nil {
			configFiles = append(configFiles, "locus.toml")
		}
	}

	var err error
	config, err = common.LoadConfig(configFiles...)
	if err != nil {
		// Use temporary logger for startup errors
		arbor.NewLogger().Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger = common.InitLogger(config)

	if err := dispatch(args[0], args[1:]); err != nil {
		logger.Error().Err(err).Str("command", args[0]).Msg("Command failed")
		os.Exit(1)
	}
}

func dispatch(command string, args []string) error {
	switch command {
	case "search":
		return runSearch(args)
	case "nearby":
		return runNearby(args)
	case "details":
		return runDetails(args)
	case "photo":
		return runPhoto(args)
	case "collect":
		return runCollect(args)
	case "list":
		return runList(args)
	default:
		usage()
		return fmt.Errorf("unknown command: %s", command)
	}
}
