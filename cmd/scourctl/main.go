// Command scourctl is the maintenance CLI for scour.
//
// Usage:
//
//	scourctl                     Show help
//	scourctl events              JSONL event log viewer
//	scourctl history             Recent searches and visited results
//	scourctl page <query>        Fetch one results page from the backend
//	scourctl config              Print or initialize the configuration
package main

import (
	"fmt"
	"os"
)

const usage = `scourctl: scour debug & maintenance CLI

Usage:
  scourctl <command> [flags]

Commands:
  events      JSONL event log viewer
  history     Recent searches and visited results (-clear to forget searches)
  page        Fetch one results page and print it with keyword breakdowns
  config      Print the effective configuration (-init writes defaults)

Environment:
  SCOUR_BASE_URL     Search backend (default: http://127.0.0.1:5000)
  SCOUR_TIMEOUT      Request timeout, e.g. 90s
  SCOUR_DATA_DIR     Data directory (default: ~/.scour)

Run 'scourctl <command> -h' for command-specific help.
`

func main() {
	if len(os.Args) < 2 {
		fmt.Print(usage)
		os.Exit(0)
	}

	cmd := os.Args[1]
	// Strip the program name + subcommand so flag sets see only their flags
	os.Args = os.Args[1:]

	switch cmd {
	case "events":
		runEvents()
	case "history":
		runHistory()
	case "page":
		runPage()
	case "config":
		runConfig()
	case "-h", "--help", "help":
		fmt.Print(usage)
	default:
		fmt.Fprintf(os.Stderr, "scourctl: unknown command %q\n\n", cmd)
		fmt.Print(usage)
		os.Exit(1)
	}
}
