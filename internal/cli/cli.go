package cli

import (
	"fmt"
	"io"
	"os"

	"messcut/internal/config"
	"messcut/internal/messcut"
)

// Env carries what commands need. Out and Err default to stdout and stderr.
type Env struct {
	Service *messcut.Service
	Config  *config.Config
	Out     io.Writer
	Err     io.Writer
}

func (e *Env) stdout() io.Writer {
	if e.Out == nil {
		return os.Stdout
	}
	return e.Out
}

func (e *Env) stderr() io.Writer {
	if e.Err == nil {
		return os.Stderr
	}
	return e.Err
}

// Run executes the CLI with the given arguments and returns the exit code.
func Run(args []string, env *Env) int {
	if len(args) == 0 {
		printUsage(env.stderr())
		return 1
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "mark", "m":
		return runMark(cmdArgs, env)
	case "unmark", "rm":
		return runUnmark(cmdArgs, env)
	case "show", "s":
		return runShow(cmdArgs, env)
	case "count", "c":
		return runCount(cmdArgs, env)
	case "list", "ls", "l":
		return runList(cmdArgs, env)
	case "search", "find":
		return runSearch(cmdArgs, env)
	case "export":
		return runExport(cmdArgs, env)
	case "import":
		return runImport(cmdArgs, env)
	case "cache":
		return runCacheCommand(cmdArgs, env)
	case "help", "-h", "--help":
		printUsage(env.stdout())
		return 0
	default:
		fmt.Fprintf(env.stderr(), "Unknown command: %s\n", command)
		printUsage(env.stderr())
		return 1
	}
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, `messcut - Mess cut tracker

Usage: messcut [flags] [command] [arguments]

Commands:
  mark, m <date> [note...]   Mark a day (overwrites an existing note)
  unmark, rm <date>          Remove the mark from a day
  show, s <date>             Show the mark for a day
  count, c [yyyy-MM]         Mess cuts in a month (default: current month)
  list, ls [yyyy-MM]         List marks, optionally for one month
  search <query>             Fuzzy search notes
  export [flags]             Export marks
              --format ics|csv|json|yaml|md|html   (default ics)
              --month yyyy-MM                      only one month
              --out FILE                           write to FILE instead of stdout
  import <file>              Merge a JSON document exported by "export --format json"
  cache install|activate|fetch
                             Manage the offline asset cache
  help                       Show this help message

Dates: yyyy-MM-dd, MM-dd, today, yesterday, tomorrow, +N, -N

Flags:
  -d, --data-dir <dir>   Data directory
      --storage-key <k>  Storage key of the document
      --origin <url>     Asset origin for the cache commands
      --ephemeral        Keep data in memory only

Running messcut without arguments launches the interactive TUI.`)
}
