package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"messcut/internal/dates"
	"messcut/internal/export"
	"messcut/internal/messcut"
)

func runMark(args []string, env *Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.stderr(), "Error: date required")
		fmt.Fprintln(env.stderr(), "Usage: messcut mark <date> [note...]")
		return 1
	}

	day, err := dates.ParseDay(args[0])
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	note := strings.TrimSpace(strings.Join(args[1:], " "))
	env.Service.MarkMessCut(day, note)
	if err := env.Service.Store().Err(); err != nil {
		fmt.Fprintf(env.stderr(), "Error saving: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.stdout(), "Marked: %s\n", dates.FormatDisplay(day))
	return 0
}

func runUnmark(args []string, env *Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.stderr(), "Error: date required")
		fmt.Fprintln(env.stderr(), "Usage: messcut unmark <date>")
		return 1
	}

	day, err := dates.ParseDay(args[0])
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	if env.Service.GetMessCutData(day) == nil {
		fmt.Fprintf(env.stdout(), "Not marked: %s\n", dates.FormatDisplay(day))
		return 0
	}

	env.Service.UnmarkMessCut(day)
	if err := env.Service.Store().Err(); err != nil {
		fmt.Fprintf(env.stderr(), "Error saving: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.stdout(), "Unmarked: %s\n", dates.FormatDisplay(day))
	return 0
}

func runShow(args []string, env *Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.stderr(), "Error: date required")
		fmt.Fprintln(env.stderr(), "Usage: messcut show <date>")
		return 1
	}

	day, err := dates.ParseDay(args[0])
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	mark := env.Service.GetMessCutData(day)
	if mark == nil {
		fmt.Fprintf(env.stdout(), "%s: not marked\n", dates.FormatDisplay(day))
		return 0
	}

	fmt.Fprintf(env.stdout(), "%s: marked at %s\n", dates.FormatDisplay(day), mark.Time().Format("2006-01-02 15:04"))
	if mark.Note != "" {
		fmt.Fprintf(env.stdout(), "Note: %s\n", mark.Note)
	}
	return 0
}

// monthArg returns the month named by args[0], or the current month.
func monthArg(args []string) (int, time.Month, error) {
	if len(args) == 0 {
		now := dates.Now()
		return now.Year(), now.Month(), nil
	}
	return dates.ParseMonth(args[0])
}

func runCount(args []string, env *Env) int {
	year, month, err := monthArg(args)
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	stats := env.Service.MonthlyStats(year, month)
	label := time.Date(year, month, 1, 0, 0, 0, 0, time.Local).Format("January 2006")
	fmt.Fprintf(env.stdout(), "Mess cuts in %s: %d\n", label, stats.Count)
	if stats.LongestStreak > 1 {
		fmt.Fprintf(env.stdout(), "Longest streak: %d days\n", stats.LongestStreak)
	}
	return 0
}

func runList(args []string, env *Env) int {
	var entries []messcut.Entry
	if len(args) == 0 {
		entries = env.Service.Store().All()
	} else {
		year, month, err := dates.ParseMonth(args[0])
		if err != nil {
			fmt.Fprintf(env.stderr(), "Error: %v\n", err)
			return 1
		}
		entries = env.Service.Store().Marks(year, month)
	}

	if len(entries) == 0 {
		fmt.Fprintln(env.stdout(), "No mess cuts found.")
		return 0
	}

	for _, e := range entries {
		printEntry(env.stdout(), e)
	}
	fmt.Fprintf(env.stdout(), "\n%d mess cut(s)\n", len(entries))
	return 0
}

func runSearch(args []string, env *Env) int {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		fmt.Fprintln(env.stderr(), "Error: query required")
		fmt.Fprintln(env.stderr(), "Usage: messcut search <query>")
		return 1
	}

	results := env.Service.Search(query)
	if len(results) == 0 {
		fmt.Fprintln(env.stdout(), "No matching notes.")
		return 0
	}
	for _, e := range results {
		printEntry(env.stdout(), e)
	}
	return 0
}

func printEntry(w io.Writer, e messcut.Entry) {
	if e.Note == "" {
		fmt.Fprintf(w, "%s  %s\n", e.DayKey, e.Date.Format("Mon"))
		return
	}
	fmt.Fprintf(w, "%s  %s  %s\n", e.DayKey, e.Date.Format("Mon"), e.Note)
}

func runExport(args []string, env *Env) int {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	fs.SetOutput(env.stderr())
	format := fs.String("format", export.FormatICS, "Output format: "+strings.Join(export.Formats, ", "))
	monthFlag := fs.String("month", "", "Only export one month (yyyy-MM)")
	out := fs.String("out", "", "Write to file instead of stdout")

	if err := fs.Parse(args); err != nil {
		return 1
	}

	store := env.Service.Store()
	entries := store.All()
	doc := store.Snapshot()
	if *monthFlag != "" {
		year, month, err := dates.ParseMonth(*monthFlag)
		if err != nil {
			fmt.Fprintf(env.stderr(), "Error: %v\n", err)
			return 1
		}
		entries = store.Marks(year, month)
		key := dates.MonthKeyFor(year, month)
		doc = messcut.Document{}
		if bucket, ok := store.Snapshot()[key]; ok {
			doc[key] = bucket
		}
	}

	write := func(w io.Writer) error {
		return export.Write(w, *format, entries, doc)
	}

	if *out == "" {
		if err := write(env.stdout()); err != nil {
			fmt.Fprintf(env.stderr(), "Error exporting: %v\n", err)
			return 1
		}
		return 0
	}

	f, err := os.Create(*out)
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error creating %s: %v\n", *out, err)
		return 1
	}
	if err := writeAndClose(f, write); err != nil {
		fmt.Fprintf(env.stderr(), "Error exporting to %s: %v\n", *out, err)
		return 1
	}

	fmt.Fprintf(env.stdout(), "Exported %d mess cut(s) to %s\n", len(entries), *out)
	return 0
}

// writeAndClose runs write against wc and always closes it. A close error is
// returned when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	err := write(wc)
	if cerr := wc.Close(); err == nil {
		err = cerr
	}
	return err
}

func runImport(args []string, env *Env) int {
	if len(args) == 0 {
		fmt.Fprintln(env.stderr(), "Error: file required")
		fmt.Fprintln(env.stderr(), "Usage: messcut import <file>")
		return 1
	}

	f, err := os.Open(args[0])
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}
	defer f.Close()

	doc, err := export.ReadDocument(f)
	if err != nil {
		fmt.Fprintf(env.stderr(), "Error: %v\n", err)
		return 1
	}

	imported, skipped := env.Service.Store().Import(doc)
	if err := env.Service.Store().Err(); err != nil {
		fmt.Fprintf(env.stderr(), "Error saving: %v\n", err)
		return 1
	}

	fmt.Fprintf(env.stdout(), "Imported %d mess cut(s)", imported)
	if skipped > 0 {
		fmt.Fprintf(env.stdout(), ", skipped %d invalid", skipped)
	}
	fmt.Fprintln(env.stdout())
	return 0
}
