package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"gopkg.in/yaml.v3"
	"messcut/internal/messcut"
)

const (
	ICSProductID = "-//messcut//Mess Cut Tracker//EN"
	icsStampFmt  = "20060102T150405Z"
	icsDateFmt   = "20060102"
	icsLineLimit = 75 // octets per content line, excluding CRLF
)

// Format names accepted by Write.
const (
	FormatICS      = "ics"
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatYAML     = "yaml"
	FormatMarkdown = "md"
	FormatHTML     = "html"
)

var Formats = []string{FormatICS, FormatCSV, FormatJSON, FormatYAML, FormatMarkdown, FormatHTML}

// uidNamespace scopes the name-based event UIDs so re-exports of the same day
// produce the same UID.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://messcut.local/marks"))

// Write renders entries in the given format. doc is used by the formats that
// mirror the storage document (json, yaml).
func Write(w io.Writer, format string, entries []messcut.Entry, doc messcut.Document) error {
	switch strings.ToLower(format) {
	case FormatICS:
		return ICS(w, entries, time.Now())
	case FormatCSV:
		return CSV(w, entries)
	case FormatJSON:
		return JSON(w, doc)
	case FormatYAML:
		return YAML(w, doc)
	case FormatMarkdown, "markdown":
		return Markdown(w, entries)
	case FormatHTML:
		return HTML(w, entries)
	default:
		return fmt.Errorf("unknown export format %q (want one of %s)", format, strings.Join(Formats, ", "))
	}
}

// EventUID returns the stable UID of the all-day event for a day key.
func EventUID(dayKey string) string {
	return uuid.NewSHA1(uidNamespace, []byte(dayKey)).String() + "@messcut"
}

// ICS writes an iCalendar file with one all-day event per mark.
func ICS(w io.Writer, entries []messcut.Entry, now time.Time) error {
	var buf bytes.Buffer
	line := func(format string, args ...any) {
		buf.WriteString(foldICS(fmt.Sprintf(format, args...)))
		buf.WriteString("\r\n")
	}

	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:%s", ICSProductID)
	line("CALSCALE:GREGORIAN")
	line("X-WR-CALNAME:Mess Cuts")

	stamp := now.UTC().Format(icsStampFmt)
	for _, e := range entries {
		line("BEGIN:VEVENT")
		line("UID:%s", EventUID(e.DayKey))
		line("DTSTAMP:%s", stamp)
		line("DTSTART;VALUE=DATE:%s", e.Date.Format(icsDateFmt))
		line("DTEND;VALUE=DATE:%s", e.Date.AddDate(0, 0, 1).Format(icsDateFmt))
		line("SUMMARY:Mess cut")
		if e.Note != "" {
			line("DESCRIPTION:%s", escapeICS(e.Note))
		}
		if e.Timestamp > 0 {
			line("LAST-MODIFIED:%s", e.Time().UTC().Format(icsStampFmt))
		}
		line("END:VEVENT")
	}

	line("END:VCALENDAR")
	_, err := w.Write(buf.Bytes())
	return err
}

// foldICS splits a content line into chunks of at most icsLineLimit octets,
// each continuation starting with a single space. UTF-8 sequences are never
// split.
func foldICS(s string) string {
	if len(s) <= icsLineLimit {
		return s
	}

	var b strings.Builder
	limit := icsLineLimit
	for len(s) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		b.WriteString(s[:cut])
		b.WriteString("\r\n ")
		s = s[cut:]
		limit = icsLineLimit - 1
	}
	b.WriteString(s)
	return b.String()
}

func escapeICS(s string) string {
	r := strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\r\n", `\n`, "\n", `\n`)
	return r.Replace(s)
}

// CSV writes date,note,timestamp rows with a header.
func CSV(w io.Writer, entries []messcut.Entry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"date", "note", "timestamp"}); err != nil {
		return err
	}
	for _, e := range entries {
		if err := cw.Write([]string{e.DayKey, e.Note, strconv.FormatInt(e.Timestamp, 10)}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// JSON writes the storage document, indented.
func JSON(w io.Writer, doc messcut.Document) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}

// YAML writes the storage document as YAML.
func YAML(w io.Writer, doc messcut.Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}

// Markdown writes a report with one section per month.
func Markdown(w io.Writer, entries []messcut.Entry) error {
	var buf bytes.Buffer
	buf.WriteString("# Mess Cuts\n")

	if len(entries) == 0 {
		buf.WriteString("\nNo mess cuts recorded.\n")
	}

	month := ""
	count := 0
	var rows []string
	flush := func() {
		if month == "" {
			return
		}
		fmt.Fprintf(&buf, "\n## %s\n\nTotal: **%d**\n\n", month, count)
		for _, r := range rows {
			buf.WriteString(r)
		}
	}

	for _, e := range entries {
		label := e.Date.Format("January 2006")
		if label != month {
			flush()
			month, count, rows = label, 0, nil
		}
		count++
		row := "- " + e.Date.Format("Mon 02 Jan")
		if e.Note != "" {
			row += ": " + escapeMarkdown(e.Note)
		}
		rows = append(rows, row+"\n")
	}
	flush()

	_, err := w.Write(buf.Bytes())
	return err
}

func escapeMarkdown(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	r := strings.NewReplacer(`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "<", "&lt;", ">", "&gt;", "[", `\[`, "#", `\#`)
	return r.Replace(s)
}

// HTML renders the Markdown report to a standalone HTML page.
func HTML(w io.Writer, entries []messcut.Entry) error {
	var md bytes.Buffer
	if err := Markdown(&md, entries); err != nil {
		return err
	}

	var body bytes.Buffer
	if err := goldmark.Convert(md.Bytes(), &body); err != nil {
		return fmt.Errorf("error rendering report: %w", err)
	}

	_, err := fmt.Fprintf(w, "<!DOCTYPE html>\n<html>\n<head><meta charset=\"utf-8\"><title>Mess Cuts</title></head>\n<body>\n%s</body>\n</html>\n", body.String())
	return err
}

// ReadDocument parses a storage document (JSON) for import.
func ReadDocument(r io.Reader) (messcut.Document, error) {
	var doc messcut.Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error parsing document: %w", err)
	}
	return doc, nil
}
