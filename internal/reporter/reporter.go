package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/olekukonko/tablewriter"
	"gopkg.in/yaml.v3"

	"github.com/fenilsonani/wordguard/internal/progress"
	"github.com/fenilsonani/wordguard/internal/tally"
)

// DateLayout is the timestamp layout of the text report
const DateLayout = "2006-01-02 15:04:05"

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatText  OutputFormat = "text"
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatTable OutputFormat = "table"
)

// ParseFormat validates a format name. An empty name means FormatText.
func ParseFormat(s string) (OutputFormat, error) {
	switch f := OutputFormat(s); f {
	case "":
		return FormatText, nil
	case FormatText, FormatJSON, FormatYAML, FormatTable:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format: %s", s)
	}
}

// Report summarizes one scan. It is built once, when the scan ends.
type Report struct {
	ID              uuid.UUID
	GeneratedAt     time.Time
	TotalMatched    int
	FilesProcessed  int
	FilesDiscovered int
	Errors          int
	Cancelled       bool
	Duration        time.Duration
	TopWords        []tally.Entry
}

// Build assembles a report from the final progress stats and the top words.
func Build(id uuid.UUID, stats progress.Stats, top []tally.Entry, cancelled bool, finished time.Time) *Report {
	var d time.Duration
	if !stats.StartTime.IsZero() {
		d = finished.Sub(stats.StartTime)
	}

	words := make([]tally.Entry, len(top))
	copy(words, top)

	return &Report{
		ID:              id,
		GeneratedAt:     finished,
		TotalMatched:    stats.Matched,
		FilesProcessed:  stats.Processed,
		FilesDiscovered: stats.Discovered,
		Errors:          stats.Errors,
		Cancelled:       cancelled,
		Duration:        d,
		TopWords:        words,
	}
}

// Reporter handles report generation
type Reporter struct {
	writer io.Writer
	format OutputFormat
}

// New creates a new Reporter
func New(writer io.Writer, format OutputFormat) *Reporter {
	return &Reporter{
		writer: writer,
		format: format,
	}
}

// Write renders report in the reporter's format
func (r *Reporter) Write(report *Report) error {
	if report == nil {
		return fmt.Errorf("no report to write")
	}

	switch r.format {
	case FormatText, "":
		return r.writeText(report)
	case FormatTable:
		return r.writeTable(report)
	case FormatJSON:
		return r.writeJSON(report)
	case FormatYAML:
		return r.writeYAML(report)
	default:
		return fmt.Errorf("unsupported format: %s", r.format)
	}
}

// writeText generates the plain report.txt layout
func (r *Reporter) writeText(report *Report) error {
	if _, err := fmt.Fprintf(r.writer, "Date: %s\n", report.GeneratedAt.Local().Format(DateLayout)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.writer, "Total files found: %d\n", report.TotalMatched); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(r.writer, "\nTop-%d forbidden words:\n", tally.TopN); err != nil {
		return err
	}
	for _, e := range report.TopWords {
		if _, err := fmt.Fprintf(r.writer, "%s: %d times\n", e.Word, e.Count); err != nil {
			return err
		}
	}
	return nil
}

// writeTable generates the terminal summary
func (r *Reporter) writeTable(report *Report) error {
	status := "completed"
	if report.Cancelled {
		status = "cancelled"
	}

	fmt.Fprintf(r.writer, "=== Scan Summary (%s) ===\n", status)
	fmt.Fprintf(r.writer, "Files processed: %d of %d\n", report.FilesProcessed, report.FilesDiscovered)
	fmt.Fprintf(r.writer, "Files matched:   %d\n", report.TotalMatched)
	fmt.Fprintf(r.writer, "Duration:        %s\n", progress.FormatDuration(report.Duration))
	if report.Errors > 0 {
		fmt.Fprintf(r.writer, "Errors:          %d\n", report.Errors)
	}
	fmt.Fprintln(r.writer)

	if len(report.TopWords) == 0 {
		_, err := fmt.Fprintln(r.writer, "No forbidden words found.")
		return err
	}

	table := tablewriter.NewWriter(r.writer)
	table.Header("Rank", "Word", "Files")
	for i, e := range report.TopWords {
		if err := table.Append([]string{strconv.Itoa(i + 1), e.Word, strconv.Itoa(e.Count)}); err != nil {
			return fmt.Errorf("failed to build table: %w", err)
		}
	}
	return table.Render()
}

// document is the serialized shape shared by the JSON and YAML formats
type document struct {
	ID              string        `json:"id" yaml:"id"`
	Timestamp       string        `json:"timestamp" yaml:"timestamp"`
	TotalMatched    int           `json:"total_matched" yaml:"total_matched"`
	FilesProcessed  int           `json:"files_processed" yaml:"files_processed"`
	FilesDiscovered int           `json:"files_discovered" yaml:"files_discovered"`
	Errors          int           `json:"errors" yaml:"errors"`
	Cancelled       bool          `json:"cancelled" yaml:"cancelled"`
	Duration        string        `json:"duration" yaml:"duration"`
	TopWords        []tally.Entry `json:"top_words" yaml:"top_words"`
}

func toDocument(report *Report) document {
	words := report.TopWords
	if words == nil {
		words = []tally.Entry{}
	}
	return document{
		ID:              report.ID.String(),
		Timestamp:       report.GeneratedAt.Format(time.RFC3339),
		TotalMatched:    report.TotalMatched,
		FilesProcessed:  report.FilesProcessed,
		FilesDiscovered: report.FilesDiscovered,
		Errors:          report.Errors,
		Cancelled:       report.Cancelled,
		Duration:        report.Duration.String(),
		TopWords:        words,
	}
}

// writeJSON generates a JSON report
func (r *Reporter) writeJSON(report *Report) error {
	encoder := json.NewEncoder(r.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(toDocument(report))
}

// writeYAML generates a YAML report
func (r *Reporter) writeYAML(report *Report) error {
	encoder := yaml.NewEncoder(r.writer)
	defer encoder.Close()
	return encoder.Encode(toDocument(report))
}

// SaveToFile saves the report to a file
func SaveToFile(report *Report, path string, format OutputFormat) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	if err := New(file, format).Write(report); err != nil {
		return err
	}
	return file.Close()
}
