package models

import (
	"fmt"
	"strings"

	"github.com/fenilsonani/wordguard/internal/reporter"
	"github.com/fenilsonani/wordguard/internal/ui/styles"
)

// SummaryViewModel renders the report of a finished scan
type SummaryViewModel struct {
	report    *reporter.Report
	outputDir string
}

// NewSummaryViewModel creates a new summary view model
func NewSummaryViewModel(report *reporter.Report, outputDir string) *SummaryViewModel {
	return &SummaryViewModel{
		report:    report,
		outputDir: outputDir,
	}
}

// Lines returns how many lines View produces
func (m *SummaryViewModel) Lines() int {
	return strings.Count(m.View(), "\n")
}

// View renders the summary view
func (m *SummaryViewModel) View() string {
	var b strings.Builder

	if m.report == nil {
		return ""
	}

	b.WriteString(styles.SubtitleStyle.Render("Top forbidden words:"))
	b.WriteString("\n")

	if len(m.report.TopWords) == 0 {
		b.WriteString(styles.DimStyle.Render("  none found"))
		b.WriteString("\n")
	}
	for _, e := range m.report.TopWords {
		b.WriteString(fmt.Sprintf("  %s: %s\n",
			styles.WordStyle.Render(e.Word),
			styles.CountStyle.Render(fmt.Sprintf("%d times", e.Count))))
	}

	if m.report.Errors > 0 {
		b.WriteString(styles.ErrorStyle.Render(fmt.Sprintf("✗ %d errors occurred", m.report.Errors)))
		b.WriteString("\n")
	}

	if m.outputDir != "" {
		b.WriteString(styles.DimStyle.Render("Output: "))
		b.WriteString(styles.FilePathStyle.Render(m.outputDir))
		b.WriteString("\n")
	}

	return b.String()
}
