// Package render provides formatted CLI output for scan results.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-radar/internal/scan"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxSkillsToShow is the number of suggested skills displayed in full
	maxSkillsToShow = 8
)

// Printer handles formatted output.
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer.
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintScanResult outputs a human-readable summary of the backend analysis.
// Every field may be absent; absent fields render as their empty form.
func (p *Printer) PrintScanResult(result *scan.ScanResponse) {
	if result == nil {
		return
	}

	var sb strings.Builder

	if result.ATSScore != nil {
		sb.WriteString(fmt.Sprintf("ATS Score: %.1f / 100\n", *result.ATSScore))
	} else {
		sb.WriteString("ATS Score: n/a\n")
	}

	if len(result.SuggestedSkills) > 0 {
		sb.WriteString("\nSuggested skills:\n")
		for i, skill := range result.SuggestedSkills {
			if i == maxSkillsToShow {
				sb.WriteString(fmt.Sprintf("  ...and %d more\n", len(result.SuggestedSkills)-maxSkillsToShow))
				break
			}
			sb.WriteString("  - " + skill + "\n")
		}
	}

	if len(result.ImprovementAdvice) > 0 {
		sb.WriteString("\nImprovement advice:\n")
		for _, item := range result.ImprovementAdvice {
			sb.WriteString(fmt.Sprintf("  %s\n", item.Issue))
			sb.WriteString(fmt.Sprintf("    -> %s\n", item.Advice))
		}
	}

	p.printBox("Scan Result", strings.TrimRight(sb.String(), "\n"))
}

// PrintExtraction outputs the extracted job description with its source.
func (p *Printer) PrintExtraction(source, text string) {
	title := "Extracted Job Description"
	if source != "" {
		title = fmt.Sprintf("Extracted Job Description (%s)", truncate(source, boxWidth-30))
	}
	p.printBox(title, wrap(text, boxWidth-6))
}

// PrintUpload outputs the accepted resume's display line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintUpload(filename string, sizeKB int) {
	fmt.Fprintf(p.out, "Resume: %s (%d KB)\n", filename, sizeKB)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

// wrap breaks text into lines of at most width characters on word
// boundaries.
func wrap(text string, width int) string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return ""
	}

	var sb strings.Builder
	lineLen := 0
	for i, word := range words {
		if lineLen > 0 && lineLen+1+len(word) > width {
			sb.WriteString("\n")
			lineLen = 0
		} else if i > 0 {
			sb.WriteString(" ")
			lineLen++
		}
		sb.WriteString(word)
		lineLen += len(word)
	}
	return sb.String()
}
