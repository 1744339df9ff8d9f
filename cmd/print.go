package cmd

import (
	"fmt"
	"strings"

	"github.com/fatih/color"

	"github.com/gnoswap-labs/elmreview/lint"
)

const tabWidth = 8

var (
	errorStyle   = color.New(color.FgRed, color.Bold)
	ruleStyle    = color.New(color.FgYellow, color.Bold)
	fileStyle    = color.New(color.FgCyan, color.Bold)
	lineStyle    = color.New(color.FgBlue, color.Bold)
	messageStyle = color.New(color.FgRed, color.Bold)
)

// formatFileResult renders every diagnostic in res with an arrow-pointer
// snippet, following gnoverse-tlin's internal/print.go.
func formatFileResult(res lint.FileResult, lines []string) string {
	var b strings.Builder
	for _, d := range res.Diagnostics {
		b.WriteString(formatDiagnosticHeader(res.Path, d))
		b.WriteString(formatDiagnosticBody(d, lines))
	}
	return b.String()
}

func formatDiagnosticHeader(path string, d lint.LintDiagnostic) string {
	return errorStyle.Sprint(severityLabel(d.Severity)+": ") + ruleStyle.Sprint(d.RuleName) + "\n" +
		lineStyle.Sprint(" --> ") + fileStyle.Sprint(path) + "\n"
}

func severityLabel(s lint.Severity) string {
	if s == lint.SeverityWarning {
		return "warning"
	}
	return "error"
}

func formatDiagnosticBody(d lint.LintDiagnostic, lines []string) string {
	var result strings.Builder
	row := d.Diagnostic.Range.Start.Row
	if row < 1 || row > len(lines) {
		result.WriteString(messageStyle.Sprintf("  %s\n\n", d.Diagnostic.Message))
		return result.String()
	}

	lineNumberStr := fmt.Sprintf("%d", row)
	padding := strings.Repeat(" ", len(lineNumberStr))
	result.WriteString(lineStyle.Sprintf("%s |\n", padding))

	line := expandTabs(lines[row-1])
	result.WriteString(lineStyle.Sprintf("%s | ", lineNumberStr))
	result.WriteString(line + "\n")

	visualColumn := calculateVisualColumn(line, d.Diagnostic.Range.Start.Column)
	result.WriteString(lineStyle.Sprintf("%s | ", padding))
	result.WriteString(strings.Repeat(" ", visualColumn))
	result.WriteString(messageStyle.Sprintf("^ %s\n", d.Diagnostic.Message))

	for _, detail := range d.Diagnostic.Details {
		result.WriteString(messageStyle.Sprintf("  %s\n", detail))
	}
	result.WriteString("\n")
	return result.String()
}

func expandTabs(line string) string {
	var expanded strings.Builder
	for i, ch := range line {
		if ch == '\t' {
			spaceCount := tabWidth - (i % tabWidth)
			expanded.WriteString(strings.Repeat(" ", spaceCount))
		} else {
			expanded.WriteRune(ch)
		}
	}
	return expanded.String()
}

func calculateVisualColumn(line string, column int) int {
	visualColumn := 0
	for i, ch := range line {
		if i+1 == column {
			break
		}
		if ch == '\t' {
			visualColumn += tabWidth - (visualColumn % tabWidth)
		} else {
			visualColumn++
		}
	}
	return visualColumn
}
