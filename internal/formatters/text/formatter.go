// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package text

import (
	"fmt"
	"strings"

	"rollcall/internal/formatters"

	"github.com/fatih/color"
)

// Formatter implements text-based output formatting
type Formatter struct {
	colors map[string]*color.Color
}

// NewFormatter creates a new text formatter
func NewFormatter() *Formatter {
	return &Formatter{
		colors: map[string]*color.Color{
			"green":  color.New(color.FgGreen),
			"yellow": color.New(color.FgYellow),
			"red":    color.New(color.FgRed),
			"cyan":   color.New(color.FgCyan),
			"white":  color.New(color.FgWhite, color.Bold),
		},
	}
}

func (f *Formatter) Name() string {
	return "text"
}

func (f *Formatter) Description() string {
	return "Human-readable report, or one name per line for roster exports"
}

func (f *Formatter) FileExtension() string {
	return ".txt"
}

func (f *Formatter) Format(report formatters.Report, options formatters.FormatterOptions) (string, error) {
	// Roster exports are plain newline separated names
	if options.RosterOnly {
		return strings.Join(report.Roster, "\n"), nil
	}

	var builder strings.Builder

	f.appendHeaders(&builder, report, options)

	if options.Verbose {
		builder.WriteString(f.paint("white", "Roster entries:", options))
		builder.WriteString("\n")
		if len(report.Roster) == 0 {
			builder.WriteString("  (empty)\n")
		}
		for _, entry := range report.Roster {
			fmt.Fprintf(&builder, "  %s\n", entry)
		}
		builder.WriteString("\n")
	}

	if len(report.Results) == 0 && len(report.NotFound) == 0 {
		builder.WriteString("No candidate names were given.")
		return builder.String(), nil
	}

	if len(report.Results) > 0 {
		builder.WriteString(f.paint("green", "Found:", options))
		builder.WriteString("\n")
		for _, result := range report.Results {
			fmt.Fprintf(&builder, "  %s\n", f.paint("white", result.Candidate, options))
			for _, entry := range result.Found {
				fmt.Fprintf(&builder, "    - %s\n", entry)
			}
		}
	}

	if len(report.NotFound) > 0 {
		if len(report.Results) > 0 {
			builder.WriteString("\n")
		}
		builder.WriteString(f.paint("red", "Not found:", options))
		builder.WriteString("\n")
		for _, missing := range report.NotFound {
			fmt.Fprintf(&builder, "  %s\n", missing)
		}
	}

	fmt.Fprintf(&builder, "\n%d of %d candidates found", len(report.Results), len(report.Results)+len(report.NotFound))

	return builder.String(), nil
}

func (f *Formatter) appendHeaders(builder *strings.Builder, report formatters.Report, options formatters.FormatterOptions) {
	if report.Document != "" {
		fmt.Fprintf(builder, "%s %s\n", f.paint("cyan", "Document:", options), report.Document)
	}
	fmt.Fprintf(builder, "%s %.2f\n", f.paint("cyan", "Threshold:", options), report.Threshold)
	fmt.Fprintf(builder, "%s %d names\n\n", f.paint("cyan", "Roster:", options), len(report.Roster))
}

func (f *Formatter) paint(name, s string, options formatters.FormatterOptions) string {
	if options.NoColor {
		return s
	}
	return f.colors[name].Sprint(s)
}

// Register the formatter during package initialization
func init() {
	formatters.Register(NewFormatter())
}
