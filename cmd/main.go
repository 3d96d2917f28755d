// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"golang.org/x/term"

	"rollcall/internal/config"
	"rollcall/internal/core"
	"rollcall/internal/formatters"
	"rollcall/internal/help"
	"rollcall/internal/matcher"
	"rollcall/internal/preprocessors"
	"rollcall/internal/version"
	"rollcall/internal/web"

	// Import formatters to register them
	_ "rollcall/internal/formatters/csv"
	_ "rollcall/internal/formatters/json"
	_ "rollcall/internal/formatters/text"
	_ "rollcall/internal/formatters/yaml"
)

// Exit codes
const (
	exitOK         = 0
	exitProcessing = 1
	exitUsage      = 2
)

// configFlags holds command line flag values
type configFlags struct {
	outputFormat string
	threshold    float64
	verbose      bool
	debug        bool
	noColor      bool
}

// finalConfiguration holds resolved configuration values
type finalConfiguration struct {
	format    string
	threshold float64
	verbose   bool
	debug     bool
	noColor   bool
}

// loadConfiguration loads the configuration file or returns default config
func loadConfiguration(configFile string, stderr io.Writer) *config.Config {
	cfg, err := config.LoadConfigOrDefault(configFile)
	if err != nil {
		fmt.Fprintf(stderr, "Warning: Error loading config file: %v\n", err)
		fmt.Fprintf(stderr, "Using default configuration\n")
	}
	return cfg
}

// resolveConfiguration resolves final configuration values from config file,
// profile, and command line flags, in that order of precedence.
func resolveConfiguration(cfg *config.Config, activeProfile *config.Profile, flags *configFlags, isSet func(string) bool) *finalConfiguration {
	final := &finalConfiguration{
		format:    config.DefaultFormat,
		threshold: 1.0,
	}

	if cfg != nil {
		if cfg.Defaults.Format != "" {
			final.format = cfg.Defaults.Format
		}
		if cfg.Defaults.Threshold != 0 {
			final.threshold = cfg.Defaults.Threshold
		}
		final.debug = cfg.Defaults.Debug
		final.noColor = cfg.Defaults.NoColor
	}

	if activeProfile != nil {
		if activeProfile.Format != "" {
			final.format = activeProfile.Format
		}
		if activeProfile.Threshold != 0 {
			final.threshold = activeProfile.Threshold
		}
		final.debug = final.debug || activeProfile.Debug
		final.noColor = final.noColor || activeProfile.NoColor
	}

	if isSet("format") && flags.outputFormat != "" {
		final.format = flags.outputFormat
	}
	if isSet("threshold") {
		final.threshold = flags.threshold
	}
	if isSet("verbose") {
		final.verbose = flags.verbose
	}
	if isSet("debug") {
		final.debug = flags.debug
	}
	if isSet("no-color") {
		final.noColor = flags.noColor
	}

	return final
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("rollcall", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {}

	inputFile := fs.String("file", "", "PDF or UTF-8 text document to read")
	names := fs.String("names", "", "Comma separated names to look for")
	threshold := fs.Float64("threshold", 1.0, "Minimum similarity between 0.5 and 1.0")
	outputFormat := fs.String("format", "", "Output format: text, json, yaml, csv (default: text)")
	outputFile := fs.String("output", "", "Path to output file or directory (if not specified, output to stdout)")
	configFile := fs.String("config", "", "Path to configuration file (YAML)")
	profileName := fs.String("profile", "", "Profile name to use from config file")
	listProfiles := fs.Bool("list-profiles", false, "List available profiles")
	rosterOnly := fs.Bool("roster-only", false, "Output only the names extracted from the document")
	extractOnly := fs.Bool("extract-only", false, "Output only the raw document text")
	preview := fs.Bool("preview", false, "Print a preview of the extracted text to stderr")
	verbose := fs.Bool("verbose", false, "Include the whole roster in the report")
	noColor := fs.Bool("no-color", false, "Disable colored output")
	debug := fs.Bool("debug", false, "Report every pipeline stage to stderr")
	webMode := fs.Bool("web", false, "Start web server mode")
	webPort := fs.String("port", "", "Port for web server (default: 8080)")
	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help information")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			help.NewSystem(stdout, true).ShowGeneralHelp()
			return exitOK
		}
		return exitUsage
	}

	isSet := func(name string) bool {
		found := false
		fs.Visit(func(f *flag.Flag) {
			if f.Name == name {
				found = true
			}
		})
		return found
	}

	if *showHelp {
		h := help.NewSystem(stdout, *noColor || !isTerminal(stdout))
		if topic := fs.Arg(0); topic != "" {
			if !h.ShowTopicHelp(topic) {
				return exitUsage
			}
			return exitOK
		}
		h.ShowGeneralHelp()
		return exitOK
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.Info())
		return exitOK
	}

	cfg := loadConfiguration(*configFile, stderr)

	if *listProfiles {
		for _, name := range cfg.ListProfiles() {
			profile := cfg.GetProfile(name)
			fmt.Fprintf(stdout, "%-10s threshold=%.2f  %s\n", name, profileThreshold(cfg, profile), profile.Description)
		}
		return exitOK
	}

	var activeProfile *config.Profile
	if *profileName != "" {
		activeProfile = cfg.GetProfile(*profileName)
		if activeProfile == nil {
			fmt.Fprintf(stderr, "Error: profile %q not found (available: %v)\n", *profileName, cfg.ListProfiles())
			return exitUsage
		}
	}

	final := resolveConfiguration(cfg, activeProfile, &configFlags{
		outputFormat: *outputFormat,
		threshold:    *threshold,
		verbose:      *verbose,
		debug:        *debug,
		noColor:      *noColor,
	}, isSet)

	if *webMode {
		port := *webPort
		if port == "" {
			port = cfg.Web.Port
		}
		if _, err := validatePort(port); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
		cfg.Defaults.Debug = final.debug
		if err := web.NewWebServer(port, cfg).Start(); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitProcessing
		}
		return exitOK
	}

	if *inputFile == "" {
		fmt.Fprintln(stderr, "Error: -file is required (see -help)")
		return exitUsage
	}
	if !*extractOnly {
		if err := matcher.ValidateThreshold(final.threshold); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitUsage
		}
	}
	if _, ok := formatters.Get(final.format); !ok && !*extractOnly {
		fmt.Fprintf(stderr, "Error: unsupported format %q (available: %v)\n", final.format, formatters.List())
		return exitUsage
	}

	result, err := core.Run(context.Background(), core.ScanConfig{
		FilePath:     *inputFile,
		Names:        *names,
		Threshold:    &final.threshold,
		ExtractOnly:  *extractOnly,
		PreviewChars: cfg.Defaults.PreviewChars,
		Config:       cfg,
		Observer:     core.NewObserver(final.debug, stderr),
	})
	if err != nil {
		var pe *preprocessors.ProcessingError
		if errors.As(err, &pe) {
			fmt.Fprintf(stderr, "processing error: %s\n", pe.UserMessage())
			return exitProcessing
		}
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitUsage
	}

	if *preview {
		fmt.Fprintf(stderr, "%s\n\n", result.Preview)
	}

	var output, defaultName string
	if *extractOnly {
		output, defaultName = result.Text, web.ExtractedTextFilename
	} else {
		options := formatters.FormatterOptions{
			NoColor:    final.noColor || *outputFile != "" || !isTerminal(stdout),
			Verbose:    final.verbose,
			RosterOnly: *rosterOnly,
		}
		output, err = formatters.Export(final.format, formatters.NewReport(result), options)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitProcessing
		}
		defaultName = "rollcall-results" + formatters.GetFormatInfo(final.format).Extension
		if *rosterOnly {
			defaultName = "rollcall-roster" + formatters.GetFormatInfo(final.format).Extension
		}
	}

	if *outputFile == "" {
		fmt.Fprint(stdout, output)
		if len(output) > 0 && output[len(output)-1] != '\n' {
			fmt.Fprintln(stdout)
		}
		return exitOK
	}

	path := outputPath(*outputFile, defaultName)
	if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
		fmt.Fprintf(stderr, "Error writing output file: %v\n", err)
		return exitProcessing
	}
	fmt.Fprintf(stderr, "Output written to %s\n", path)
	return exitOK
}

// outputPath places defaultName inside target when target is a directory
func outputPath(target, defaultName string) string {
	if info, err := os.Stat(target); err == nil && info.IsDir() {
		return filepath.Join(target, defaultName)
	}
	return target
}

func profileThreshold(cfg *config.Config, profile *config.Profile) float64 {
	if profile.Threshold != 0 {
		return profile.Threshold
	}
	return cfg.Defaults.Threshold
}

// validatePort validates that the port string is a valid port number
func validatePort(portStr string) (string, error) {
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return "", fmt.Errorf("invalid port format '%s': must be a number", portStr)
	}

	if port < 1 || port > 65535 {
		return "", fmt.Errorf("invalid port %d: must be between 1 and 65535", port)
	}

	return portStr, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
