// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package help

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"

	"rollcall/internal/aliases"
	"rollcall/internal/normalizer"
	"rollcall/internal/paragraph"
)

// TopicInfo is the content of one "-help <topic>" page
type TopicInfo struct {
	Name        string
	Summary     string
	Description string
	Details     []string
	Examples    []string
}

// System manages help content for the application
type System struct {
	out     io.Writer
	topics  map[string]TopicInfo
	noColor bool
	colors  map[string]*color.Color
}

// NewSystem creates a help system writing to out, with the built-in topics
func NewSystem(out io.Writer, noColor bool) *System {
	h := &System{
		out:     out,
		topics:  make(map[string]TopicInfo),
		noColor: noColor,
		colors: map[string]*color.Color{
			"title":   color.New(color.FgWhite, color.Bold),
			"header":  color.New(color.FgBlue, color.Bold),
			"item":    color.New(color.FgCyan),
			"example": color.New(color.FgMagenta),
		},
	}
	for _, topic := range builtinTopics() {
		h.RegisterTopic(topic)
	}
	return h
}

// RegisterTopic adds a help topic
func (h *System) RegisterTopic(topic TopicInfo) {
	h.topics[strings.ToLower(topic.Name)] = topic
}

// Topics returns the registered topic names, sorted
func (h *System) Topics() []string {
	names := make([]string, 0, len(h.topics))
	for name := range h.topics {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (h *System) println(style, s string) {
	if h.noColor {
		fmt.Fprintln(h.out, s)
		return
	}
	h.colors[style].Fprintln(h.out, s)
}

// ShowGeneralHelp displays general help information
func (h *System) ShowGeneralHelp() {
	h.println("title", "rollcall - find people in numbered name lists")
	fmt.Fprintln(h.out, "=============================================")
	fmt.Fprintln(h.out)
	h.println("header", "USAGE:")
	fmt.Fprintln(h.out, "  rollcall -file <document.pdf|.txt> -names \"Name One, Name Two\" [options]")
	fmt.Fprintln(h.out, "  rollcall -file <document> -extract-only [-output texto_extraido.txt]")
	fmt.Fprintln(h.out, "  rollcall -web [-port <port>]  # Web server mode")
	fmt.Fprintln(h.out)

	h.println("header", "OPTIONS:")
	w := tabwriter.NewWriter(h.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "  -file\t<path>\tPDF or UTF-8 text document to read (required outside web mode)")
	fmt.Fprintln(w, "  -names\t<list>\tComma separated names to look for")
	fmt.Fprintln(w, "  -threshold\t<ratio>\tMinimum similarity between 0.5 and 1.0 (default: 1.0)")
	fmt.Fprintln(w, "  -format\t<format>\tOutput format: text, json, yaml, csv (default: text)")
	fmt.Fprintln(w, "  -output\t<path>\tWrite output to a file instead of stdout")
	fmt.Fprintln(w, "  -roster-only\t\tOutput only the names extracted from the document")
	fmt.Fprintln(w, "  -extract-only\t\tOutput only the raw document text")
	fmt.Fprintln(w, "  -preview\t\tPrint a preview of the extracted text to stderr")
	fmt.Fprintln(w, "  -verbose\t\tInclude the whole roster in the report")
	fmt.Fprintln(w, "  -config\t<path>\tPath to configuration file (YAML)")
	fmt.Fprintln(w, "  -profile\t<name>\tProfile name to use from config file")
	fmt.Fprintln(w, "  -list-profiles\t\tList available profiles")
	fmt.Fprintln(w, "  -no-color\t\tDisable colored output")
	fmt.Fprintln(w, "  -debug\t\tReport every pipeline stage to stderr")
	fmt.Fprintln(w, "  -web\t\tStart web server mode")
	fmt.Fprintln(w, "  -port\t<port>\tPort for web server (default: 8080)")
	fmt.Fprintln(w, "  -version\t\tShow version information")
	fmt.Fprintln(w, "  -help [topic]\t\tShow this help, or a topic: "+strings.Join(h.Topics(), ", "))
	w.Flush()

	fmt.Fprintln(h.out)
	h.println("header", "EXAMPLES:")
	h.println("example", "  rollcall -file relatorio.pdf -names \"João Costa, Maria da Silva\"")
	h.println("example", "  rollcall -file relatorio.pdf -names \"João Costa\" -threshold 0.9 -format json")
	h.println("example", "  rollcall -file relatorio.pdf -roster-only -output nomes.txt")
	h.println("example", "  rollcall -file relatorio.pdf -profile relaxed -names \"Ana Souza\"")

	fmt.Fprintln(h.out)
	h.println("header", "CONFIGURATION:")
	fmt.Fprintln(h.out, "  Project config: rollcall.yaml, rollcall.yml or .rollcall.yaml (in current directory)")
	fmt.Fprintln(h.out, "  User config:    $XDG_CONFIG_HOME/rollcall/config.yaml")
	fmt.Fprintln(h.out, "  Environment:    ROLLCALL_CONFIG_DIR - Override config directory")
}

// ShowTopicHelp displays one topic. It returns false for unknown topics.
func (h *System) ShowTopicHelp(name string) bool {
	topic, ok := h.topics[strings.ToLower(name)]
	if !ok {
		fmt.Fprintf(h.out, "Unknown help topic %q. Available topics: %s\n", name, strings.Join(h.Topics(), ", "))
		return false
	}

	h.println("title", strings.ToUpper(topic.Name)+": "+topic.Summary)
	fmt.Fprintln(h.out)
	fmt.Fprintln(h.out, topic.Description)

	if len(topic.Details) > 0 {
		fmt.Fprintln(h.out)
		for _, detail := range topic.Details {
			h.println("item", "  • "+detail)
		}
	}
	if len(topic.Examples) > 0 {
		fmt.Fprintln(h.out)
		h.println("header", "EXAMPLES:")
		for _, example := range topic.Examples {
			h.println("example", "  "+example)
		}
	}
	return true
}

func builtinTopics() []TopicInfo {
	return []TopicInfo{
		{
			Name:    "aliases",
			Summary: "forms a name is searched under",
			Description: "Each name is normalized and expanded into reordered and abbreviated " +
				"forms before matching. Every form is compared with every roster entry.",
			Details:  []string{"Names with a single word after normalization produce no forms and never match"},
			Examples: aliasExamples("Maria da Conceição Silva"),
		},
		{
			Name:    "normalization",
			Summary: "how names are compared",
			Description: "Accents are removed, the characters , . ' - become spaces and the text is " +
				"upper-cased. Names with more than two words also lose these particles:",
			Details: []string{strings.Join(normalizer.DefaultParticles, " ")},
			Examples: []string{
				"João da Silva Jr. -> " + normalizer.Normalize("João da Silva Jr."),
				"Ana de Souza -> " + normalizer.Normalize("Ana de Souza"),
			},
		},
		{
			Name:    "roster",
			Summary: "how names are found in the document",
			Description: "A name starts after a list number such as \"12. \" and ends at the first period " +
				"followed by a capitalized word or a four digit year. Candidate lines are then dropped when:",
			Details: []string{
				fmt.Sprintf("they have %d or more characters", paragraph.MaxLineLength),
				"they contain a digit",
				"they contain : ? or !",
				"they contain brackets",
				"they are a single word",
			},
		},
		{
			Name:        "threshold",
			Summary:     "similarity needed for a match",
			Description: "Similarity is the Ratcliff/Obershelp ratio between a name form and a roster entry, from 0.5 to 1.0. 1.0 requires an exact match.",
			Examples: []string{
				"rollcall -file lista.pdf -names \"Ana Souza\" -threshold 0.85",
				"rollcall -file lista.pdf -names \"Ana Souza\" -profile relaxed",
			},
		},
	}
}

func aliasExamples(name string) []string {
	forms := aliases.Generate(normalizer.Default().Tokens(name))
	if len(forms) > 6 {
		forms = append(forms[:6], "...")
	}
	return append([]string{name + " ->"}, forms...)
}
