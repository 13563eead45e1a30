package output

import (
	"sort"
	"strings"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// Formatter renders engine results for the CLI.
type Formatter interface {
	Name() string
	FormatReport(report *domain.Report) ([]byte, error)
	FormatRules(status domain.StatusCode, rules []domain.ExtractedRule) ([]byte, error)
	FormatPhrases(status domain.StatusCode, phrases []domain.PhraseMatch) ([]byte, error)
}

var formatters = map[string]Formatter{
	"console":      ConsoleFormatter{},
	"json":         JSONFormatter{Pretty: true},
	"json-compact": JSONFormatter{},
	"csv":          CSVFormatter{},
	"yaml":         YAMLFormatter{},
}

var formatAliases = map[string]string{
	"table":        "console",
	"text":         "console",
	"console-lite": "console",
	"yml":          "yaml",
}

// GetFormatterByName returns the formatter registered under name or one of
// its aliases, or nil.
func GetFormatterByName(name string) Formatter {
	name = strings.ToLower(strings.TrimSpace(name))
	if target, ok := formatAliases[name]; ok {
		name = target
	}
	return formatters[name]
}

// AvailableFormats lists the formatter names, sorted.
func AvailableFormats() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// AvailableFormatAliases lists the accepted aliases, sorted.
func AvailableFormatAliases() []string {
	names := make([]string, 0, len(formatAliases))
	for name := range formatAliases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
