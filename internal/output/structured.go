package output

import (
	"encoding/csv"
	"encoding/json"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/emeklilik/sgkcalc/internal/domain"
)

// JSONFormatter formats results as JSON
type JSONFormatter struct {
	Pretty bool // If true, format with indentation
}

func (jf JSONFormatter) Name() string { return "json" }

func (jf JSONFormatter) marshal(v any) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if jf.Pretty {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}

func (jf JSONFormatter) FormatReport(report *domain.Report) ([]byte, error) {
	return jf.marshal(report)
}

func (jf JSONFormatter) FormatRules(status domain.StatusCode, rules []domain.ExtractedRule) ([]byte, error) {
	if rules == nil {
		rules = []domain.ExtractedRule{}
	}
	return jf.marshal(struct {
		Status domain.StatusCode      `json:"status"`
		Rules  []domain.ExtractedRule `json:"rules"`
	}{status, rules})
}

func (jf JSONFormatter) FormatPhrases(status domain.StatusCode, phrases []domain.PhraseMatch) ([]byte, error) {
	if phrases == nil {
		phrases = []domain.PhraseMatch{}
	}
	return jf.marshal(struct {
		Status  domain.StatusCode    `json:"status"`
		Phrases []domain.PhraseMatch `json:"phrases"`
	}{status, phrases})
}

// YAMLFormatter formats results as YAML
type YAMLFormatter struct{}

func (YAMLFormatter) Name() string { return "yaml" }

func (YAMLFormatter) FormatReport(report *domain.Report) ([]byte, error) {
	return yaml.Marshal(report)
}

func (YAMLFormatter) FormatRules(status domain.StatusCode, rules []domain.ExtractedRule) ([]byte, error) {
	return yaml.Marshal(map[string]any{"status": status, "rules": rules})
}

func (YAMLFormatter) FormatPhrases(status domain.StatusCode, phrases []domain.PhraseMatch) ([]byte, error) {
	return yaml.Marshal(map[string]any{"status": status, "phrases": phrases})
}

// CSVFormatter formats results as CSV
type CSVFormatter struct{}

func (CSVFormatter) Name() string { return "csv" }

func (CSVFormatter) write(header []string, rows [][]string) ([]byte, error) {
	var sb strings.Builder
	writer := csv.NewWriter(&sb)
	if err := writer.Write(header); err != nil {
		return nil, err
	}
	if err := writer.WriteAll(rows); err != nil {
		return nil, err
	}
	return []byte(sb.String()), nil
}

// FormatReport writes one line per track.
func (cf CSVFormatter) FormatReport(report *domain.Report) ([]byte, error) {
	header := []string{
		"Track", "Matched", "Window", "Required Days", "Required Age",
		"Age", "Missing Days", "Missing Years", "Missing Age", "Eligible",
	}
	var rows [][]string
	for _, o := range []domain.TrackOutcome{report.Full, report.Partial} {
		if !o.Matched() {
			rows = append(rows, []string{o.Track.String(), "false", "", "", "", "", "", "", "", "false"})
			continue
		}
		res := o.Result
		rows = append(rows, []string{
			o.Track.String(),
			"true",
			o.Rule.Range.String(),
			strconv.Itoa(res.RequiredDays),
			strconv.Itoa(res.RequiredAge),
			optionalInt(res.Age),
			strconv.Itoa(res.MissingDays),
			FormatYears(res.MissingDays),
			optionalInt(res.MissingAge),
			strconv.FormatBool(res.Eligible),
		})
	}
	return cf.write(header, rows)
}

func (cf CSVFormatter) FormatRules(status domain.StatusCode, rules []domain.ExtractedRule) ([]byte, error) {
	header := []string{"Status", "Track", "Gender", "Kind", "Start", "End", "Required Days", "Required Age", "Row", "Cell", "Phrase"}
	rows := make([][]string, 0, len(rules))
	for _, r := range rules {
		start, end := bounds(r.Range)
		rows = append(rows, []string{
			string(status),
			r.Track.String(),
			r.Gender.String(),
			r.Range.Kind.String(),
			start,
			end,
			strconv.Itoa(r.RequiredDays),
			strconv.Itoa(r.RequiredAge),
			strconv.Itoa(r.Source.Row),
			strconv.Itoa(r.Source.Cell),
			r.Source.Phrase,
		})
	}
	return cf.write(header, rows)
}

func (cf CSVFormatter) FormatPhrases(status domain.StatusCode, phrases []domain.PhraseMatch) ([]byte, error) {
	header := []string{"Status", "Row", "Cell", "Kind", "Start", "End", "Text"}
	rows := make([][]string, 0, len(phrases))
	for _, p := range phrases {
		start, end := bounds(p.Range)
		rows = append(rows, []string{
			string(status),
			strconv.Itoa(p.Row),
			strconv.Itoa(p.Cell),
			p.Range.Kind.String(),
			start,
			end,
			p.Text,
		})
	}
	return cf.write(header, rows)
}

func bounds(r domain.DateRange) (start, end string) {
	if r.Kind == domain.RangeExact || r.Kind == domain.RangeOpenAfter {
		start = r.Start.String()
	}
	if r.Kind == domain.RangeExact || r.Kind == domain.RangeOpenBefore {
		end = r.End.String()
	}
	return start, end
}

func optionalInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}
