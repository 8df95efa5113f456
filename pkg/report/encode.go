package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/repwatch/pkg/score"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatText = "text"

	dateLayout   = "2006-01-02"
	numberFormat = "#,###.##"
	ipFormat     = "#,###.####"
	snippetMax   = 60
)

// Formats lists the supported output formats.
var Formats = []string{FormatJSON, FormatYAML, FormatText}

// ParseFormat normalizes a format name, accepting "yml" for YAML.
func ParseFormat(s string) (string, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", FormatJSON:
		return FormatJSON, true
	case FormatYAML, "yml":
		return FormatYAML, true
	case FormatText, "txt":
		return FormatText, true
	default:
		return "", false
	}
}

// Encode writes v in the given format. The text format supports *Report and
// []score.Mention and falls back to JSON for anything else.
func Encode(w io.Writer, v any, format string) error {
	switch format {
	case FormatYAML:
		e := yaml.NewEncoder(w)
		defer e.Close()
		return errors.Wrap(e.Encode(v), "error encoding yaml")
	case FormatText:
		switch t := v.(type) {
		case *Report:
			return writeText(w, t)
		case []score.Mention:
			return writeMentions(w, t)
		}
	}

	e := json.NewEncoder(w)
	e.SetIndent("", "  ")
	return errors.Wrap(e.Encode(v), "error encoding json")
}

func writeText(w io.Writer, r *Report) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	fmt.Fprintf(tw, "Run\t%s\n", r.RunID)
	fmt.Fprintf(tw, "As of\t%s\n", r.AsOf.Format(dateLayout))
	fmt.Fprintf(tw, "Global score\t%s\n", humanize.FormatFloat(numberFormat, r.GlobalScore))
	fmt.Fprintf(tw, "Top dimension\t%s (%s)\n", r.Dimensions.Top.Label(), humanize.FormatFloat(numberFormat, r.Dimensions.TopValue))
	fmt.Fprintf(tw, "Mentions\t%s\n", humanize.Comma(int64(r.Counts.Total)))
	fmt.Fprintf(tw, "Sentiment\t%s%% positive, %s%% neutral, %s%% negative\n",
		humanize.FormatFloat(numberFormat, r.Sentiment.Positive),
		humanize.FormatFloat(numberFormat, r.Sentiment.Neutral),
		humanize.FormatFloat(numberFormat, r.Sentiment.Negative))

	fmt.Fprintln(tw)
	fmt.Fprintln(tw, "DIMENSION\tSCORE\t")
	for _, v := range r.Dimensions.Values {
		note := ""
		if v.Defaulted {
			note = "(default)"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Label, humanize.FormatFloat(numberFormat, v.Value), note)
	}

	fmt.Fprintln(tw)
	writeTop(tw, "Most positive", r.TopPositive)
	writeTop(tw, "Most negative", r.TopNegative)

	return errors.Wrap(tw.Flush(), "error writing report")
}

func writeTop(w io.Writer, label string, m *score.Mention) {
	if m == nil {
		fmt.Fprintf(w, "%s\t-\n", label)
		return
	}
	fmt.Fprintf(w, "%s\t%s %s (IP %s)\n", label, m.Date.Format(dateLayout), m.Title, humanize.FormatFloat(ipFormat, m.InfluencePower))
}

func writeMentions(w io.Writer, list []score.Mention) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DATE\tSENTIMENT\tSOURCE\tIP\tSCORE\tTITLE")
	for _, m := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			m.Date.Format(dateLayout),
			score.ParseSentiment(m.Sentiment),
			m.PageType,
			humanize.FormatFloat(ipFormat, m.InfluencePower),
			humanize.FormatFloat(ipFormat, m.Score),
			truncate(m.Title, snippetMax))
	}
	return errors.Wrap(tw.Flush(), "error writing mentions")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
