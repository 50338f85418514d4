package cache

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/glorpus-work/cachectl/pkg/backend"
	"github.com/glorpus-work/cachectl/pkg/errors"
)

// Format selects how WriteReport renders results.
type Format string

// Report formats.
const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatText, FormatJSON, FormatYAML:
		return f, nil
	case "":
		return FormatText, nil
	default:
		return "", errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

type reportDoc struct {
	Detection []backend.DetectionResult `json:"detection" yaml:"detection"`
	Purge     *purgeDoc                 `json:"purge,omitempty" yaml:"purge,omitempty"`
}

type purgeDoc struct {
	Results   []backend.PurgeResult `json:"results" yaml:"results"`
	Succeeded int                   `json:"succeeded" yaml:"succeeded"`
	Failed    int                   `json:"failed" yaml:"failed"`
	Cleared   int                   `json:"cleared" yaml:"cleared"`
}

// WriteReport renders the detection results and, when purge is non-nil, the
// purge results.
func WriteReport(w io.Writer, format Format, inspector *Inspector, purge *PurgeReport) error {
	switch format {
	case FormatText, "":
		return writeText(w, inspector, purge)
	case FormatJSON, FormatYAML:
		doc := reportDoc{Detection: inspector.DetectionResults()}
		if purge != nil {
			doc.Purge = &purgeDoc{
				Results:   purge.Results(),
				Succeeded: purge.Succeeded(),
				Failed:    purge.Failed(),
				Cleared:   purge.Cleared(),
			}
		}
		if format == FormatJSON {
			enc := json.NewEncoder(w)
			enc.SetIndent("", "  ")
			return enc.Encode(doc)
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	default:
		return errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func writeText(w io.Writer, inspector *Inspector, purge *PurgeReport) error {
	var b strings.Builder
	writeBlock(&b, DetectionHeader, inspector.Results())
	if purge != nil {
		b.WriteString("\n")
		writeBlock(&b, PurgeHeader, purge.Lines())
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeBlock(b *strings.Builder, header string, lines []string) {
	fmt.Fprintln(b, header)
	fmt.Fprintln(b, strings.Repeat("=", RuleWidth))
	for _, l := range lines {
		fmt.Fprintln(b, l)
	}
}
