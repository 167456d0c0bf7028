package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"go.yaml.in/yaml/v4"
)

// Format represents the output format type
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
	FormatYAML Format = "yaml"
)

// ExportSummaries exports resolved test points to the specified format
func ExportSummaries(summaries []models.TestPointSummary, format Format, filePath string) error {
	w, closer, err := getWriter(filePath)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	return Write(w, summaries, format)
}

// Write writes summaries to w in the specified format
func Write(w io.Writer, summaries []models.TestPointSummary, format Format) error {
	switch format {
	case FormatJSON:
		return exportJSON(w, summaries)
	case FormatCSV:
		return exportCSV(w, summaries)
	case FormatYAML:
		return exportYAML(w, summaries)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// getWriter returns an io.Writer for output (stdout or file)
func getWriter(filePath string) (io.Writer, io.Closer, error) {
	if filePath == "" {
		return os.Stdout, nil, nil
	}

	f, err := os.Create(filePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f, nil
}

func exportJSON(w io.Writer, summaries []models.TestPointSummary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(summaries)
}

func exportYAML(w io.Writer, summaries []models.TestPointSummary) error {
	out, err := yaml.Marshal(summaries)
	if err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	_, err = w.Write(out)
	return err
}

// exportCSV writes one row per test point
func exportCSV(w io.Writer, summaries []models.TestPointSummary) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	header := []string{"label", "server_url", "path_template", "binding", "media_types", "complete"}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, s := range summaries {
		for _, tp := range s.Points {
			row := []string{
				s.Label,
				tp.ServerURL,
				tp.PathTemplate,
				FormatBinding(tp.Binding),
				strings.Join(tp.SortedMediaTypes(), ";"),
				strconv.FormatBool(tp.IsComplete()),
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

// FormatBinding renders a binding as name=value pairs in name order
func FormatBinding(b models.TemplateBinding) string {
	pairs := make([]string, 0, len(b))
	for _, name := range slices.Sorted(maps.Keys(b)) {
		pairs = append(pairs, name+"="+b[name])
	}
	return strings.Join(pairs, ";")
}

// ParseFormat parses a string into a Format, returning error if invalid
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return FormatJSON, nil
	case "csv":
		return FormatCSV, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("invalid format '%s': must be 'json', 'csv' or 'yaml'", s)
	}
}
