package models

import (
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/pathtemplate"
)

// TemplateBinding maps template variable names to concrete values
type TemplateBinding map[string]string

// Clone returns an independent copy of the binding
func (b TemplateBinding) Clone() TemplateBinding {
	c := make(TemplateBinding, len(b)+1)
	maps.Copy(c, b)
	return c
}

// With returns a copy of the binding extended with name=value
func (b TemplateBinding) With(name, value string) TemplateBinding {
	c := b.Clone()
	c[name] = value
	return c
}

// IsComplete reports whether every variable of template has a value
func (b TemplateBinding) IsComplete(template string) bool {
	for _, name := range pathtemplate.Variables(template) {
		if _, ok := b[name]; !ok {
			return false
		}
	}
	return true
}

// TestPoint is one resolvable combination of server URL, path template and
// variable binding to request against the instance under test
type TestPoint struct {
	ServerURL    string               `json:"server_url" yaml:"server_url"`
	PathTemplate string               `json:"path_template" yaml:"path_template"`
	Binding      TemplateBinding      `json:"binding" yaml:"binding"`
	MediaTypes   map[string]MediaType `json:"media_types" yaml:"media_types"`
}

// URITemplate joins the server URL and the path template
func (tp TestPoint) URITemplate() string {
	return strings.TrimSuffix(tp.ServerURL, "/") + tp.PathTemplate
}

// IsComplete reports whether the binding resolves every variable of the path
func (tp TestPoint) IsComplete() bool {
	return tp.Binding.IsComplete(tp.URITemplate())
}

// Equal reports structural equality
func (tp TestPoint) Equal(other TestPoint) bool {
	return tp.ServerURL == other.ServerURL &&
		tp.PathTemplate == other.PathTemplate &&
		maps.Equal(tp.Binding, other.Binding) &&
		maps.Equal(tp.MediaTypes, other.MediaTypes)
}

// Key returns a string that is equal for structurally equal test points.
// Every component is quoted so separators inside names or values cannot
// collide.
func (tp TestPoint) Key() string {
	var b strings.Builder
	b.WriteString(strconv.Quote(tp.ServerURL))
	b.WriteString(strconv.Quote(tp.PathTemplate))
	b.WriteByte('{')
	for _, name := range slices.Sorted(maps.Keys(tp.Binding)) {
		b.WriteString(strconv.Quote(name))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(tp.Binding[name]))
	}
	b.WriteString("}{")
	for _, mt := range slices.Sorted(maps.Keys(tp.MediaTypes)) {
		b.WriteString(strconv.Quote(mt))
		b.WriteByte('=')
		b.WriteString(strconv.Quote(tp.MediaTypes[mt].SchemaType))
	}
	b.WriteByte('}')
	return b.String()
}

// SortedMediaTypes returns the media type names in lexical order
func (tp TestPoint) SortedMediaTypes() []string {
	return slices.Sorted(maps.Keys(tp.MediaTypes))
}

// TestPointSummary represents the outcome of one resolution
type TestPointSummary struct {
	Label    string      `json:"label" yaml:"label"`
	Total    int         `json:"total" yaml:"total"`
	Complete int         `json:"complete" yaml:"complete"`
	Partial  int         `json:"partial" yaml:"partial"`
	Points   []TestPoint `json:"points" yaml:"points"`
}

// AddPoint adds a test point to the summary
func (s *TestPointSummary) AddPoint(tp TestPoint) {
	s.Total++
	s.Points = append(s.Points, tp)
	if tp.IsComplete() {
		s.Complete++
	} else {
		s.Partial++
	}
}
