package testpoint

import (
	"net/url"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/pathtemplate"
)

// KeepExact reports whether tp can produce concretePath. Variables already
// bound must appear literally, unbound ones match any single segment.
func KeepExact(tp models.TestPoint, concretePath string) bool {
	re, _ := pathtemplate.Compile(tp.PathTemplate, tp.Binding)
	return re.MatchString(concretePath)
}

// FilterExact returns the test points KeepExact accepts, in order
func FilterExact(points []models.TestPoint, concretePath string) []models.TestPoint {
	var kept []models.TestPoint
	for _, tp := range points {
		if KeepExact(tp, concretePath) {
			kept = append(kept, tp)
		}
	}
	return kept
}

// pin binds the unbound path variables of tp to the segments they match in
// concretePath. It returns false when tp cannot produce concretePath.
func pin(tp models.TestPoint, concretePath string) (models.TestPoint, bool) {
	re, captured := pathtemplate.Compile(tp.PathTemplate, tp.Binding)
	m := re.FindStringSubmatch(concretePath)
	if m == nil {
		return tp, false
	}
	if len(captured) == 0 {
		return tp, true
	}

	b := tp.Binding.Clone()
	for i, name := range captured {
		// a repeated variable keeps its first capture
		if _, ok := b[name]; ok {
			continue
		}
		value := m[i+1]
		if unescaped, err := url.PathUnescape(value); err == nil {
			value = unescaped
		}
		b[name] = value
	}
	tp.Binding = b
	return tp, true
}
