// Package testpoint resolves the concrete endpoints a conformance test run
// has to request, from a parsed API description and the URL of the instance
// under test.
//
// Every function in this package is a pure computation over its arguments.
// Nothing is cached and nothing is requested over the network, so all of it
// is safe for concurrent use.
package testpoint

import "github.com/opengeospatial/ets-ogcapi-features10/internal/pathtemplate"

// Matches reports whether the declared path template matches patternOrPath.
// Every {name} placeholder of template matches one path segment, so a
// concrete path like "/collections/lakes/items" and another template such
// as "/collections/{collectionId}/items" both match
// "/collections/{collectionId}/items". Placeholders of patternOrPath match
// the same way, which lets a declared path like "/collections/lakes/items"
// match that pattern too. Malformed templates match only their own literal
// text.
func Matches(template, patternOrPath string) bool {
	re, _ := pathtemplate.Compile(template, nil)
	if re.MatchString(patternOrPath) {
		return true
	}
	re, _ = pathtemplate.Compile(patternOrPath, nil)
	return re.MatchString(template)
}
