package tester

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/alessio/shellescape"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/pathtemplate"
)

// ErrIncompleteBinding is returned for test points that leave URL variables
// unbound. Such test points describe the shape of an endpoint only.
var ErrIncompleteBinding = errors.New("test point binding is incomplete")

// DefaultUserAgent identifies the suite to the instance under test
const DefaultUserAgent = "ets-ogcapi-features10/1.0"

// preferredMediaTypes lists the Accept candidates in order of preference
var preferredMediaTypes = []string{
	"application/geo+json",
	"application/json",
}

// RequestBuilder builds the HTTP requests of test points. It never sends
// them.
type RequestBuilder struct {
	userAgent string
}

// NewRequestBuilder creates a new request builder
func NewRequestBuilder() *RequestBuilder {
	return &RequestBuilder{userAgent: DefaultUserAgent}
}

// URL substitutes the binding of tp into its URL template
func URL(tp models.TestPoint) (string, error) {
	uri, unresolved := pathtemplate.Expand(tp.URITemplate(), tp.Binding)
	if len(unresolved) > 0 {
		return "", fmt.Errorf("%w: %s has unbound %s", ErrIncompleteBinding, tp.PathTemplate, strings.Join(unresolved, ", "))
	}
	return uri, nil
}

// Accept picks the media type to ask for: GeoJSON, then JSON, then any other
// JSON flavor, then the first declared type in lexical order
func Accept(tp models.TestPoint) string {
	for _, mt := range preferredMediaTypes {
		if _, ok := tp.MediaTypes[mt]; ok {
			return mt
		}
	}

	declared := tp.SortedMediaTypes()
	for _, mt := range declared {
		if strings.HasSuffix(mt, "+json") {
			return mt
		}
	}
	if len(declared) > 0 {
		return declared[0]
	}
	return "application/json"
}

// BuildRequest builds the GET request of a test point
func (rb *RequestBuilder) BuildRequest(ctx context.Context, tp models.TestPoint) (*http.Request, error) {
	uri, err := URL(tp)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, uri, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", Accept(tp))
	req.Header.Set("User-Agent", rb.userAgent)

	return req, nil
}

// CurlCommand renders req as a shell command line that replays it
func CurlCommand(req *http.Request) string {
	var b commandLine
	b.add("curl", "-sS")
	names := make([]string, 0, len(req.Header))
	for name := range req.Header {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		for _, v := range req.Header[name] {
			b.add("-H", name+": "+v)
		}
	}
	if req.Method != http.MethodGet {
		b.add("-X", req.Method)
	}
	b.add(req.URL.String())
	return b.String()
}

type commandLine []string

func (b *commandLine) add(args ...string) {
	for _, a := range args {
		*b = append(*b, shellescape.Quote(a))
	}
}

func (b commandLine) String() string {
	return strings.Join(b, " ")
}
