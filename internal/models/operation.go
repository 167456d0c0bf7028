package models

// ParameterLocation is where a parameter travels in the request
type ParameterLocation string

const (
	InPath   ParameterLocation = "path"
	InQuery  ParameterLocation = "query"
	InHeader ParameterLocation = "header"
	InCookie ParameterLocation = "cookie"
)

// Operation represents one HTTP method of a path item
type Operation struct {
	Method      string
	OperationID string
	Tags        []string
	Parameters  []Parameter
	Servers     []ServerTemplate
	Responses   map[string]Response
}

// Parameter returns the parameter with the given name, preferring a path
// parameter when several locations share the name
func (o Operation) Parameter(name string) (Parameter, bool) {
	var found Parameter
	ok := false
	for _, p := range o.Parameters {
		if p.Name != name {
			continue
		}
		if p.In == InPath {
			return p, true
		}
		if !ok {
			found, ok = p, true
		}
	}
	return found, ok
}

// SuccessResponse returns the "200" response, falling back to "default"
func (o Operation) SuccessResponse() (Response, bool) {
	if r, ok := o.Responses["200"]; ok {
		return r, true
	}
	r, ok := o.Responses["default"]
	return r, ok
}

// Parameter represents an operation parameter. Style and Explode are carried
// through as declared.
type Parameter struct {
	Name     string
	In       ParameterLocation
	Required bool
	Style    string
	Explode  bool
	Schema   Schema
}

// Schema holds the parts of a parameter schema that constrain its values
type Schema struct {
	Type    string
	Enum    []string
	Default *string
	Minimum *float64
	Maximum *float64
}

// Response maps media types to their descriptors
type Response struct {
	MediaTypes map[string]MediaType
}

// MediaType describes one response representation
type MediaType struct {
	SchemaType string `json:"schema_type,omitempty" yaml:"schema_type,omitempty"`
}
