package models

// APIDescription is the parsed form of an OpenAPI document. It is built once
// and only read afterwards.
type APIDescription struct {
	Paths   []PathItem
	Servers []ServerTemplate
}

// PathItem is one declared path template and its operations, kept in
// OpenAPI method order
type PathItem struct {
	Template   string
	Servers    []ServerTemplate
	Operations []Operation
}

// Operation returns the operation declared for method (lower case)
func (p PathItem) Operation(method string) (Operation, bool) {
	for _, op := range p.Operations {
		if op.Method == method {
			return op, true
		}
	}
	return Operation{}, false
}

// ServerTemplate is a server URL, possibly templated and possibly relative to
// the instance under test
type ServerTemplate struct {
	URL       string
	Variables map[string]ServerVariable
}

// ServerVariable is a substitution variable of a server URL template
type ServerVariable struct {
	Default string
	Enum    []string
}

// Defaults returns the default value of every server variable that has one
func (s ServerTemplate) Defaults() map[string]string {
	if len(s.Variables) == 0 {
		return nil
	}
	defaults := make(map[string]string, len(s.Variables))
	for name, v := range s.Variables {
		if v.Default != "" {
			defaults[name] = v.Default
		}
	}
	return defaults
}
