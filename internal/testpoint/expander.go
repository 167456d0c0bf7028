package testpoint

import (
	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/pathtemplate"
)

// Expand returns the concrete variable bindings of uriTemplate, drawn from
// the enum and default constraints of the matching parameters.
//
// Variables are visited in declaration order. A single enum value or a
// default extends every binding, several enum values multiply them. A
// variable with neither stays unbound. A template without variables yields
// one empty binding; a template none of whose variables can be bound yields
// none.
func Expand(uriTemplate string, params []models.Parameter) []models.TemplateBinding {
	names := pathtemplate.Variables(uriTemplate)
	if len(names) == 0 {
		return []models.TemplateBinding{{}}
	}

	op := models.Operation{Parameters: params}
	var bindings []models.TemplateBinding
	for _, name := range names {
		p, ok := op.Parameter(name)
		if !ok {
			continue
		}
		bindings = extend(bindings, name, candidateValues(p.Schema))
	}
	return bindings
}

// candidateValues lists the values a variable takes: its enum, else its
// default, else nothing.
func candidateValues(s models.Schema) []string {
	switch {
	case len(s.Enum) > 0:
		return s.Enum
	case s.Default != nil:
		return []string{*s.Default}
	default:
		return nil
	}
}

// extend returns the product of bindings and name=values. It never modifies
// bindings. An empty bindings list acts as a single empty binding.
func extend(bindings []models.TemplateBinding, name string, values []string) []models.TemplateBinding {
	if len(values) == 0 {
		return bindings
	}
	if len(bindings) == 0 {
		bindings = []models.TemplateBinding{{}}
	}

	out := make([]models.TemplateBinding, 0, len(bindings)*len(values))
	for _, b := range bindings {
		for _, v := range values {
			out = append(out, b.With(name, v))
		}
	}
	return out
}
