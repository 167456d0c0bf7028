package testpoint

import (
	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
)

const iut = "http://localhost:8080/ogcapi"

func jsonResponse() models.Response {
	return models.Response{MediaTypes: map[string]models.MediaType{
		"application/json": {SchemaType: "object"},
	}}
}

func getOp(params ...models.Parameter) models.Operation {
	return models.Operation{
		Method:     "get",
		Parameters: params,
		Responses:  map[string]models.Response{"200": jsonResponse()},
	}
}

func pathParam(name string, enum ...string) models.Parameter {
	return models.Parameter{
		Name:     name,
		In:       models.InPath,
		Required: true,
		Schema:   models.Schema{Type: "string", Enum: enum},
	}
}

func defaultParam(name, def string) models.Parameter {
	return models.Parameter{
		Name:   name,
		In:     models.InPath,
		Schema: models.Schema{Type: "string", Default: &def},
	}
}

func pathItem(template string, ops ...models.Operation) models.PathItem {
	return models.PathItem{Template: template, Operations: ops}
}

func bindings(points []models.TestPoint) []models.TemplateBinding {
	out := make([]models.TemplateBinding, 0, len(points))
	for _, tp := range points {
		out = append(out, tp.Binding)
	}
	return out
}
