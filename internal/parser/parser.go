package parser

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/pb33f/libopenapi"
	"github.com/pb33f/libopenapi/datamodel/high/base"
	v3 "github.com/pb33f/libopenapi/datamodel/high/v3"
)

var (
	// ErrNotOpenAPI3 is returned for documents that are not OpenAPI 3.x
	ErrNotOpenAPI3 = errors.New("not an OpenAPI 3 document")
	// ErrBuildModel is returned when the v3 model cannot be built
	ErrBuildModel = errors.New("failed to build v3 model")
)

// methodOrder lists the operations of a path item in OpenAPI order
var methodOrder = []struct {
	name string
	op   func(*v3.PathItem) *v3.Operation
}{
	{"get", func(p *v3.PathItem) *v3.Operation { return p.Get }},
	{"put", func(p *v3.PathItem) *v3.Operation { return p.Put }},
	{"post", func(p *v3.PathItem) *v3.Operation { return p.Post }},
	{"delete", func(p *v3.PathItem) *v3.Operation { return p.Delete }},
	{"options", func(p *v3.PathItem) *v3.Operation { return p.Options }},
	{"head", func(p *v3.PathItem) *v3.Operation { return p.Head }},
	{"patch", func(p *v3.PathItem) *v3.Operation { return p.Patch }},
	{"trace", func(p *v3.PathItem) *v3.Operation { return p.Trace }},
}

// Parser handles parsing OpenAPI specification files
type Parser struct {
	document libopenapi.Document
}

// ParseFile parses an OpenAPI specification file and returns a Parser instance
func ParseFile(filePath string) (*Parser, error) {
	specBytes, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read OpenAPI file: %w", err)
	}
	return Parse(specBytes)
}

// Parse parses a JSON or YAML OpenAPI document
func Parse(specBytes []byte) (*Parser, error) {
	document, err := libopenapi.NewDocument(specBytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse OpenAPI document: %w", err)
	}

	if version := document.GetVersion(); !strings.HasPrefix(version, "3") {
		return nil, fmt.Errorf("%w: version %q", ErrNotOpenAPI3, version)
	}

	return &Parser{document: document}, nil
}

func (p *Parser) model() (*v3.Document, error) {
	model, errs := p.document.BuildV3Model()
	if errs != nil {
		return nil, fmt.Errorf("%w: %v", ErrBuildModel, errs)
	}
	if model == nil {
		return nil, ErrBuildModel
	}
	return &model.Model, nil
}

// GetServerURLs returns the server URLs from the OpenAPI spec
func (p *Parser) GetServerURLs() ([]string, error) {
	model, err := p.model()
	if err != nil {
		return nil, err
	}

	servers := model.Servers
	if len(servers) == 0 {
		return []string{"/"}, nil
	}

	urls := make([]string, 0, len(servers))
	for _, server := range servers {
		if server != nil && server.URL != "" {
			urls = append(urls, server.URL)
		}
	}

	return urls, nil
}

// Description converts the document into the model the test point engine
// works on. Path items and operations keep their declaration order.
func (p *Parser) Description() (*models.APIDescription, error) {
	model, err := p.model()
	if err != nil {
		return nil, err
	}

	api := &models.APIDescription{Servers: convertServers(model.Servers)}

	paths := model.Paths
	if paths == nil || paths.PathItems == nil {
		return api, nil
	}

	// Iterate over ordered map
	for pair := paths.PathItems.First(); pair != nil; pair = pair.Next() {
		pathItemValue := pair.Value()
		if pathItemValue == nil {
			continue
		}

		item := models.PathItem{
			Template: pair.Key(),
			Servers:  convertServers(pathItemValue.Servers),
		}
		for _, m := range methodOrder {
			op := m.op(pathItemValue)
			if op == nil {
				continue
			}
			item.Operations = append(item.Operations, convertOperation(m.name, op, pathItemValue.Parameters))
		}
		api.Paths = append(api.Paths, item)
	}

	return api, nil
}

func convertServers(servers []*v3.Server) []models.ServerTemplate {
	var out []models.ServerTemplate
	for _, server := range servers {
		if server == nil || server.URL == "" {
			continue
		}

		tmpl := models.ServerTemplate{URL: server.URL}
		if server.Variables != nil && server.Variables.Len() > 0 {
			tmpl.Variables = make(map[string]models.ServerVariable, server.Variables.Len())
			for pair := server.Variables.First(); pair != nil; pair = pair.Next() {
				v := pair.Value()
				if v == nil {
					continue
				}
				tmpl.Variables[pair.Key()] = models.ServerVariable{
					Default: v.Default,
					Enum:    append([]string(nil), v.Enum...),
				}
			}
		}
		out = append(out, tmpl)
	}
	return out
}

// convertOperation merges the path level parameters into op; operation
// parameters override path parameters with the same name and location
func convertOperation(method string, op *v3.Operation, pathParams []*v3.Parameter) models.Operation {
	out := models.Operation{
		Method:      method,
		OperationID: op.OperationId,
		Tags:        append([]string(nil), op.Tags...),
		Servers:     convertServers(op.Servers),
		Responses:   convertResponses(op.Responses),
	}

	overridden := make(map[string]bool)
	for _, param := range op.Parameters {
		if param != nil {
			overridden[param.In+"\x00"+param.Name] = true
		}
	}
	for _, param := range pathParams {
		if param != nil && !overridden[param.In+"\x00"+param.Name] {
			out.Parameters = append(out.Parameters, convertParameter(param))
		}
	}
	for _, param := range op.Parameters {
		if param != nil {
			out.Parameters = append(out.Parameters, convertParameter(param))
		}
	}

	return out
}

func convertParameter(param *v3.Parameter) models.Parameter {
	out := models.Parameter{
		Name:  param.Name,
		In:    models.ParameterLocation(param.In),
		Style: param.Style,
	}
	if param.Required != nil {
		out.Required = *param.Required
	}
	if param.Explode != nil {
		out.Explode = *param.Explode
	}
	if param.Schema != nil {
		out.Schema = convertSchema(param.Schema.Schema())
	}
	return out
}

func convertSchema(schema *base.Schema) models.Schema {
	var out models.Schema
	if schema == nil {
		return out
	}

	if len(schema.Type) > 0 {
		out.Type = schema.Type[0]
	}
	for _, node := range schema.Enum {
		if node != nil {
			out.Enum = append(out.Enum, node.Value)
		}
	}
	if schema.Default != nil {
		def := schema.Default.Value
		out.Default = &def
	}
	out.Minimum = schema.Minimum
	out.Maximum = schema.Maximum
	return out
}

func convertResponses(responses *v3.Responses) map[string]models.Response {
	out := make(map[string]models.Response)
	if responses == nil {
		return out
	}

	if responses.Codes != nil {
		for pair := responses.Codes.First(); pair != nil; pair = pair.Next() {
			if pair.Value() != nil {
				out[pair.Key()] = convertResponse(pair.Value())
			}
		}
	}
	if responses.Default != nil {
		out["default"] = convertResponse(responses.Default)
	}
	return out
}

func convertResponse(resp *v3.Response) models.Response {
	out := models.Response{MediaTypes: make(map[string]models.MediaType)}
	if resp.Content == nil {
		return out
	}

	for pair := resp.Content.First(); pair != nil; pair = pair.Next() {
		var mt models.MediaType
		if v := pair.Value(); v != nil && v.Schema != nil {
			if s := v.Schema.Schema(); s != nil && len(s.Type) > 0 {
				mt.SchemaType = s.Type[0]
			}
		}
		out.MediaTypes[pair.Key()] = mt
	}
	return out
}
