package testpoint

import (
	"maps"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/pathtemplate"
)

// Build creates the test points of op on path served by server.
//
// Operations without a "200" or "default" response produce none. When the
// URL has variables that cannot be bound from the operation parameters,
// allowEmpty decides between one test point with an empty binding (for
// callers that only need the shape of the endpoint) and none at all.
func Build(path *models.PathItem, op *models.Operation, server models.ServerTemplate, instanceRoot string, allowEmpty bool) []models.TestPoint {
	resp, ok := op.SuccessResponse()
	if !ok {
		return nil
	}

	serverURL := NormalizeServerURL(server, instanceRoot)
	newPoint := func(b models.TemplateBinding) models.TestPoint {
		return models.TestPoint{
			ServerURL:    serverURL,
			PathTemplate: path.Template,
			Binding:      b,
			MediaTypes:   maps.Clone(resp.MediaTypes),
		}
	}

	uriTemplate := models.TestPoint{ServerURL: serverURL, PathTemplate: path.Template}.URITemplate()
	if len(pathtemplate.Variables(uriTemplate)) == 0 {
		return []models.TestPoint{newPoint(models.TemplateBinding{})}
	}

	bindings := Expand(uriTemplate, op.Parameters)
	if len(bindings) == 0 {
		if allowEmpty {
			return []models.TestPoint{newPoint(models.TemplateBinding{})}
		}
		return nil
	}

	points := make([]models.TestPoint, 0, len(bindings))
	for _, b := range bindings {
		points = append(points, newPoint(b))
	}
	return points
}
