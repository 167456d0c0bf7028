package testpoint

import (
	"testing"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	defaultServer := models.ServerTemplate{URL: DefaultServerURL}

	t.Run("zero variables give one point with an empty binding", func(t *testing.T) {
		path := pathItem("/collections")
		op := getOp()
		got := Build(&path, &op, defaultServer, iut, false)
		require.Len(t, got, 1)
		assert.Equal(t, iut, got[0].ServerURL)
		assert.Equal(t, "/collections", got[0].PathTemplate)
		assert.Empty(t, got[0].Binding)
		assert.NotNil(t, got[0].Binding)
		assert.Equal(t, jsonResponse().MediaTypes, got[0].MediaTypes)
	})

	t.Run("missing 200 and default response gives nothing", func(t *testing.T) {
		path := pathItem("/collections")
		op := models.Operation{Method: "get", Responses: map[string]models.Response{"404": jsonResponse()}}
		assert.Empty(t, Build(&path, &op, defaultServer, iut, true))
	})

	t.Run("default response is used when 200 is absent", func(t *testing.T) {
		path := pathItem("/collections")
		html := models.Response{MediaTypes: map[string]models.MediaType{"text/html": {}}}
		op := models.Operation{Method: "get", Responses: map[string]models.Response{"default": html}}
		got := Build(&path, &op, defaultServer, iut, false)
		require.Len(t, got, 1)
		assert.Equal(t, html.MediaTypes, got[0].MediaTypes)
	})

	t.Run("one point per binding", func(t *testing.T) {
		path := pathItem(CollectionItemsPath)
		op := getOp(pathParam("collectionId", "lakes", "rivers"))
		got := Build(&path, &op, defaultServer, iut, false)
		assert.Equal(t, []models.TemplateBinding{{"collectionId": "lakes"}, {"collectionId": "rivers"}}, bindings(got))
	})

	t.Run("unbindable variables depend on allowEmpty", func(t *testing.T) {
		path := pathItem(CollectionItemsPath)
		op := getOp(pathParam("collectionId"))

		assert.Empty(t, Build(&path, &op, defaultServer, iut, false))

		got := Build(&path, &op, defaultServer, iut, true)
		require.Len(t, got, 1)
		assert.Empty(t, got[0].Binding)
		assert.False(t, got[0].IsComplete())
	})

	t.Run("server variables count as template variables", func(t *testing.T) {
		path := pathItem("/collections")
		op := getOp()
		server := models.ServerTemplate{URL: "https://{env}.example.org"}

		assert.Empty(t, Build(&path, &op, server, iut, false))
		require.Len(t, Build(&path, &op, server, iut, true), 1)
	})

	t.Run("server variable bound from a parameter", func(t *testing.T) {
		path := pathItem("/collections")
		env := pathParam("env", "test")
		op := getOp(env)
		server := models.ServerTemplate{URL: "https://{env}.example.org"}

		got := Build(&path, &op, server, iut, false)
		require.Len(t, got, 1)
		assert.Equal(t, models.TemplateBinding{"env": "test"}, got[0].Binding)
	})

	t.Run("media types are copied", func(t *testing.T) {
		path := pathItem("/collections")
		op := getOp()
		got := Build(&path, &op, defaultServer, iut, false)
		got[0].MediaTypes["text/html"] = models.MediaType{}
		assert.NotContains(t, op.Responses["200"].MediaTypes, "text/html")
	})
}
