package pathtemplate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariables(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"no variables", "/collections", nil},
		{"single", "/collections/{collectionId}", []string{"collectionId"}},
		{"declaration order", "/collections/{collectionId}/items/{featureId}", []string{"collectionId", "featureId"}},
		{"duplicates collapse", "/{a}/{b}/{a}", []string{"a", "b"}},
		{"server and path", "https://{host}:{port}/api/{version}/items", []string{"host", "port", "version"}},
		{"unclosed brace is literal", "/collections/{collectionId", nil},
		{"empty braces are literal", "/collections/{}/items", nil},
		{"nested brace keeps inner variable", "/x/{a{b}/y", []string{"b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Variables(tt.template))
		})
	}
}

func TestCompile(t *testing.T) {
	t.Run("wildcards unbound variables", func(t *testing.T) {
		re, captured := Compile("/collections/{collectionId}/items", nil)
		assert.Equal(t, []string{"collectionId"}, captured)
		assert.True(t, re.MatchString("/collections/lakes/items"))
		assert.False(t, re.MatchString("/collections/lakes/items/1"))
		assert.False(t, re.MatchString("/collections/a/b/items"))
	})

	t.Run("bound variables become literals", func(t *testing.T) {
		re, captured := Compile("/collections/{collectionId}/items", map[string]string{"collectionId": "lakes"})
		assert.Empty(t, captured)
		assert.True(t, re.MatchString("/collections/lakes/items"))
		assert.False(t, re.MatchString("/collections/rivers/items"))
	})

	t.Run("bound values are escaped", func(t *testing.T) {
		re, _ := Compile("/collections/{collectionId}", map[string]string{"collectionId": "a.b"})
		assert.True(t, re.MatchString("/collections/a.b"))
		assert.False(t, re.MatchString("/collections/aXb"))
	})

	t.Run("bound values match raw or percent-encoded", func(t *testing.T) {
		re, captured := Compile("/collections/{collectionId}/items", map[string]string{"collectionId": "my lakes"})
		assert.Empty(t, captured)
		assert.True(t, re.MatchString("/collections/my lakes/items"))
		assert.True(t, re.MatchString("/collections/my%20lakes/items"))
		assert.False(t, re.MatchString("/collections/my%20rivers/items"))

		re, _ = Compile("/collections/{collectionId}", map[string]string{"collectionId": "flüsse"})
		assert.True(t, re.MatchString("/collections/fl%C3%BCsse"))
	})

	t.Run("literal metacharacters are escaped", func(t *testing.T) {
		re, _ := Compile("/api.v1/items+more", nil)
		assert.True(t, re.MatchString("/api.v1/items+more"))
		assert.False(t, re.MatchString("/apiXv1/items+more"))
	})

	t.Run("malformed template matches itself", func(t *testing.T) {
		re, captured := Compile("/collections/{collectionId", nil)
		assert.Empty(t, captured)
		assert.True(t, re.MatchString("/collections/{collectionId"))
		assert.False(t, re.MatchString("/collections/lakes"))
	})
}

func TestExpand(t *testing.T) {
	t.Run("complete binding", func(t *testing.T) {
		got, unresolved := Expand("/collections/{collectionId}/items/{featureId}",
			map[string]string{"collectionId": "lakes", "featureId": "42"})
		assert.Equal(t, "/collections/lakes/items/42", got)
		assert.Empty(t, unresolved)
	})

	t.Run("values are path escaped", func(t *testing.T) {
		got, _ := Expand("/collections/{collectionId}", map[string]string{"collectionId": "a b/c"})
		assert.Equal(t, "/collections/a%20b%2Fc", got)
	})

	t.Run("partial binding keeps placeholders", func(t *testing.T) {
		got, unresolved := Expand("/collections/{collectionId}/items/{featureId}",
			map[string]string{"collectionId": "lakes"})
		assert.Equal(t, "/collections/lakes/items/{featureId}", got)
		require.Len(t, unresolved, 1)
		assert.Equal(t, "featureId", unresolved[0])
	})
}

func TestSubstitute(t *testing.T) {
	got := Substitute("https://{host}:{port}/{basePath}", map[string]string{
		"host":     "example.org",
		"basePath": "v1/api",
	})
	assert.Equal(t, "https://example.org:{port}/v1/api", got)
}
