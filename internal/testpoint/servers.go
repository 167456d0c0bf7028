package testpoint

import (
	"net/url"
	"strings"

	"github.com/opengeospatial/ets-ogcapi-features10/internal/models"
	"github.com/opengeospatial/ets-ogcapi-features10/internal/pathtemplate"
)

// DefaultServerURL is the implicit server used when nothing is declared. It
// stands for the instance under test itself.
const DefaultServerURL = "/"

// ResolveServers returns the servers that apply to op on path. The first
// level that declares servers wins, without merging: operation, then path
// item, then document, then DefaultServerURL.
func ResolveServers(api *models.APIDescription, path *models.PathItem, op *models.Operation) []models.ServerTemplate {
	switch {
	case op != nil && len(op.Servers) > 0:
		return op.Servers
	case path != nil && len(path.Servers) > 0:
		return path.Servers
	case api != nil && len(api.Servers) > 0:
		return api.Servers
	default:
		return []models.ServerTemplate{{URL: DefaultServerURL}}
	}
}

// NormalizeServerURL turns server into an absolute URL (template). Server
// variables with a default are substituted first. The default marker
// resolves to instanceRoot verbatim, a URL starting with "/" resolves
// against the scheme and authority of instanceRoot and anything else is
// taken as absolute already.
func NormalizeServerURL(server models.ServerTemplate, instanceRoot string) string {
	raw := server.URL
	if defaults := server.Defaults(); len(defaults) > 0 {
		raw = pathtemplate.Substitute(raw, defaults)
	}

	switch {
	case raw == DefaultServerURL || raw == "":
		return instanceRoot
	case strings.HasPrefix(raw, "/"):
		return resolveAbsolutePath(instanceRoot, raw)
	default:
		return raw
	}
}

// resolveAbsolutePath resolves an absolute-path reference against root the
// way RFC 3986 does, without re-encoding the template braces in ref.
func resolveAbsolutePath(root, ref string) string {
	u, err := url.Parse(root)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return strings.TrimSuffix(root, "/") + ref
	}
	return u.Scheme + "://" + u.Host + ref
}
