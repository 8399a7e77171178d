package api

import (
	"net/http"
	"strings"
)

// Includes is the set of relation names a request asked to embed via
// the `include` query parameter.
type Includes map[string]bool

// ParseIncludes reads the comma-separated `include` query parameter.
// Relation names may carry transformer-style parameters after a colon
// (e.g. "comments:limit(1)"); only the bare name is kept. Names outside
// the supported set are ignored rather than rejected.
func ParseIncludes(r *http.Request, supported ...string) Includes {
	raw := r.URL.Query().Get("include")
	if raw == "" {
		return nil
	}

	allowed := make(map[string]bool, len(supported))
	for _, name := range supported {
		allowed[name] = true
	}

	includes := make(Includes)
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if i := strings.IndexByte(name, ':'); i >= 0 {
			name = name[:i]
		}
		if allowed[name] {
			includes[name] = true
		}
	}

	if len(includes) == 0 {
		return nil
	}
	return includes
}

// Has reports whether the relation was requested.
func (in Includes) Has(name string) bool {
	return in[name]
}
