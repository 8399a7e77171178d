package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/majikang/lumen-dingo-jwt-blog/internal/api/shared"
	"github.com/majikang/lumen-dingo-jwt-blog/internal/platform/logger"
)

// requireUserID extracts the authenticated user's ID from the request
// context. If the ID is missing it writes a bare 401 and returns false;
// the auth middleware should have rejected such requests already.
func requireUserID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	userID, ok := shared.UserIDFromContext(r.Context())
	if !ok {
		logger.FromContext(r.Context()).Warn("user ID not found or invalid in request context")
		shared.RespondWithStatus(w, http.StatusUnauthorized)
		return 0, false
	}
	return userID, true
}

// pathID extracts a numeric ID from the URL path parameters. A
// malformed value can never name an entity, so it gets a bare 404 and
// a false return.
func pathID(w http.ResponseWriter, r *http.Request, param string) (int64, bool) {
	id, err := parsePathID(chi.URLParam(r, param))
	if err != nil {
		shared.RespondWithStatus(w, http.StatusNotFound)
		return 0, false
	}
	return id, true
}

// pageFromRequest reads the `page` and `per_page` query parameters,
// falling back to page 1 and the default page size.
func pageFromRequest(r *http.Request) (number, size int) {
	q := r.URL.Query()
	number = 1
	if n, err := parsePathID(q.Get("page")); err == nil {
		number = int(n)
	}
	size = 0
	if n, err := parsePathID(q.Get("per_page")); err == nil {
		size = int(n)
	}
	return number, size
}
