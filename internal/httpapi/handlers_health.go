package httpapi

import (
	"net/http"

	"github.com/yungbote/kingbayo/internal/httpapi/httputil"
	"github.com/yungbote/kingbayo/internal/router"
)

func handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

// handleReadyz reports ready in every engine mode: without an upstream the
// fallback generator still serves requests.
func handleReadyz(route router.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"status":             "ok",
			"engine":             route.Kind,
			"upstream_available": route.Available(),
		})
	}
}
