package v1

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/yungbote/kingbayo/internal/history"
	"github.com/yungbote/kingbayo/internal/httpapi/httputil"
)

func handleHistory(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		tickets := d.Session.History()
		httputil.WriteJSON(w, http.StatusOK, HistoryResponse{
			Count:    len(tickets),
			Capacity: history.Capacity,
			Tickets:  tickets,
		})
	}
}

func handleClearHistory(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		d.Session.ClearHistory()
		w.WriteHeader(http.StatusNoContent)
	}
}

// handleExportHistory buffers the CSV so a write failure can still be
// reported as a JSON error.
func handleExportHistory(d Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var buf bytes.Buffer
		name, err := d.Session.ExportHistory(&buf)
		if err != nil {
			writeError(w, r, d.Log, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(buf.Bytes())
	}
}
