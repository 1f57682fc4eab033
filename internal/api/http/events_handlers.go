package http

import (
	"strconv"

	nethttp "net/http"

	"github.com/quizhire/recruitment/internal/events"
)

// GET /events?after=<seq>&limit=<n>
// Returns quiz events recorded after seq, oldest first.
func ListEventsHandler(repo *events.LogRepo) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		q := r.URL.Query()
		after, err := queryInt(q.Get("after"))
		if err != nil || after < 0 {
			writeMessage(w, nethttp.StatusBadRequest, "Invalid after.")
			return
		}
		limit, err := queryInt(q.Get("limit"))
		if err != nil {
			writeMessage(w, nethttp.StatusBadRequest, "Invalid limit.")
			return
		}
		recs, err := repo.Since(r.Context(), after, int(limit))
		if err != nil {
			writeError(w, "list events", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, recs)
	}
}

func queryInt(v string) (int64, error) {
	if v == "" {
		return 0, nil
	}
	return strconv.ParseInt(v, 10, 64)
}
