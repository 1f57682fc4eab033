package http

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"strconv"

	nethttp "net/http"

	"github.com/go-chi/chi/v5"

	"github.com/quizhire/recruitment/internal/apperr"
	authmw "github.com/quizhire/recruitment/internal/auth/middleware"
	"github.com/quizhire/recruitment/internal/identity"
	"github.com/quizhire/recruitment/internal/rbac"
)

const maxBodyBytes = 10 << 20 // base64 resumes

type errorBody struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeJSON(w nethttp.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w nethttp.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Message: msg})
}

// writeError maps domain errors to status codes. Anything unclassified is
// logged with op and reported as a 500 without details.
func writeError(w nethttp.ResponseWriter, op string, err error) {
	var ae *apperr.Error
	if errors.As(err, &ae) {
		status := nethttp.StatusInternalServerError
		switch ae.Kind {
		case apperr.KindValidation:
			status = nethttp.StatusBadRequest
		case apperr.KindNotFound, apperr.KindInsufficientData:
			status = nethttp.StatusNotFound
		case apperr.KindConflict:
			status = nethttp.StatusConflict
		}
		if status != nethttp.StatusInternalServerError {
			writeJSON(w, status, errorBody{Message: ae.Msg, Field: ae.Field})
			return
		}
	}
	if errors.Is(err, identity.ErrInvalidCredentials) {
		writeMessage(w, nethttp.StatusUnauthorized, "Invalid email or password.")
		return
	}
	log.Printf("%s: %v", op, err)
	writeMessage(w, nethttp.StatusInternalServerError, "Internal server error.")
}

// decodeJSON reads a JSON body into dst and answers 400 itself on failure.
func decodeJSON(w nethttp.ResponseWriter, r *nethttp.Request, dst any) bool {
	body := nethttp.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var mbe *nethttp.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			writeMessage(w, nethttp.StatusRequestEntityTooLarge, "Request body too large.")
		case errors.Is(err, io.EOF):
			writeMessage(w, nethttp.StatusBadRequest, "Request body is required.")
		default:
			writeMessage(w, nethttp.StatusBadRequest, "Invalid JSON body.")
		}
		return false
	}
	return true
}

// idParam parses a positive integer URL parameter and answers 400 itself on failure.
func idParam(w nethttp.ResponseWriter, r *nethttp.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		writeMessage(w, nethttp.StatusBadRequest, "Invalid "+name+".")
		return 0, false
	}
	return id, true
}

// actsFor reports whether the caller is userID or holds perm.
func actsFor(r *nethttp.Request, userID *int64, perm string) bool {
	if rbac.Can(r.Context(), perm) {
		return true
	}
	caller, ok := authmw.UserIDFromContext(r.Context())
	return ok && userID != nil && *userID == caller
}

func formatID(id int64) string { return strconv.FormatInt(id, 10) }
