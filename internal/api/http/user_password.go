package http

import (
	"errors"

	nethttp "net/http"

	authmw "github.com/quizhire/recruitment/internal/auth/middleware"
	"github.com/quizhire/recruitment/internal/identity"
)

type changePasswordReq struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

// POST /users/change-password
func ChangePasswordHandler(ids *identity.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		userID, ok := authmw.UserIDFromContext(r.Context())
		if !ok {
			nethttp.Error(w, "unauthorized", nethttp.StatusUnauthorized)
			return
		}

		var req changePasswordReq
		if !decodeJSON(w, r, &req) {
			return
		}

		err := ids.ChangePassword(r.Context(), userID, req.OldPassword, req.NewPassword)
		switch {
		case err == nil:
			w.WriteHeader(nethttp.StatusNoContent)
		case errors.Is(err, identity.ErrInvalidCredentials):
			writeMessage(w, nethttp.StatusForbidden, "Incorrect old password.")
		default:
			writeError(w, "change password", err)
		}
	}
}
