package http

import (
	nethttp "net/http"

	"github.com/quizhire/recruitment/internal/identity"
)

// POST /auth/signup
func SignUpHandler(ids *identity.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req identity.SignUpRequest
		if !decodeJSON(w, r, &req) {
			return
		}
		u, err := ids.SignUp(r.Context(), req)
		if err != nil {
			writeError(w, "sign up", err)
			return
		}
		writeJSON(w, nethttp.StatusCreated, u)
	}
}

// POST /auth/token  { "email": "...", "password": "..." }
func TokenHandler(ids *identity.Service) nethttp.HandlerFunc {
	return func(w nethttp.ResponseWriter, r *nethttp.Request) {
		var req struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		if !decodeJSON(w, r, &req) {
			return
		}
		tok, err := ids.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			writeError(w, "sign in", err)
			return
		}
		writeJSON(w, nethttp.StatusOK, map[string]string{
			"message":  "Successfully signed in",
			"id_token": tok,
		})
	}
}
