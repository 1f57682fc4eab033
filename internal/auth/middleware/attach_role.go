package auth

import (
	"database/sql"
	"errors"
	"log"
	"net/http"

	"github.com/quizhire/recruitment/internal/rbac"
)

// AttachRoleFromDB replaces the token's role with the one stored for the
// user, so demotions take effect before the token expires. Tokens for
// users that no longer exist are rejected.
func AttachRoleFromDB(db *sql.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			id, ok := UserIDFromContext(ctx)
			if !ok {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			var role string
			err := db.QueryRowContext(ctx, `SELECT role FROM users WHERE id=$1`, id).Scan(&role)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(rbac.WithRole(ctx, role)))
			case errors.Is(err, sql.ErrNoRows):
				http.Error(w, "forbidden", http.StatusForbidden)
			default:
				log.Printf("auth: load role for user %d: %v", id, err)
				http.Error(w, "Internal server error.", http.StatusInternalServerError)
			}
		})
	}
}
