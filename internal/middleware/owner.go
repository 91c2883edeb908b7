package middleware

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
)

// OwnerResolver expone el dueño de un paciente sin importar el paquete patients.
type OwnerResolver interface {
	OwnerOf(ctx context.Context, patientID string) (string, error)
}

// RequireOwner protege las rutas /patients/{patientID}/...:
// 401 sin usuario, 404 si el paciente no existe, 403 si no es el dueño.
func RequireOwner(owners OwnerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			uid := UserID(r.Context())
			if uid == "" {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}

			owner, err := owners.OwnerOf(r.Context(), chi.URLParam(r, "patientID"))
			if err != nil {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			if owner != uid {
				http.Error(w, "forbidden", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
