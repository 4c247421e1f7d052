package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"

	"mdr-twin-gateway/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover reemplaza a chimw.Recoverer: loguea el panic con el logger del
// servicio y responde 500 en el mismo formato JSON que el resto de la API.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				// http.ErrAbortHandler se re-lanza: net/http lo usa para cortar la conexión.
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered", logger.Fields{
					"request_id": chimw.GetReqID(r.Context()),
					"path":       r.URL.Path,
					"panic":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
				})

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{"error": "internal error"})
			}()

			next.ServeHTTP(w, r)
		})
	}
}
