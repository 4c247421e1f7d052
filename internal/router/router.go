package router

import (
	"encoding/json"
	"net/http"

	_ "mdr-twin-gateway/docs"
	"mdr-twin-gateway/internal/domain/twin"
	"mdr-twin-gateway/internal/middleware"
	"mdr-twin-gateway/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

// MiniHealthBody es la respuesta fija del servidor mini.
const MiniHealthBody = "mini-ok"

type Options struct {
	// Repo es el acceso read-only ya abierto. Obligatorio: el bootstrap lo
	// abre antes de construir el router.
	Repo twin.Repository

	// Logger opcional; nil => logger.Nop().
	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", healthHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	twinSvc := twin.NewService(opts.Repo)
	twin.RegisterRoutes(r, twinSvc, log)

	return r
}

// NewMiniRouter es el servidor secundario: solo /health, sin base de datos.
func NewMiniRouter(log logger.Logger) http.Handler {
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(middleware.RequestLog(log))
	r.Use(middleware.Recover(log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(MiniHealthBody))
	})

	return r
}

type healthResponse struct {
	Status string `json:"status" example:"ok"`
}

// healthHandler godoc
// @Summary Liveness
// @Description Responde 200 mientras el proceso esté vivo. No consulta la base de datos.
// @Tags health
// @Produce json
// @Success 200 {object} healthResponse
// @Router /health [get]
func healthHandler(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(healthResponse{Status: "ok"})
}
