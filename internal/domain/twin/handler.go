package twin

import (
	"encoding/json"
	"net/http"

	"mdr-twin-gateway/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/api/twin", func(tr chi.Router) {
		tr.Get("/patients", listPatientsHandler(svc, log))
	})
}

// patientResponse es un paciente tal como lo consume la app del gemelo digital.
type patientResponse struct {
	// ID sale como número (INTEGER) o string (TEXT), según la columna.
	ID         PatientID `json:"id"`
	Name       string    `json:"name"`
	Age        int       `json:"age"`
	Ward       string    `json:"ward"`
	IsMDRKnown bool      `json:"is_mdr_known"`
}

// errorResponse es el cuerpo de cualquier respuesta 5xx de la API.
type errorResponse struct {
	Error string `json:"error"`
}

// listPatientsHandler godoc
// @Summary Listar pacientes del gemelo digital
// @Description Devuelve todos los pacientes de la tabla patients (id, name, age, ward, is_mdr_known) en el orden nativo del almacenamiento. Cada request hace una única lectura; sin caché ni paginación.
// @Tags twin
// @Produce json
// @Success 200 {array} patientResponse
// @Failure 500 {object} errorResponse "error de consulta"
// @Router /api/twin/patients [get]
func listPatientsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		reqLog := log.With(logger.Fields{"request_id": chimw.GetReqID(r.Context())})

		items, err := svc.ListPatients(r.Context())
		if err != nil {
			reqLog.Error("list patients failed", logger.Fields{"error": err.Error()})
			writeError(w, http.StatusInternalServerError, err.Error())
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}

		reqLog.Debug("patients fetched", logger.Fields{"count": len(out)})
		writeJSON(w, http.StatusOK, out)
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:         p.ID,
		Name:       p.Name,
		Age:        p.Age,
		Ward:       p.Ward,
		IsMDRKnown: p.IsMDRKnown,
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
