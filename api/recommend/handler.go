package recommend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ambuflow/crewmatch/core/model"
	"github.com/ambuflow/crewmatch/core/recommend"
)

// EvaluateRequest is the JSON payload for POST /api/recommend/evaluate.
type EvaluateRequest struct {
	Requirement model.DispatchRequirement   `json:"requirement"`
	Roster      []model.CrewCandidate       `json:"roster"`
	Records     []model.CertificationRecord `json:"certification_records"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewEvaluateHandler returns an HTTP handler running one evaluation per
// request via POST /api/recommend/evaluate.
func NewEvaluateHandler(engine *recommend.Engine) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req EvaluateRequest
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid payload: "+err.Error())
			return
		}

		result, err := engine.Evaluate(r.Context(), req.Requirement, req.Roster, req.Records)
		if err != nil {
			var ire *recommend.InvalidRequirementError
			switch {
			case errors.Is(err, recommend.ErrEmptyRoster):
				writeError(w, http.StatusUnprocessableEntity, err.Error())
			case errors.As(err, &ire):
				writeError(w, http.StatusUnprocessableEntity, ire.Error())
			default:
				writeError(w, http.StatusInternalServerError, err.Error())
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
	})
}

func writeError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: msg})
}
