// internal/api/handler.go
package api

import (
	"encoding/json"
	"io"
	"net/http"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/common/validation"
	"credit-pipeline/internal/models"
	"credit-pipeline/internal/pipeline"

	"github.com/google/uuid"
)

// analyzeRequest is the submission payload for one applicant batch.
type analyzeRequest struct {
	ApplicantID     string            `json:"applicant_id"`
	TipoPersona     string            `json:"tipo_persona"`
	MontoSolicitado float64           `json:"monto_solicitado"`
	ScoreBuro       int               `json:"score_buro"`
	Region          string            `json:"region,omitempty"`
	Email           string            `json:"email,omitempty"`
	Documents       []documentRequest `json:"documents"`
}

type documentRequest struct {
	FileName    string `json:"file_name"`
	Path        string `json:"path"`
	Kind        string `json:"kind"`
	Institution string `json:"institution,omitempty"`
}

// analyzeSchema validates submissions before anything touches the queue.
var analyzeSchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"applicant_id", "tipo_persona", "monto_solicitado", "documents"},
	"properties": map[string]interface{}{
		"applicant_id":     map[string]interface{}{"type": "string", "minLength": 1},
		"tipo_persona":     map[string]interface{}{"type": "string", "enum": []interface{}{"fisica", "moral"}},
		"monto_solicitado": map[string]interface{}{"type": "number", "minimum": 0, "exclusiveMinimum": true},
		"score_buro":       map[string]interface{}{"type": "integer", "minimum": 0},
		"region":           map[string]interface{}{"type": "string"},
		"email":            map[string]interface{}{"type": "string"},
		"documents": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"file_name", "path", "kind"},
				"properties": map[string]interface{}{
					"file_name":   map[string]interface{}{"type": "string", "minLength": 1},
					"path":        map[string]interface{}{"type": "string", "minLength": 1},
					"kind":        map[string]interface{}{"type": "string", "enum": []interface{}{"estado_cuenta", "buro_credito"}},
					"institution": map[string]interface{}{"type": "string"},
				},
			},
		},
	},
}

type analyzeHandler struct {
	dispatcher Submitter
	logger     logger.Logger
}

// handleAnalyze accepts a batch and answers 202 immediately. The caller
// learns the outcome through notifications, not this response.
func (h *analyzeHandler) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable request body")
		return
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(body, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	result, err := validation.ValidateAgainstSchema(raw, analyzeSchema)
	if err != nil {
		h.logger.Error("request validation broke", map[string]interface{}{
			"error": err.Error(),
		})
		writeError(w, http.StatusInternalServerError, "validation failed")
		return
	}
	if !result.Valid {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error":  "invalid request",
			"fields": result.Errors,
		})
		return
	}

	var req analyzeRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON")
		return
	}

	batch := &pipeline.Batch{
		RunID: uuid.New().String(),
		Applicant: models.ApplicantProfile{
			ApplicantID:     req.ApplicantID,
			TipoPersona:     req.TipoPersona,
			MontoSolicitado: req.MontoSolicitado,
			ScoreBuro:       req.ScoreBuro,
			Region:          req.Region,
			Email:           req.Email,
		},
	}
	for _, doc := range req.Documents {
		batch.Documents = append(batch.Documents, models.SourceDocument{
			FileName:    doc.FileName,
			Path:        doc.Path,
			Kind:        models.DocumentKind(doc.Kind),
			Institution: doc.Institution,
		})
	}

	if !h.dispatcher.Submit(batch) {
		writeError(w, http.StatusServiceUnavailable, "analysis queue is full, retry later")
		return
	}

	h.logger.Info("batch accepted", map[string]interface{}{
		"run":       batch.RunID,
		"applicant": batch.Applicant.ApplicantID,
		"documents": len(batch.Documents),
	})

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusAccepted)
	json.NewEncoder(w).Encode(map[string]string{
		"run_id": batch.RunID,
		"status": "accepted",
	})
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
