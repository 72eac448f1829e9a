// internal/store/analysis_store.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"credit-pipeline/internal/common/database"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
)

// AnalysisStore persists analysis reports to Elasticsearch. One document
// per applicant, keyed by applicant ID, fully overwritten on every run.
type AnalysisStore struct {
	es     *database.ElasticsearchClient
	logger logger.Logger
}

func NewAnalysisStore(es *database.ElasticsearchClient, log logger.Logger) *AnalysisStore {
	return &AnalysisStore{
		es:     es,
		logger: log.WithFields(map[string]interface{}{"component": "analysis-store"}),
	}
}

// Save indexes the report under the applicant's ID.
func (s *AnalysisStore) Save(ctx context.Context, report *models.AnalysisReport) error {
	body, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal analysis report: %w", err)
	}

	if err := s.es.IndexAnalysisDocument(ctx, report.ApplicantID, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("index analysis report: %w", err)
	}

	s.logger.Info("analysis report persisted", map[string]interface{}{
		"applicant": report.ApplicantID,
		"index":     s.es.AnalysisIndex,
	})
	return nil
}
