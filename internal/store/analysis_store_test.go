// internal/store/analysis_store_test.go
package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"credit-pipeline/internal/common/database"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capturingTransport records the last request and answers with a canned
// Elasticsearch response.
type capturingTransport struct {
	lastReq    *http.Request
	lastBody   []byte
	statusCode int
}

func (t *capturingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	t.lastReq = req
	if req.Body != nil {
		t.lastBody, _ = io.ReadAll(req.Body)
		req.Body.Close()
	}
	return &http.Response{
		StatusCode: t.statusCode,
		Body:       io.NopCloser(strings.NewReader(`{"result":"created"}`)),
		Header:     http.Header{"X-Elastic-Product": []string{"Elasticsearch"}, "Content-Type": []string{"application/json"}},
	}, nil
}

func newAnalysisStoreForTest(t *testing.T, statusCode int) (*AnalysisStore, *capturingTransport) {
	t.Helper()
	transport := &capturingTransport{statusCode: statusCode}
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{"http://elasticsearch:9200"},
		Transport: transport,
	})
	require.NoError(t, err)
	es := &database.ElasticsearchClient{Client: client, AnalysisIndex: "analysis"}
	return NewAnalysisStore(es, logger.NewTestLogger(t)), transport
}

func TestSaveIndexesByApplicantID(t *testing.T) {
	store, transport := newAnalysisStoreForTest(t, http.StatusCreated)

	report := &models.AnalysisReport{
		ApplicantID: "app-42",
		MonthlyFinancialProfile: models.MonthlyFinancialProfile{
			IngresosPromedio: 60000,
			MesesAnalizados:  3,
		},
		FinancialScore: models.FinancialScore{
			Score: 85,
			Nivel: "Excelente",
		},
		Resultados: []models.MatchResult{
			{LenderID: "fin-001", LenderName: "Financiera Uno", Score: 90, Nivel: models.TierPerfecto},
		},
		UpdatedAt: time.Now().UTC(),
	}

	require.NoError(t, store.Save(context.Background(), report))

	require.NotNil(t, transport.lastReq)
	assert.Equal(t, "PUT", transport.lastReq.Method)
	assert.Equal(t, "/analysis/_doc/app-42", transport.lastReq.URL.Path)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(transport.lastBody, &doc))
	// profile and score flatten into the top level
	assert.Equal(t, float64(60000), doc["ingresos_promedio"])
	assert.Equal(t, float64(85), doc["score"])
	results, ok := doc["resultados"].([]interface{})
	require.True(t, ok)
	assert.Len(t, results, 1)
}

func TestSaveReportsIndexError(t *testing.T) {
	store, _ := newAnalysisStoreForTest(t, http.StatusInternalServerError)

	err := store.Save(context.Background(), &models.AnalysisReport{ApplicantID: "app-1"})
	assert.Error(t, err)
}
