// internal/pipeline/runner_test.go
package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	pipelineerrors "credit-pipeline/internal/common/errors"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/common/observability"
	"credit-pipeline/internal/models"
	assesscreditrisk "credit-pipeline/internal/workers/bureau/assess-credit-risk"
	parsebureaureport "credit-pipeline/internal/workers/bureau/parse-bureau-report"
	matchlenders "credit-pipeline/internal/workers/matching/match-lenders"
	sendnotification "credit-pipeline/internal/workers/notification/send-notification"
	calculatecreditscore "credit-pipeline/internal/workers/scoring/calculate-credit-score"
	aggregateprofile "credit-pipeline/internal/workers/statement/aggregate-profile"
	parsestatement "credit-pipeline/internal/workers/statement/parse-statement"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hsbcStatement = `HSBC MEXICO
PERIODO DEL 01/01/2024 AL 31/01/2024
SALDO PROMEDIO 42,000.00
05 SPEI RECIBIDO CLIENTE ALFA 15,000.00 45,000.00
12 DEPOSITO EN EFECTIVO 10,000.00 55,000.00`

type fakeExtractor struct {
	pages map[string][]string
}

func (f *fakeExtractor) Extract(ctx context.Context, path string) ([]string, error) {
	pages, ok := f.pages[path]
	if !ok {
		return nil, errors.New("unreadable document")
	}
	return pages, nil
}

type fakeLenders struct {
	criteria []models.LenderCriteria
	err      error
}

func (f *fakeLenders) ListCriteria(ctx context.Context) ([]models.LenderCriteria, error) {
	return f.criteria, f.err
}

type fakeSaver struct {
	saved []*models.AnalysisReport
	err   error
}

func (f *fakeSaver) Save(ctx context.Context, report *models.AnalysisReport) error {
	if f.err != nil {
		return f.err
	}
	f.saved = append(f.saved, report)
	return nil
}

type fakeNotifier struct {
	inputs []*sendnotification.Input
}

func (f *fakeNotifier) Execute(ctx context.Context, input *sendnotification.Input) (*sendnotification.Output, error) {
	f.inputs = append(f.inputs, input)
	return &sendnotification.Output{Status: sendnotification.StatusSent}, nil
}

func (f *fakeNotifier) events() []string {
	out := make([]string, 0, len(f.inputs))
	for _, in := range f.inputs {
		out = append(out, in.Event)
	}
	return out
}

type runnerFixture struct {
	runner   *Runner
	notifier *fakeNotifier
	saver    *fakeSaver
}

func newRunnerFixture(t *testing.T, extractor *fakeExtractor, lenders *fakeLenders, saver *fakeSaver) *runnerFixture {
	t.Helper()
	log := logger.NewTestLogger(t)
	notifier := &fakeNotifier{}
	runner := NewRunner(RunnerParams{
		Statements:    parsestatement.NewHandler(parsestatement.LoadConfig(), extractor, log),
		Aggregator:    aggregateprofile.NewHandler(aggregateprofile.LoadConfig(), log),
		BureauParser:  parsebureaureport.NewHandler(parsebureaureport.LoadConfig(), extractor, log),
		RiskAssessor:  assesscreditrisk.NewHandler(assesscreditrisk.LoadConfig(), log),
		Scorer:        calculatecreditscore.NewHandler(calculatecreditscore.LoadConfig(), log),
		Matcher:       matchlenders.NewHandler(matchlenders.LoadConfig(), log),
		Lenders:       lenders,
		Saver:         saver,
		Notifier:      notifier,
		Observability: observability.New("runner-test"),
		StageTimeout:  5 * time.Second,
		Logger:        log,
	})
	return &runnerFixture{runner: runner, notifier: notifier, saver: saver}
}

func testBatch() *Batch {
	return &Batch{
		RunID: "run-1",
		Applicant: models.ApplicantProfile{
			ApplicantID:     "app-1",
			TipoPersona:     "moral",
			MontoSolicitado: 500000,
			ScoreBuro:       650,
		},
		Documents: []models.SourceDocument{
			{FileName: "enero.pdf", Path: "/docs/enero.pdf", Kind: models.KindStatement, Institution: "HSBC"},
		},
	}
}

func TestRunCompletesAndNotifies(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"/docs/enero.pdf": {hsbcStatement},
	}}
	lenders := &fakeLenders{criteria: []models.LenderCriteria{{
		ID:               "fin-001",
		Nombre:           "Financiera Uno",
		Email:            "contacto@finuno.mx",
		TipoPersona:      "moral",
		MontoMinimo:      100000,
		MontoMaximo:      5000000,
		DepositosMinimos: 20000,
		SaldosPromediosM: 10000,
		ScoreBuroMinimo:  600,
	}}}
	saver := &fakeSaver{}
	fx := newRunnerFixture(t, extractor, lenders, saver)

	require.NoError(t, fx.runner.Run(context.Background(), testBatch()))

	require.Len(t, saver.saved, 1)
	report := saver.saved[0]
	assert.Equal(t, "app-1", report.ApplicantID)
	assert.Equal(t, 1, report.MesesAnalizados)
	assert.InDelta(t, 25000, report.IngresosPromedio, 0.01)
	assert.InDelta(t, 42000, report.SaldoPromedio, 0.01)
	assert.Equal(t, 85, report.Score)
	assert.Equal(t, calculatecreditscore.LevelExcellent, report.Nivel)
	require.Len(t, report.Resultados, 1)
	assert.Equal(t, models.TierPerfecto, report.Resultados[0].Nivel)

	// lender email first, then the terminal push
	require.Len(t, fx.notifier.inputs, 2)
	email := fx.notifier.inputs[0]
	assert.Equal(t, sendnotification.ChannelEmail, email.Channel)
	assert.Equal(t, "contacto@finuno.mx", email.Target)
	assert.Equal(t, models.EventPerfectMatch, email.Event)

	terminal := fx.notifier.inputs[1]
	assert.Equal(t, sendnotification.ChannelPush, terminal.Channel)
	assert.Equal(t, "app-1", terminal.Target)
	assert.Equal(t, models.EventAnalysisCompleted, terminal.Event)
	assert.Equal(t, 1, terminal.Payload["matches_count"])
	assert.Equal(t, "run-1", terminal.Payload["run_id"])
}

func TestRunNoUsableDataNotifiesError(t *testing.T) {
	// extractor knows no paths, so every statement fails extraction
	extractor := &fakeExtractor{pages: map[string][]string{}}
	saver := &fakeSaver{}
	fx := newRunnerFixture(t, extractor, &fakeLenders{}, saver)

	err := fx.runner.Run(context.Background(), testBatch())
	require.ErrorIs(t, err, pipelineerrors.ErrNoUsableData)

	assert.Empty(t, saver.saved)
	assert.Equal(t, []string{models.EventAnalysisError}, fx.notifier.events())
}

func TestRunNoViableMatchesNotifiesNoResults(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"/docs/enero.pdf": {hsbcStatement},
	}}
	// income requirement far above the applicant's profile
	lenders := &fakeLenders{criteria: []models.LenderCriteria{{
		ID:               "fin-001",
		Nombre:           "Financiera Uno",
		TipoPersona:      "fisica",
		MontoMinimo:      100000,
		MontoMaximo:      5000000,
		DepositosMinimos: 900000,
		ScoreBuroMinimo:  800,
	}}}
	saver := &fakeSaver{}
	fx := newRunnerFixture(t, extractor, lenders, saver)

	require.NoError(t, fx.runner.Run(context.Background(), testBatch()))

	// report persists even without viable matches
	require.Len(t, saver.saved, 1)
	require.Len(t, fx.notifier.inputs, 1)
	assert.Equal(t, models.EventAnalysisNoResults, fx.notifier.inputs[0].Event)
}

func TestRunLenderQueryFailure(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"/docs/enero.pdf": {hsbcStatement},
	}}
	saver := &fakeSaver{}
	fx := newRunnerFixture(t, extractor, &fakeLenders{err: errors.New("db down")}, saver)

	err := fx.runner.Run(context.Background(), testBatch())
	require.Error(t, err)

	assert.Empty(t, saver.saved)
	assert.Equal(t, []string{models.EventSystemError}, fx.notifier.events())
}

func TestRunPersistenceFailureStillNotifies(t *testing.T) {
	extractor := &fakeExtractor{pages: map[string][]string{
		"/docs/enero.pdf": {hsbcStatement},
	}}
	lenders := &fakeLenders{criteria: []models.LenderCriteria{}}
	saver := &fakeSaver{err: errors.New("index unavailable")}
	fx := newRunnerFixture(t, extractor, lenders, saver)

	err := fx.runner.Run(context.Background(), testBatch())
	require.Error(t, err)

	var stdErr *pipelineerrors.StandardError
	require.ErrorAs(t, err, &stdErr)
	assert.Equal(t, pipelineerrors.ErrCodePersistenceFailed, stdErr.Code)
	assert.Equal(t, []string{models.EventSystemError}, fx.notifier.events())
}

func TestSplitDocuments(t *testing.T) {
	docs := []models.SourceDocument{
		{FileName: "a.pdf", Kind: models.KindStatement},
		{FileName: "buro.pdf", Kind: models.KindBureauReport},
		{FileName: "b.pdf", Kind: models.KindStatement},
		{FileName: "buro2.pdf", Kind: models.KindBureauReport},
	}
	statements, bureau := splitDocuments(docs)
	assert.Len(t, statements, 2)
	require.NotNil(t, bureau)
	assert.Equal(t, "buro.pdf", bureau.FileName)
}
