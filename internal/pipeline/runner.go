// Package pipeline runs the end-to-end analysis for one applicant batch:
// statement parsing, profile aggregation, bureau assessment, scoring,
// lender matching, persistence and notifications.
package pipeline

import (
	"context"
	"errors"
	"fmt"
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
)

// Batch is one queued analysis request.
type Batch struct {
	RunID     string                  `json:"run_id"`
	Applicant models.ApplicantProfile `json:"applicant"`
	Documents []models.SourceDocument `json:"documents"`
}

// LenderSource supplies the lender acceptance catalog.
type LenderSource interface {
	ListCriteria(ctx context.Context) ([]models.LenderCriteria, error)
}

// ReportSaver persists the final analysis report.
type ReportSaver interface {
	Save(ctx context.Context, report *models.AnalysisReport) error
}

// Notifier delivers outbound notifications.
type Notifier interface {
	Execute(ctx context.Context, input *sendnotification.Input) (*sendnotification.Output, error)
}

// Runner executes batches stage by stage. Per-document failures stay
// inside the statement results; a batch only fails outright when nothing
// usable remains or persistence breaks.
type Runner struct {
	statements   *parsestatement.Handler
	aggregator   *aggregateprofile.Handler
	bureauParser *parsebureaureport.Handler
	riskAssessor *assesscreditrisk.Handler
	scorer       *calculatecreditscore.Handler
	matcher      *matchlenders.Handler
	lenders      LenderSource
	saver        ReportSaver
	notifier     Notifier
	obs          *observability.Observability
	stageTimeout time.Duration
	logger       logger.Logger
}

type RunnerParams struct {
	Statements    *parsestatement.Handler
	Aggregator    *aggregateprofile.Handler
	BureauParser  *parsebureaureport.Handler
	RiskAssessor  *assesscreditrisk.Handler
	Scorer        *calculatecreditscore.Handler
	Matcher       *matchlenders.Handler
	Lenders       LenderSource
	Saver         ReportSaver
	Notifier      Notifier
	Observability *observability.Observability
	StageTimeout  time.Duration
	Logger        logger.Logger
}

func NewRunner(p RunnerParams) *Runner {
	return &Runner{
		statements:   p.Statements,
		aggregator:   p.Aggregator,
		bureauParser: p.BureauParser,
		riskAssessor: p.RiskAssessor,
		scorer:       p.Scorer,
		matcher:      p.Matcher,
		lenders:      p.Lenders,
		saver:        p.Saver,
		notifier:     p.Notifier,
		obs:          p.Observability,
		stageTimeout: p.StageTimeout,
		logger:       p.Logger.WithFields(map[string]interface{}{"component": "pipeline-runner"}),
	}
}

// Run processes one batch to completion. The returned error reports the
// outcome to the dispatcher; the applicant always receives a terminal
// notification regardless.
func (r *Runner) Run(ctx context.Context, batch *Batch) error {
	log := r.logger.WithFields(map[string]interface{}{
		"run":       batch.RunID,
		"applicant": batch.Applicant.ApplicantID,
	})
	log.Info("batch started", map[string]interface{}{
		"documents": len(batch.Documents),
	})

	statements, bureauDoc := splitDocuments(batch.Documents)

	results := r.parseStatements(ctx, statements)

	profile, err := r.aggregate(ctx, results)
	if err != nil {
		if errors.Is(err, pipelineerrors.ErrNoUsableData) {
			log.Warn("no usable statement data", map[string]interface{}{
				"documents": len(statements),
			})
			r.notifyApplicant(ctx, batch, models.EventAnalysisError, map[string]interface{}{
				"reason": "ningún estado de cuenta pudo procesarse",
			})
			r.obs.RecordBatchProcessed(ctx, "no_data")
			return err
		}
		r.notifyApplicant(ctx, batch, models.EventSystemError, nil)
		r.obs.RecordBatchProcessed(ctx, "error")
		return err
	}

	bureau, risk := r.assessBureau(ctx, bureauDoc, log)

	score, err := r.score(ctx, profile)
	if err != nil {
		r.notifyApplicant(ctx, batch, models.EventSystemError, nil)
		r.obs.RecordBatchProcessed(ctx, "error")
		return err
	}

	matches, perfect, err := r.match(ctx, batch.Applicant, profile)
	if err != nil {
		r.notifyApplicant(ctx, batch, models.EventSystemError, nil)
		r.obs.RecordBatchProcessed(ctx, "error")
		return err
	}
	r.obs.RecordLenderMatches(ctx, len(matches))

	r.notifyPerfectMatches(ctx, batch, perfect)

	report := &models.AnalysisReport{
		ApplicantID:             batch.Applicant.ApplicantID,
		MonthlyFinancialProfile: profile,
		FinancialScore:          score,
		Resultados:              matches,
		Estados:                 results,
		Buro:                    bureau,
		Riesgo:                  risk,
		UpdatedAt:               time.Now().UTC(),
	}
	if err := r.persist(ctx, report); err != nil {
		// The applicant still learns the batch finished badly.
		r.notifyApplicant(ctx, batch, models.EventSystemError, nil)
		r.obs.RecordBatchProcessed(ctx, "error")
		return err
	}

	viable := countViable(matches)
	if viable > 0 {
		r.notifyApplicant(ctx, batch, models.EventAnalysisCompleted, map[string]interface{}{
			"matches_count": viable,
			"score":         score.Score,
			"nivel":         score.Nivel,
		})
	} else {
		r.notifyApplicant(ctx, batch, models.EventAnalysisNoResults, map[string]interface{}{
			"score": score.Score,
			"nivel": score.Nivel,
		})
	}

	r.obs.RecordBatchProcessed(ctx, "completed")
	log.Info("batch finished", map[string]interface{}{
		"matches": viable,
		"score":   score.Score,
	})
	return nil
}

// splitDocuments separates statements from the bureau report. Only the
// first bureau document is used.
func splitDocuments(docs []models.SourceDocument) ([]models.SourceDocument, *models.SourceDocument) {
	var statements []models.SourceDocument
	var bureau *models.SourceDocument
	for i, doc := range docs {
		if doc.Kind == models.KindBureauReport {
			if bureau == nil {
				bureau = &docs[i]
			}
			continue
		}
		statements = append(statements, doc)
	}
	return statements, bureau
}

func (r *Runner) parseStatements(ctx context.Context, docs []models.SourceDocument) []models.StatementResult {
	start := time.Now()
	results := make([]models.StatementResult, 0, len(docs))
	for _, doc := range docs {
		sctx, cancel := r.stageContext(ctx)
		out, err := r.statements.Execute(sctx, &parsestatement.Input{Document: doc})
		cancel()
		if err != nil {
			// The handler keeps per-document failures in the result;
			// an error here means the stage itself broke.
			results = append(results, models.StatementResult{
				FileName: doc.FileName,
				Success:  false,
				Error:    err.Error(),
			})
			r.obs.RecordDocumentProcessed(ctx, doc.Institution, "error")
			continue
		}
		status := "parsed"
		if !out.Result.Success {
			status = "failed"
		}
		r.obs.RecordDocumentProcessed(ctx, out.Result.Institution, status)
		results = append(results, out.Result)
	}
	r.obs.RecordStageDuration(ctx, "parse_statements", time.Since(start))
	return results
}

func (r *Runner) aggregate(ctx context.Context, results []models.StatementResult) (models.MonthlyFinancialProfile, error) {
	start := time.Now()
	defer func() { r.obs.RecordStageDuration(ctx, "aggregate_profile", time.Since(start)) }()

	sctx, cancel := r.stageContext(ctx)
	defer cancel()
	out, err := r.aggregator.Execute(sctx, &aggregateprofile.Input{Results: results})
	if err != nil {
		return models.MonthlyFinancialProfile{}, err
	}
	return out.Profile, nil
}

// assessBureau parses the optional bureau report and derives the risk
// assessment. Bureau failures never sink the batch.
func (r *Runner) assessBureau(ctx context.Context, doc *models.SourceDocument, log logger.Logger) (*models.CreditBureauReport, *models.RiskAssessment) {
	if doc == nil {
		return nil, nil
	}
	start := time.Now()
	defer func() { r.obs.RecordStageDuration(ctx, "assess_bureau", time.Since(start)) }()

	sctx, cancel := r.stageContext(ctx)
	defer cancel()

	parsed, err := r.bureauParser.Execute(sctx, &parsebureaureport.Input{Document: *doc})
	if err != nil {
		log.Warn("bureau report unavailable, continuing without it", map[string]interface{}{
			"file":  doc.FileName,
			"error": err.Error(),
		})
		r.obs.RecordDocumentProcessed(ctx, "buro", "failed")
		return nil, nil
	}
	r.obs.RecordDocumentProcessed(ctx, "buro", "parsed")

	assessed, err := r.riskAssessor.Execute(sctx, &assesscreditrisk.Input{Report: parsed.Report})
	if err != nil {
		log.Warn("risk assessment failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &parsed.Report, nil
	}
	return &parsed.Report, &assessed.Assessment
}

func (r *Runner) score(ctx context.Context, profile models.MonthlyFinancialProfile) (models.FinancialScore, error) {
	start := time.Now()
	defer func() { r.obs.RecordStageDuration(ctx, "calculate_score", time.Since(start)) }()

	sctx, cancel := r.stageContext(ctx)
	defer cancel()
	out, err := r.scorer.Execute(sctx, &calculatecreditscore.Input{Profile: profile})
	if err != nil {
		return models.FinancialScore{}, err
	}
	return out.Score, nil
}

func (r *Runner) match(ctx context.Context, applicant models.ApplicantProfile, profile models.MonthlyFinancialProfile) ([]models.MatchResult, []models.LenderCriteria, error) {
	start := time.Now()
	defer func() { r.obs.RecordStageDuration(ctx, "match_lenders", time.Since(start)) }()

	sctx, cancel := r.stageContext(ctx)
	defer cancel()

	criteria, err := r.lenders.ListCriteria(sctx)
	if err != nil {
		return nil, nil, pipelineerrors.NewLenderQueryFailedError(err)
	}

	out, err := r.matcher.Execute(sctx, &matchlenders.Input{
		Applicant: applicant,
		Profile:   profile,
		Lenders:   criteria,
	})
	if err != nil {
		return nil, nil, err
	}
	return out.Results, out.PerfectMatches, nil
}

func (r *Runner) persist(ctx context.Context, report *models.AnalysisReport) error {
	start := time.Now()
	defer func() { r.obs.RecordStageDuration(ctx, "persist_report", time.Since(start)) }()

	sctx, cancel := r.stageContext(ctx)
	defer cancel()
	if err := r.saver.Save(sctx, report); err != nil {
		return pipelineerrors.NewPersistenceFailedError(err)
	}
	return nil
}

// notifyApplicant pushes a terminal event. Delivery failures are already
// absorbed by the notification handler.
func (r *Runner) notifyApplicant(ctx context.Context, batch *Batch, event string, payload map[string]interface{}) {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["run_id"] = batch.RunID
	_, err := r.notifier.Execute(ctx, &sendnotification.Input{
		Channel: sendnotification.ChannelPush,
		Target:  batch.Applicant.ApplicantID,
		Event:   event,
		Payload: payload,
	})
	if err != nil {
		r.logger.Error("terminal notification failed", map[string]interface{}{
			"run":   batch.RunID,
			"event": event,
			"error": err.Error(),
		})
	}
}

// notifyPerfectMatches emails each lender whose criteria the applicant
// fully met. Fire and forget.
func (r *Runner) notifyPerfectMatches(ctx context.Context, batch *Batch, lenders []models.LenderCriteria) {
	for _, lender := range lenders {
		if lender.Email == "" {
			continue
		}
		_, err := r.notifier.Execute(ctx, &sendnotification.Input{
			Channel: sendnotification.ChannelEmail,
			Target:  lender.Email,
			Event:   models.EventPerfectMatch,
			Subject: fmt.Sprintf("Prospecto compatible: %s", batch.Applicant.ApplicantID),
			Payload: map[string]interface{}{
				"applicant_id":     batch.Applicant.ApplicantID,
				"tipo_persona":     batch.Applicant.TipoPersona,
				"monto_solicitado": batch.Applicant.MontoSolicitado,
				"financiera":       lender.Nombre,
			},
		})
		if err != nil {
			r.logger.Error("lender notification failed", map[string]interface{}{
				"run":    batch.RunID,
				"lender": lender.ID,
				"error":  err.Error(),
			})
		}
	}
}

func (r *Runner) stageContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.stageTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.stageTimeout)
}

func countViable(matches []models.MatchResult) int {
	n := 0
	for _, m := range matches {
		if m.Nivel != models.TierBajo {
			n++
		}
	}
	return n
}
