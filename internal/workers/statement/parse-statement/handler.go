// internal/workers/statement/parse-statement/handler.go
package parsestatement

import (
	"context"

	"credit-pipeline/internal/common/errors"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
	"credit-pipeline/internal/workers/statement/parse-statement/parsers"
)

const TaskType = "parse-statement"

// TextExtractor turns a document into page text. Satisfied by
// extractor.Extractor.
type TextExtractor interface {
	Extract(ctx context.Context, filePath string) ([]string, error)
}

type Handler struct {
	config    *Config
	extractor TextExtractor
	registry  *parsers.Registry
	logger    logger.Logger
}

func NewHandler(config *Config, ext TextExtractor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		extractor: ext,
		registry:  parsers.NewRegistry(),
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute parses one bank statement into a StatementResult. Failures are
// reported inside the result, never as a Go error: a broken document must
// not abort the rest of the batch.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	doc := input.Document
	result := models.StatementResult{
		FileName:    doc.FileName,
		Institution: doc.Institution,
	}

	pages, err := h.extractor.Extract(ctx, doc.Path)
	if err != nil {
		h.logger.Warn("statement extraction failed", map[string]interface{}{
			"file":  doc.FileName,
			"error": err.Error(),
		})
		result.Error = errors.NewExtractionFailedError(doc.Path, err).Error()
		return &Output{Result: result}, nil
	}
	if h.config.MaxPages > 0 && len(pages) > h.config.MaxPages {
		pages = pages[:h.config.MaxPages]
	}

	institution := doc.Institution
	if institution == "" {
		institution = parsers.Detect(doc.FileName, pages)
	}
	result.Institution = institution

	parser, ok := h.registry.Get(institution)
	if !ok {
		h.logger.Warn("no parser for institution", map[string]interface{}{
			"file":        doc.FileName,
			"institution": institution,
		})
		result.Error = errors.NewUnsupportedBankError(institution).Error()
		return &Output{Result: result}, nil
	}

	parsed, err := parser.Parse(pages)
	if err != nil {
		h.logger.Warn("statement parse failed", map[string]interface{}{
			"file":        doc.FileName,
			"institution": institution,
			"error":       err.Error(),
		})
		result.Error = errors.NewParserFailedError(institution, err).Error()
		return &Output{Result: result}, nil
	}

	result.Success = true
	result.Income = parsed.Income
	result.GrossIncome = parsed.GrossIncome
	result.POSIncome = parsed.POSIncome
	result.Discards = parsed.Discards
	result.Balance = parsed.Balance
	result.Period = parsed.Period
	result.Overdrafts = parsed.Overdrafts
	result.Transactions = parsed.Transactions

	if result.Balance == nil {
		h.logger.Warn("balance pattern not found", map[string]interface{}{
			"file":        doc.FileName,
			"institution": institution,
		})
	}
	if result.Period == nil {
		h.logger.Warn("period pattern not found", map[string]interface{}{
			"file":        doc.FileName,
			"institution": institution,
		})
	}

	h.logger.Info("statement parsed", map[string]interface{}{
		"file":         doc.FileName,
		"institution":  institution,
		"income":       parsed.Income,
		"transactions": len(parsed.Transactions),
		"overdrafts":   parsed.Overdrafts,
	})
	return &Output{Result: result}, nil
}
