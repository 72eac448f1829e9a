// internal/workers/bureau/parse-bureau-report/handler.go
package parsebureaureport

import (
	"context"
	goerrors "errors"

	"credit-pipeline/internal/common/errors"
	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
)

const TaskType = "parse-bureau-report"

// TextExtractor turns a document into page text. Satisfied by
// extractor.Extractor.
type TextExtractor interface {
	Extract(ctx context.Context, filePath string) ([]string, error)
}

type Handler struct {
	config    *Config
	extractor TextExtractor
	logger    logger.Logger
}

func NewHandler(config *Config, ext TextExtractor, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		extractor: ext,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

// Execute structures a credit bureau PDF into its report sections. A
// missing section logs a warning and stays empty; the other sections are
// still extracted.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	doc := input.Document

	pages, err := h.extractor.Extract(ctx, doc.Path)
	if err != nil {
		return nil, errors.NewExtractionFailedError(doc.Path, err)
	}

	text := normalizeReport(pages)
	report := models.CreditBureauReport{}

	report.Nombre, report.FechaNacimiento = parseIdentity(text)

	if addresses, err := parseAddresses(text); err == nil {
		report.Domicilios = addresses
	} else {
		h.warnSection(doc.FileName, "domicilios", err)
	}

	if summary, err := parseSummary(text); err == nil {
		report.ResumenCuentas = summary
	} else {
		h.warnSection(doc.FileName, "resumen", err)
	}

	if details, err := parseDetails(text); err == nil {
		report.DetalleCreditos = details
	} else {
		h.warnSection(doc.FileName, "detalle", err)
	}

	if inquiries, err := parseInquiries(text); err == nil {
		report.Consultas = inquiries
	} else {
		h.warnSection(doc.FileName, "consultas", err)
	}

	h.logger.Info("bureau report parsed", map[string]interface{}{
		"file":      doc.FileName,
		"cuentas":   len(report.ResumenCuentas),
		"detalles":  len(report.DetalleCreditos),
		"consultas": len(report.Consultas),
	})
	return &Output{Report: report}, nil
}

func (h *Handler) warnSection(file, section string, err error) {
	if goerrors.Is(err, errors.ErrSectionNotFound) {
		h.logger.Warn("report section not found", map[string]interface{}{
			"file":    file,
			"section": section,
		})
		return
	}
	h.logger.Warn("report section parse failed", map[string]interface{}{
		"file":    file,
		"section": section,
		"error":   err.Error(),
	})
}
