// internal/common/extractor/extractor.go
package extractor

import (
	"context"
	"strings"
	"unicode"

	"credit-pipeline/internal/common/config"
	pipelineerrors "credit-pipeline/internal/common/errors"
	"credit-pipeline/internal/common/logger"
)

// Extractor turns PDF documents into normalized page text. It tries the
// native text layer first and falls back to OCR when the text layer is
// missing or unreadable.
type Extractor struct {
	cfg config.ExtractionConfig
	log logger.Logger
}

func New(cfg config.ExtractionConfig, log logger.Logger) *Extractor {
	return &Extractor{
		cfg: cfg,
		log: log.WithFields(map[string]interface{}{"component": "extractor"}),
	}
}

// Extract returns the text of every page in the PDF at filePath.
// Pages come back in document order, whitespace normalized.
func (e *Extractor) Extract(ctx context.Context, filePath string) ([]string, error) {
	pages, nativeErr := extractNative(filePath)
	if nativeErr == nil && e.usable(pages) {
		e.log.Debug("native text layer extracted", map[string]interface{}{
			"file":  filePath,
			"pages": len(pages),
		})
		return normalizePages(pages), nil
	}

	if nativeErr != nil {
		e.log.Warn("native extraction failed, trying OCR", map[string]interface{}{
			"file":  filePath,
			"error": nativeErr.Error(),
		})
	} else {
		e.log.Warn("native text layer unusable, trying OCR", map[string]interface{}{
			"file": filePath,
		})
	}

	ocrPages, ocrErr := extractOCR(ctx, filePath, e.cfg.OCRLanguage, e.cfg.OCRDPIRes)
	if ocrErr == nil && e.usable(ocrPages) {
		return normalizePages(ocrPages), nil
	}

	if ocrErr != nil {
		return nil, pipelineerrors.NewExtractionFailedError(filePath, ocrErr)
	}
	return nil, pipelineerrors.NewExtractionFailedError(filePath, pipelineerrors.ErrExtractionFailed)
}

// usable checks that the pages carry enough readable text to be worth
// parsing. Identity-encoded fonts decode into garbage that passes a
// length check, so the quality ratio gate matters.
func (e *Extractor) usable(pages []string) bool {
	minLen := e.cfg.MinTextLen
	if minLen <= 0 {
		minLen = 120
	}
	if totalTextLen(pages) < minLen {
		return false
	}
	return textQuality(pages) > 0.6
}

func totalTextLen(pages []string) int {
	n := 0
	for _, p := range pages {
		n += len(strings.TrimSpace(p))
	}
	return n
}

// textQuality returns the ratio of readable characters to total characters.
// Accented letters are counted as readable since the statements are Spanish.
func textQuality(pages []string) float64 {
	total := 0
	readable := 0
	for _, page := range pages {
		for _, r := range page {
			total++
			switch {
			case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
				readable++
			case unicode.IsSpace(r):
				readable++
			case strings.ContainsRune(".,-/:;()'\"$%&@#!?+=*", r):
				readable++
			case strings.ContainsRune("áéíóúÁÉÍÓÚñÑüÜ", r):
				readable++
			}
		}
	}
	if total == 0 {
		return 0
	}
	return float64(readable) / float64(total)
}

// normalizePages collapses runs of whitespace inside each line while
// keeping line boundaries, which the parsers rely on.
func normalizePages(pages []string) []string {
	out := make([]string, 0, len(pages))
	for _, page := range pages {
		lines := strings.Split(page, "\n")
		cleaned := make([]string, 0, len(lines))
		for _, line := range lines {
			line = strings.Join(strings.Fields(line), " ")
			if line != "" {
				cleaned = append(cleaned, line)
			}
		}
		out = append(out, strings.Join(cleaned, "\n"))
	}
	return out
}
