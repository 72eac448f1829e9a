// internal/workers/bureau/parse-bureau-report/sections.go
package parsebureaureport

import (
	"regexp"
	"strings"

	"credit-pipeline/internal/common/errors"
	"credit-pipeline/internal/models"
)

// Section headers as printed. Reports come both with and without accents
// depending on the extraction path, so every marker lists both spellings.
var (
	markerAddresses = []string{"DOMICILIOS REPORTADOS", "DOMICILIO REPORTADO"}
	markerSummary   = []string{"RESUMEN DE CRÉDITOS", "RESUMEN DE CREDITOS"}
	markerDetails   = []string{"DETALLE DE CRÉDITOS", "DETALLE DE CREDITOS"}
	markerInquiries = []string{"DETALLE DE CONSULTAS"}
	markerEnd       = []string{"DOCUMENTO SIN VALOR"}
)

// normalizeReport collapses whitespace runs so windowed regexes see one
// continuous string.
func normalizeReport(pages []string) string {
	joined := strings.Join(pages, " ")
	return strings.Join(strings.Fields(joined), " ")
}

func findMarker(text string, variants []string) int {
	for _, v := range variants {
		if idx := strings.Index(text, v); idx >= 0 {
			return idx
		}
	}
	return -1
}

// window cuts the report text between a start marker and the first end
// marker found after it. ErrSectionNotFound when the start is absent;
// missing end markers extend the window to the end of the report.
func window(text string, start []string, ends ...[]string) (string, error) {
	startIdx, startLen := -1, 0
	for _, v := range start {
		if idx := strings.Index(text, v); idx >= 0 && (startIdx < 0 || idx < startIdx) {
			startIdx, startLen = idx, len(v)
		}
	}
	if startIdx < 0 {
		return "", errors.ErrSectionNotFound
	}
	body := text[startIdx+startLen:]

	endIdx := len(body)
	for _, end := range ends {
		if idx := findMarker(body, end); idx >= 0 && idx < endIdx {
			endIdx = idx
		}
	}
	return strings.TrimSpace(body[:endIdx]), nil
}

var (
	nameRe = regexp.MustCompile(`Nombre\s*[:.]?\s*([A-ZÁÉÍÓÚÑÜ]{2,}(?:\s+[A-ZÁÉÍÓÚÑÜ]{2,})*)`)
	// postal-code fragments terminate each reported address
	addressRe = regexp.MustCompile(`(.{10,220}?C\.?P\.?\s*\d{5})`)
	amountRe  = regexp.MustCompile(`\$?[\d,]+(?:\.\d{2})?`)
	// MOP sequences are runs of payment codes, one char per month. The
	// six-char floor keeps years and short figures from anchoring entries.
	mopRunRe = regexp.MustCompile(`\b[0-9U*]{6,}\b`)
	// creditor names are runs of uppercase words
	creditorRe = regexp.MustCompile(`[A-ZÁÉÍÓÚÑÜ]{2,}(?:\s+[A-ZÁÉÍÓÚÑÜ\.]{2,})*`)
	inquiryRe  = regexp.MustCompile(`([A-ZÁÉÍÓÚÑÜ][A-ZÁÉÍÓÚÑÜ\s\.]{2,50}?)\s+(\d{1,2}-[A-Z]{3}-\d{4})`)
)

// productKeywords split each summary row into creditor and product. Longer
// phrases come first so "TARJETA DE CREDITO" wins over "CREDITO".
var productKeywords = []string{
	"TARJETA DE CREDITO",
	"PRESTAMO PERSONAL",
	"CREDITO HIPOTECARIO",
	"CREDITO AUTOMOTRIZ",
	"LINEA DE CREDITO",
	"ARRENDAMIENTO",
	"TARJETA",
	"PRESTAMO",
	"CREDITO",
}

// detailLabels truncate a creditor run that swallowed a column label.
var detailLabels = []string{"LIMITE", "CREDITO", "SALDO", "FECHA", "APERTURA", "MONTO"}

// parseIdentity reads the applicant name and birth date from the report
// head, everything before the address section.
func parseIdentity(text string) (name, birthDate string) {
	head := text
	if idx := findMarker(text, markerAddresses); idx >= 0 {
		head = text[:idx]
	}
	if m := nameRe.FindStringSubmatch(head); m != nil {
		name = strings.TrimSpace(m[1])
	}
	if m := fullDateRe.FindString(head); m != "" {
		if _, ok := parseFullDate(m); ok {
			birthDate = m
		}
	}
	return name, birthDate
}

// parseAddresses splits the address section into postal-code-terminated
// fragments. Reports without postal codes fall back to fixed-width chunks
// so the raw content is still preserved.
func parseAddresses(text string) ([]string, error) {
	section, err := window(text, markerAddresses, markerSummary)
	if err != nil {
		return nil, err
	}

	matches := addressRe.FindAllString(section, -1)
	if len(matches) > 0 {
		out := make([]string, 0, len(matches))
		for _, m := range matches {
			out = append(out, strings.TrimSpace(m))
		}
		return out, nil
	}

	const chunkSize = 200
	var chunks []string
	for start := 0; start < len(section); start += chunkSize {
		end := start + chunkSize
		if end > len(section) {
			end = len(section)
		}
		if chunk := strings.TrimSpace(section[start:end]); chunk != "" {
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}

// parseSummary reads the per-account summary rows between the summary and
// detail headers. Each MON-YY report token anchors one entry.
func parseSummary(text string) ([]models.AccountSummary, error) {
	section, err := window(text, markerSummary, markerDetails)
	if err != nil {
		return nil, err
	}

	anchors := monthYearRe.FindAllStringIndex(section, -1)
	var entries []models.AccountSummary
	prevEnd := 0
	for _, loc := range anchors {
		chunk := section[prevEnd:loc[0]]
		tail := section[loc[1]:]
		prevEnd = loc[1]

		entry := models.AccountSummary{
			UltimoReporte: section[loc[0]:loc[1]],
		}
		if ts, ok := parseMonthYear(entry.UltimoReporte); ok {
			entry.UltimoReporteFecha = &ts
		}

		// the product phrase splits the row into creditor and product
		prodIdx, prodKw := -1, ""
		for _, kw := range productKeywords {
			if idx := strings.Index(chunk, kw); idx >= 0 && (prodIdx < 0 || idx < prodIdx) {
				prodIdx, prodKw = idx, kw
			}
		}
		lead := chunk
		if prodIdx >= 0 {
			entry.Producto = prodKw
			lead = chunk[:prodIdx]
		}
		if runs := creditorRe.FindAllString(lead, -1); len(runs) > 0 {
			entry.Otorgante = strings.TrimSpace(runs[len(runs)-1])
		}
		if entry.Otorgante == "" {
			continue
		}

		switch {
		case strings.Contains(chunk, "CERRADO"):
			entry.Estatus = "CERRADO"
		case strings.Contains(chunk, "VIGENTE"):
			entry.Estatus = "VIGENTE"
		}

		if m := amountRe.FindString(tail); m != "" {
			entry.Saldo = m
		}

		// UR markers and missing information near the entry flag bad
		// payment behavior; a closed account overrides the flag.
		if entry.Estatus == "CERRADO" {
			entry.Comportamiento = "cerrado"
		} else if strings.Contains(chunk, "UR-") || strings.Contains(chunk, "SIN INFORMACION") || strings.Contains(chunk, "SIN INFORMACIÓN") {
			entry.Comportamiento = "mal comportamiento"
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// parseDetails reads the per-account detail rows. Each MOP code run
// anchors one entry; placeholder codes stay in the raw sequence and are
// filtered later during risk counting.
func parseDetails(text string) ([]models.CreditDetailEntry, error) {
	section, err := window(text, markerDetails, markerInquiries, markerEnd)
	if err != nil {
		return nil, err
	}

	anchors := mopRunRe.FindAllStringIndex(section, -1)
	var entries []models.CreditDetailEntry
	prevEnd := 0
	for _, loc := range anchors {
		chunk := section[prevEnd:loc[0]]
		prevEnd = loc[1]

		entry := models.CreditDetailEntry{
			MOPSequence: section[loc[0]:loc[1]],
		}
		if m := creditorRe.FindString(chunk); m != "" {
			entry.Otorgante = trimDetailLabels(m)
		}
		if entry.Otorgante == "" {
			continue
		}
		if m := amountRe.FindString(chunk); m != "" && strings.ContainsAny(m, "0123456789") {
			entry.LimiteCred = m
		}
		if m := fullDateRe.FindString(chunk); m != "" {
			entry.Apertura = m
			if ts, ok := parseFullDate(m); ok {
				entry.AperturaFecha = &ts
			}
		} else if m := monthYearRe.FindString(chunk); m != "" {
			entry.Apertura = m
			if ts, ok := parseMonthYear(m); ok {
				entry.AperturaFecha = &ts
			}
		}

		entries = append(entries, entry)
	}
	return entries, nil
}

// trimDetailLabels cuts a creditor run at the first column label it
// swallowed, then trims whitespace.
func trimDetailLabels(run string) string {
	for _, label := range detailLabels {
		if idx := strings.Index(run, label); idx >= 0 {
			run = run[:idx]
		}
	}
	return strings.TrimSpace(run)
}

// parseInquiries reads the inquiry section: who pulled the report and
// when.
func parseInquiries(text string) ([]models.BureauInquiry, error) {
	section, err := window(text, markerInquiries, markerEnd)
	if err != nil {
		return nil, err
	}

	var entries []models.BureauInquiry
	for _, m := range inquiryRe.FindAllStringSubmatch(section, -1) {
		institution := strings.TrimSpace(m[1])
		if len(institution) < 3 {
			continue
		}
		entry := models.BureauInquiry{
			Institucion: institution,
			Fecha:       m[2],
		}
		if ts, ok := parseFullDate(entry.Fecha); ok {
			entry.FechaConsulta = &ts
		}
		entries = append(entries, entry)
	}
	return entries, nil
}
