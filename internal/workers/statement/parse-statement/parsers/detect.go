// internal/workers/statement/parse-statement/parsers/detect.go
package parsers

import (
	"regexp"
	"strings"
)

// Institution identifiers. These are the registry keys and the values
// recorded on StatementResult.Institution.
const (
	InstitutionBanorte     = "BANORTE"
	InstitutionHSBC        = "HSBC"
	InstitutionAzteca      = "AZTECA"
	InstitutionBanamex     = "BANAMEX"
	InstitutionBanBajio    = "BANBAJIO"
	InstitutionBanCoppel   = "BANCOPPEL"
	InstitutionScotiabank  = "SCOTIABANK"
	InstitutionAfirme      = "AFIRME"
	InstitutionInbursa     = "INBURSA"
	InstitutionMercadoPago = "MERCADOPAGO"
	InstitutionMifel       = "MIFEL"
	InstitutionMonex       = "MONEX"
	InstitutionBXPlus      = "BX_PLUS"
	InstitutionHeyBanco    = "HEYBANCO"
	InstitutionKapital     = "KAPITAL_BANK"
	InstitutionUnknown     = "DESCONOCIDO"
)

// bankProfile describes how an institution shows up in filenames, CLABE
// prefixes and statement headers.
type bankProfile struct {
	institution  string
	clabePrefix  string
	fileKeywords []string
	headerWords  []string
}

var bankCatalog = []bankProfile{
	{InstitutionBanorte, "072", []string{"BANORTE"}, []string{"BANORTE", "BANCO MERCANTIL DEL NORTE"}},
	{InstitutionHSBC, "021", []string{"HSBC"}, []string{"HSBC MEXICO", "HSBC"}},
	{InstitutionAzteca, "127", []string{"AZTECA"}, []string{"BANCO AZTECA"}},
	{InstitutionBanamex, "002", []string{"BANAMEX", "CITIBANAMEX"}, []string{"BANAMEX", "BANCO NACIONAL DE MEXICO"}},
	{InstitutionBanBajio, "030", []string{"BAJIO", "BANBAJIO"}, []string{"BANCO DEL BAJIO", "BANBAJIO"}},
	{InstitutionBanCoppel, "137", []string{"COPPEL", "BANCOPPEL"}, []string{"BANCOPPEL"}},
	{InstitutionScotiabank, "044", []string{"SCOTIA"}, []string{"SCOTIABANK INVERLAT", "SCOTIABANK"}},
	{InstitutionAfirme, "062", []string{"AFIRME"}, []string{"BANCA AFIRME", "AFIRME"}},
	{InstitutionInbursa, "036", []string{"INBURSA"}, []string{"BANCO INBURSA", "INBURSA"}},
	{InstitutionMercadoPago, "722", []string{"MERCADO", "MERCADOPAGO"}, []string{"MERCADO PAGO", "MERCADOPAGO"}},
	{InstitutionMifel, "042", []string{"MIFEL"}, []string{"BANCA MIFEL", "MIFEL"}},
	{InstitutionMonex, "052", []string{"MONEX"}, []string{"BANCO MONEX", "MONEX"}},
	{InstitutionBXPlus, "113", []string{"BX", "VEPORMAS"}, []string{"VE POR MAS", "BX+"}},
	{InstitutionHeyBanco, "058", []string{"HEY"}, []string{"HEY BANCO", "HEY, BANCO"}},
	{InstitutionKapital, "128", []string{"KAPITAL"}, []string{"KAPITAL BANK", "KAPITAL"}},
}

var clabeRe = regexp.MustCompile(`\b(\d{18})\b`)

// Detect resolves the issuing institution of a statement. Precedence:
// filename keyword, then CLABE prefix, then the earliest header keyword
// in the first pages. Returns InstitutionUnknown when nothing matches.
func Detect(fileName string, pages []string) string {
	upperName := strings.ToUpper(fileName)
	for _, p := range bankCatalog {
		if containsAny(upperName, p.fileKeywords) {
			return p.institution
		}
	}

	var text string
	if len(pages) > 2 {
		text = strings.ToUpper(strings.Join(pages[:2], "\n"))
	} else {
		text = strings.ToUpper(strings.Join(pages, "\n"))
	}

	if m := clabeRe.FindString(text); m != "" {
		prefix := m[:3]
		for _, p := range bankCatalog {
			if p.clabePrefix == prefix {
				return p.institution
			}
		}
	}

	best := InstitutionUnknown
	bestPos := -1
	for _, p := range bankCatalog {
		if pos := firstMatch(text, p.headerWords); pos >= 0 && (bestPos < 0 || pos < bestPos) {
			best = p.institution
			bestPos = pos
		}
	}
	return best
}
