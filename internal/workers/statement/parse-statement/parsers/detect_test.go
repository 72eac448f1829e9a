// internal/workers/statement/parse-statement/parsers/detect_test.go
package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		pages    []string
		expected string
	}{
		{
			name:     "filename keyword wins",
			fileName: "estado_banorte_enero.pdf",
			pages:    []string{"HSBC MEXICO S.A."},
			expected: InstitutionBanorte,
		},
		{
			name:     "clabe prefix",
			fileName: "estado.pdf",
			pages:    []string{"CLABE 072580001234567897"},
			expected: InstitutionBanorte,
		},
		{
			name:     "earliest header keyword",
			fileName: "estado.pdf",
			pages:    []string{"PAGINA 1 BANCO AZTECA S.A. INSTITUCION DE BANCA MULTIPLE"},
			expected: InstitutionAzteca,
		},
		{
			name:     "header scan limited to first pages",
			fileName: "estado.pdf",
			pages:    []string{"SIN MARCA", "TAMPOCO", "HSBC MEXICO"},
			expected: InstitutionUnknown,
		},
		{
			name:     "hey banco filename",
			fileName: "hey_marzo.pdf",
			pages:    []string{"TEXTO"},
			expected: InstitutionHeyBanco,
		},
		{
			name:     "bx plus clabe prefix",
			fileName: "estado.pdf",
			pages:    []string{"CLABE 113180000123456789"},
			expected: InstitutionBXPlus,
		},
		{
			name:     "kapital header keyword",
			fileName: "estado.pdf",
			pages:    []string{"KAPITAL BANK ESTADO DE CUENTA"},
			expected: InstitutionKapital,
		},
		{
			name:     "nothing matches",
			fileName: "documento.pdf",
			pages:    []string{"TEXTO SIN BANCO RECONOCIBLE"},
			expected: InstitutionUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Detect(tt.fileName, tt.pages))
		})
	}
}

func TestRegistryCoversCatalog(t *testing.T) {
	r := NewRegistry()
	for _, p := range bankCatalog {
		_, ok := r.Get(p.institution)
		assert.True(t, ok, "no parser registered for %s", p.institution)
	}
	_, ok := r.Get(InstitutionUnknown)
	assert.False(t, ok)
}
