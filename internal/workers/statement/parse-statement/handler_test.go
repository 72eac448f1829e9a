// internal/workers/statement/parse-statement/handler_test.go
package parsestatement

import (
	"context"
	"errors"
	"testing"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
	"credit-pipeline/internal/workers/statement/parse-statement/parsers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExtractor struct {
	pages []string
	err   error
}

func (f *fakeExtractor) Extract(ctx context.Context, filePath string) ([]string, error) {
	return f.pages, f.err
}

func banortePages() []string {
	return []string{
		"BANORTE ESTADO DE CUENTA\n" +
			"PERIODO DEL 01/01/2024 AL 31/01/2024\n" +
			"SALDO ANTERIOR 10,000.00\n" +
			"02 DEPOSITO SPEI RECIBIDO 5,000.00 15,000.00\n" +
			"10 DEPOSITO EFECTIVO 1,500.00 16,500.00\n" +
			"12 TRASPASO ENTRE CUENTAS PROPIAS 2,000.00 18,500.00\n",
	}
}

func TestExecuteParsesTaggedStatement(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeExtractor{pages: banortePages()}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Document: models.SourceDocument{
		FileName:    "enero.pdf",
		Path:        "/tmp/enero.pdf",
		Kind:        models.KindStatement,
		Institution: parsers.InstitutionBanorte,
	}})

	require.NoError(t, err)
	res := out.Result
	assert.True(t, res.Success)
	assert.Equal(t, parsers.InstitutionBanorte, res.Institution)
	assert.InDelta(t, 6500.00, res.Income, 0.01)
	assert.InDelta(t, 8500.00, res.GrossIncome, 0.01)
	assert.InDelta(t, 2000.00, res.Discards.SelfTransfers, 0.01)
	require.NotNil(t, res.Period)
	require.NotNil(t, res.Balance)
	assert.InDelta(t, 18500.00, *res.Balance, 0.01)
}

func TestExecuteDetectsInstitutionFromContent(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeExtractor{pages: banortePages()}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Document: models.SourceDocument{
		FileName: "estado_enero.pdf",
		Path:     "/tmp/estado_enero.pdf",
		Kind:     models.KindStatement,
	}})

	require.NoError(t, err)
	assert.Equal(t, parsers.InstitutionBanorte, out.Result.Institution)
	assert.True(t, out.Result.Success)
}

func TestExecuteExtractionFailureIsPerDocument(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeExtractor{err: errors.New("corrupt pdf")}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Document: models.SourceDocument{
		FileName: "roto.pdf",
		Path:     "/tmp/roto.pdf",
		Kind:     models.KindStatement,
	}})

	// a broken document is a failed result, not a handler error
	require.NoError(t, err)
	assert.False(t, out.Result.Success)
	assert.Contains(t, out.Result.Error, "EXTRACTION_FAILED")
}

func TestExecuteUnsupportedInstitution(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeExtractor{pages: []string{"TEXTO SIN BANCO"}}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Document: models.SourceDocument{
		FileName: "documento.pdf",
		Path:     "/tmp/documento.pdf",
		Kind:     models.KindStatement,
	}})

	require.NoError(t, err)
	assert.False(t, out.Result.Success)
	assert.Equal(t, parsers.InstitutionUnknown, out.Result.Institution)
	assert.Contains(t, out.Result.Error, "UNSUPPORTED_BANK")
}
