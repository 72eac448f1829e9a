// internal/workers/bureau/parse-bureau-report/handler_test.go
package parsebureaureport

import (
	"context"
	"errors"
	"testing"
	"time"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"

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

func sampleReportPages() []string {
	return []string{
		"BURO DE CREDITO REPORTE ESPECIAL " +
			"Nombre: JUAN PEREZ LOPEZ Fecha de Nacimiento 15-ENE-1980 " +
			"DOMICILIOS REPORTADOS " +
			"AV INSURGENTES SUR 1000 COL DEL VALLE CDMX C.P. 03100 " +
			"CALLE REFORMA 25 COL CENTRO GUADALAJARA C.P. 44100 " +
			"RESUMEN DE CRÉDITOS " +
			"BANCO NACIONAL TARJETA DE CREDITO VIGENTE ENE-24 $12,345.00 " +
			"BANCO AZTECA PRESTAMO PERSONAL CERRADO DIC-23 $0.00",
		"DETALLE DE CRÉDITOS " +
			"BANCO NACIONAL LIMITE $50,000.00 15-ENE-2020 111111110000 " +
			"BANCO AZTECA LIMITE $10,000.00 MAR-21 54303211UU00 " +
			"DETALLE DE CONSULTAS " +
			"BANCO MONEX 10-FEB-2024 " +
			"FINANCIERA EJEMPLO 05-MAR-2024 " +
			"DOCUMENTO SIN VALOR",
	}
}

func TestExecuteParsesAllSections(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeExtractor{pages: sampleReportPages()}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Document: models.SourceDocument{
		FileName: "buro.pdf",
		Path:     "/tmp/buro.pdf",
		Kind:     models.KindBureauReport,
	}})
	require.NoError(t, err)
	report := out.Report

	assert.Equal(t, "JUAN PEREZ LOPEZ", report.Nombre)
	assert.Equal(t, "15-ENE-1980", report.FechaNacimiento)

	require.Len(t, report.Domicilios, 2)
	assert.Contains(t, report.Domicilios[0], "C.P. 03100")

	require.Len(t, report.ResumenCuentas, 2)
	first := report.ResumenCuentas[0]
	assert.Equal(t, "BANCO NACIONAL", first.Otorgante)
	assert.Equal(t, "TARJETA DE CREDITO", first.Producto)
	assert.Equal(t, "VIGENTE", first.Estatus)
	assert.Equal(t, "ENE-24", first.UltimoReporte)
	require.NotNil(t, first.UltimoReporteFecha)
	assert.Equal(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), *first.UltimoReporteFecha)
	assert.Equal(t, "$12,345.00", first.Saldo)
	assert.Empty(t, first.Comportamiento)

	second := report.ResumenCuentas[1]
	assert.Equal(t, "BANCO AZTECA", second.Otorgante)
	assert.Equal(t, "CERRADO", second.Estatus)
	assert.Equal(t, "cerrado", second.Comportamiento)

	require.Len(t, report.DetalleCreditos, 2)
	assert.Equal(t, "BANCO NACIONAL", report.DetalleCreditos[0].Otorgante)
	assert.Equal(t, "$50,000.00", report.DetalleCreditos[0].LimiteCred)
	assert.Equal(t, "15-ENE-2020", report.DetalleCreditos[0].Apertura)
	require.NotNil(t, report.DetalleCreditos[0].AperturaFecha)
	assert.Equal(t, time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC), *report.DetalleCreditos[0].AperturaFecha)
	assert.Equal(t, "111111110000", report.DetalleCreditos[0].MOPSequence)
	assert.Equal(t, "54303211UU00", report.DetalleCreditos[1].MOPSequence)
	assert.Equal(t, "MAR-21", report.DetalleCreditos[1].Apertura)
	require.NotNil(t, report.DetalleCreditos[1].AperturaFecha)
	assert.Equal(t, time.Date(2021, time.March, 1, 0, 0, 0, 0, time.UTC), *report.DetalleCreditos[1].AperturaFecha)

	require.Len(t, report.Consultas, 2)
	assert.Equal(t, "BANCO MONEX", report.Consultas[0].Institucion)
	assert.Equal(t, "10-FEB-2024", report.Consultas[0].Fecha)
	require.NotNil(t, report.Consultas[0].FechaConsulta)
	assert.Equal(t, time.Date(2024, time.February, 10, 0, 0, 0, 0, time.UTC), *report.Consultas[0].FechaConsulta)
}

func TestSummaryKeepsRawTokenWhenDateUnparsable(t *testing.T) {
	text := normalizeReport([]string{
		"RESUMEN DE CRÉDITOS BANCO NACIONAL CREDITO VIGENTE XXX-24 $1.00 DETALLE DE CRÉDITOS",
	})

	entries, err := parseSummary(text)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "XXX-24", entries[0].UltimoReporte)
	assert.Nil(t, entries[0].UltimoReporteFecha)
}

func TestExecuteMissingSectionsStayEmpty(t *testing.T) {
	pages := []string{"Nombre: MARIA LOPEZ GARCIA 01-MAR-1975 TEXTO SIN SECCIONES"}
	h := NewHandler(LoadConfig(), &fakeExtractor{pages: pages}, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{Document: models.SourceDocument{
		FileName: "buro.pdf",
		Path:     "/tmp/buro.pdf",
		Kind:     models.KindBureauReport,
	}})

	// absent sections are warnings, never a failed report
	require.NoError(t, err)
	assert.Equal(t, "MARIA LOPEZ GARCIA", out.Report.Nombre)
	assert.Equal(t, "01-MAR-1975", out.Report.FechaNacimiento)
	assert.Empty(t, out.Report.ResumenCuentas)
	assert.Empty(t, out.Report.DetalleCreditos)
	assert.Empty(t, out.Report.Consultas)
}

func TestExecuteExtractionFailure(t *testing.T) {
	h := NewHandler(LoadConfig(), &fakeExtractor{err: errors.New("corrupt pdf")}, logger.NewTestLogger(t))

	_, err := h.Execute(context.Background(), &Input{Document: models.SourceDocument{
		FileName: "buro.pdf",
		Path:     "/tmp/buro.pdf",
		Kind:     models.KindBureauReport,
	}})
	assert.Error(t, err)
}
