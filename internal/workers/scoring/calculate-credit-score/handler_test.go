// internal/workers/scoring/calculate-credit-score/handler_test.go
package calculatecreditscore

import (
	"context"
	"testing"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func score(t *testing.T, profile models.MonthlyFinancialProfile, outflow *float64) models.FinancialScore {
	t.Helper()
	h := NewHandler(LoadConfig(), logger.NewTestLogger(t))
	out, err := h.Execute(context.Background(), &Input{Profile: profile, AverageOutflow: outflow})
	require.NoError(t, err)
	return out.Score
}

func f(v float64) *float64 { return &v }

func TestExecuteStrongProfile(t *testing.T) {
	s := score(t, models.MonthlyFinancialProfile{
		IngresosPromedio: 120000,
		SaldoPromedio:    40000,
	}, f(60000))

	// surplus 60,000 > 20% of income: 40 + 30 + 30
	assert.Equal(t, 100, s.Score)
	assert.Equal(t, LevelExcellent, s.Nivel)
	assert.Equal(t, MessageExcellent, s.Mensaje)
	assert.InDelta(t, 60000, s.CashFlow, 0.01)
	assert.InDelta(t, 18000, s.CapacidadPagoMensual, 0.01)
}

func TestExecuteMarginalSurplus(t *testing.T) {
	s := score(t, models.MonthlyFinancialProfile{
		IngresosPromedio: 100000,
		SaldoPromedio:    10000,
	}, f(95000))

	// surplus 5,000 is positive but under 20%: 20 + 15 + 30
	assert.Equal(t, 65, s.Score)
	assert.Equal(t, LevelGood, s.Nivel)
}

func TestExecuteOverdraftPenaltyAndClamp(t *testing.T) {
	s := score(t, models.MonthlyFinancialProfile{
		IngresosPromedio: 10000,
		SaldoPromedio:    1000,
		Sobregiros:       8,
	}, f(9000))

	// raw 20 - 80 clamps to zero, never negative
	assert.Equal(t, 0, s.Score)
	assert.Equal(t, LevelLow, s.Nivel)
	assert.Equal(t, MessageLow, s.Mensaje)
}

func TestExecuteNegativeCashFlowCapacityFloorsAtZero(t *testing.T) {
	s := score(t, models.MonthlyFinancialProfile{
		IngresosPromedio: 20000,
		SaldoPromedio:    6000,
	}, f(25000))

	assert.InDelta(t, -5000, s.CashFlow, 0.01)
	assert.Equal(t, 0.0, s.CapacidadPagoMensual)
	// 0 (no surplus) + 15 (balance) + 15 (income)
	assert.Equal(t, 30, s.Score)
}

func TestExecuteIdempotent(t *testing.T) {
	profile := models.MonthlyFinancialProfile{
		IngresosPromedio: 60000,
		SaldoPromedio:    12000,
		Sobregiros:       1,
	}
	first := score(t, profile, f(30000))
	second := score(t, profile, f(30000))
	assert.Equal(t, first, second)
}

func TestExecuteOutflowProxy(t *testing.T) {
	s := score(t, models.MonthlyFinancialProfile{
		IngresosPromedio: 60000,
		SaldoPromedio:    12000,
	}, nil)

	// without outflow tracking, net income proxies the cash flow
	assert.InDelta(t, 60000, s.CashFlow, 0.01)
	// 40 + 15 + 30
	assert.Equal(t, 85, s.Score)
	assert.Equal(t, LevelExcellent, s.Nivel)
}
