// internal/workers/statement/parse-statement/parsers/amounts_test.go
package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFindAmounts(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected []float64
	}{
		{
			name:     "two column row",
			line:     "02 DEPOSITO SPEI 15,000.00 45,230.50",
			expected: []float64{15000.00, 45230.50},
		},
		{
			name:     "no monetary token",
			line:     "ESTADO DE CUENTA ENERO 2024",
			expected: nil,
		},
		{
			name:     "integer without decimals not matched",
			line:     "REFERENCIA 1234567",
			expected: nil,
		},
		{
			name:     "single amount",
			line:     "SALDO FINAL 1,234.56",
			expected: []float64{1234.56},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, findAmounts(tt.line))
		})
	}
}

func TestMovementAmountsDropsRunningBalance(t *testing.T) {
	assert.Equal(t, []float64{100.00}, movementAmounts([]float64{100.00, 5100.00}))
	// single token rows keep their only amount
	assert.Equal(t, []float64{100.00}, movementAmounts([]float64{100.00}))
}

func TestDayToken(t *testing.T) {
	assert.Equal(t, 15, dayToken("15 ABR DEPOSITO 1,000.00"))
	assert.Equal(t, -1, dayToken("DEPOSITO 1,000.00"))
	assert.Equal(t, -1, dayToken("45 FUERA DE RANGO"))
}
