// internal/workers/scoring/calculate-credit-score/config.go
package calculatecreditscore

type Config struct {
	HighBalanceThreshold   float64
	MediumBalanceThreshold float64
	HighIncomeThreshold    float64
	MediumIncomeThreshold  float64
	OverdraftPenalty       int
	CapacityRate           float64
}

func LoadConfig() *Config {
	return &Config{
		HighBalanceThreshold:   20000,
		MediumBalanceThreshold: 5000,
		HighIncomeThreshold:    50000,
		MediumIncomeThreshold:  15000,
		OverdraftPenalty:       10,
		CapacityRate:           0.30,
	}
}
