// internal/workers/statement/aggregate-profile/config.go
package aggregateprofile

type Config struct {
	// Express evaluation thresholds.
	SolidIncomeThreshold  float64
	SolidBalanceThreshold float64
	MediumIncomeThreshold float64
}

func LoadConfig() *Config {
	return &Config{
		SolidIncomeThreshold:  100000,
		SolidBalanceThreshold: 30000,
		MediumIncomeThreshold: 50000,
	}
}
