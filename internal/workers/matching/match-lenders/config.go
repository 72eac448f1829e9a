// internal/workers/matching/match-lenders/config.go
package matchlenders

type Config struct {
	// Weights sum to 100. The region weight is reserved: no lender in
	// the catalog constrains by region yet, so it is never awarded, but
	// removing it would shift every tier boundary.
	ProfileWeight int
	AmountWeight  int
	IncomeWeight  int
	BureauWeight  int
	RegionWeight  int

	PerfectThreshold   int
	PotentialThreshold int
	// IncomeToleranceRatio is how far under the requirement income may
	// fall and still earn partial credit.
	IncomeToleranceRatio float64
}

func LoadConfig() *Config {
	return &Config{
		ProfileWeight:        20,
		AmountWeight:         25,
		IncomeWeight:         30,
		BureauWeight:         15,
		RegionWeight:         10,
		PerfectThreshold:     85,
		PotentialThreshold:   50,
		IncomeToleranceRatio: 0.7,
	}
}
