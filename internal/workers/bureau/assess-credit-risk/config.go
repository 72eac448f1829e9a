// internal/workers/bureau/assess-credit-risk/config.go
package assesscreditrisk

type Config struct {
	// HighRiskThreshold is how many high-risk payment codes push an
	// account into the high tier; the same count applies to moderate.
	HighRiskThreshold int
}

func LoadConfig() *Config {
	return &Config{
		HighRiskThreshold: 3,
	}
}
