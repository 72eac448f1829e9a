// internal/workers/bureau/assess-credit-risk/models.go
package assesscreditrisk

import "credit-pipeline/internal/models"

type Input struct {
	Report models.CreditBureauReport `json:"report"`
}

type Output struct {
	Assessment models.RiskAssessment `json:"assessment"`
}
