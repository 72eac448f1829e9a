// internal/workers/bureau/parse-bureau-report/models.go
package parsebureaureport

import "credit-pipeline/internal/models"

type Input struct {
	Document models.SourceDocument `json:"document"`
}

type Output struct {
	Report models.CreditBureauReport `json:"report"`
}
