// internal/workers/statement/parse-statement/models.go
package parsestatement

import "credit-pipeline/internal/models"

type Input struct {
	Document models.SourceDocument `json:"document"`
}

type Output struct {
	Result models.StatementResult `json:"result"`
}
