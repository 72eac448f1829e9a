// internal/store/lender_store.go
package store

import (
	"context"
	"database/sql"
	"fmt"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
	matchlenders "credit-pipeline/internal/workers/matching/match-lenders"
)

// LenderStore reads the lender acceptance catalog from PostgreSQL. The
// catalog keeps amount ranges as free text ("$200,000 a $20,000,000"),
// parsed on read.
type LenderStore struct {
	db     *sql.DB
	logger logger.Logger
}

func NewLenderStore(db *sql.DB, log logger.Logger) *LenderStore {
	return &LenderStore{
		db:     db,
		logger: log.WithFields(map[string]interface{}{"component": "lender-store"}),
	}
}

const listCriteriaQuery = `
	SELECT id, nombre, email, tipo_persona, rango_montos,
	       depositos_minimos, saldos_promedios, score_buro_minimo, region
	FROM financieras
	ORDER BY nombre`

// ListCriteria loads every lender's criteria. Rows whose amount range
// cannot be parsed are skipped with a warning rather than failing the
// whole catalog.
func (s *LenderStore) ListCriteria(ctx context.Context) ([]models.LenderCriteria, error) {
	rows, err := s.db.QueryContext(ctx, listCriteriaQuery)
	if err != nil {
		return nil, fmt.Errorf("query lender criteria: %w", err)
	}
	defer rows.Close()

	var criteria []models.LenderCriteria
	for rows.Next() {
		var (
			c          models.LenderCriteria
			email      sql.NullString
			region     sql.NullString
			amountText string
		)
		if err := rows.Scan(&c.ID, &c.Nombre, &email, &c.TipoPersona, &amountText,
			&c.DepositosMinimos, &c.SaldosPromediosM, &c.ScoreBuroMinimo, &region); err != nil {
			return nil, fmt.Errorf("scan lender row: %w", err)
		}
		c.Email = email.String
		c.Region = region.String

		min, max, ok := matchlenders.ParseAmountRange(amountText)
		if !ok {
			s.logger.Warn("unparsable amount range, lender skipped", map[string]interface{}{
				"lender": c.ID,
				"range":  amountText,
			})
			continue
		}
		c.MontoMinimo = min
		c.MontoMaximo = max

		criteria = append(criteria, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate lender rows: %w", err)
	}
	return criteria, nil
}
