// internal/store/catalog_test.go
package store

import (
	"context"
	"testing"
	"time"

	"credit-pipeline/internal/common/logger"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCachedCatalogFillsAndServesFromCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	// the database is hit exactly once
	rows := sqlmock.NewRows(lenderColumns).
		AddRow("fin-001", "Financiera Uno", "a@b.mx", "moral",
			"$200,000 a $20,000,000", 50000.0, 20000.0, 600, nil)
	mock.ExpectQuery("SELECT id, nombre, email").WillReturnRows(rows)

	log := logger.NewTestLogger(t)
	cache, _ := newCacheForTest(t, time.Minute)
	catalog := NewCachedCatalog(cache, NewLenderStore(db, log), log)

	ctx := context.Background()
	first, err := catalog.ListCriteria(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := catalog.ListCriteria(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachedCatalogPropagatesStoreError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, nombre, email").WillReturnError(assert.AnError)

	log := logger.NewTestLogger(t)
	cache, _ := newCacheForTest(t, time.Minute)
	catalog := NewCachedCatalog(cache, NewLenderStore(db, log), log)

	_, err = catalog.ListCriteria(context.Background())
	assert.Error(t, err)
}
