package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/tracksheet/internal/domain"
	"github.com/alexanderramin/tracksheet/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testEntry(name string) domain.TaxonomyEntry {
	return domain.TaxonomyEntry{Name: name, Color: "#123456"}
}

func TestTaxonomyRepo_KindsAreIndependentAndOrdered(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	d := seedDashboard(t, NewSQLiteDashboardRepo(database))
	repo := NewSQLiteTaxonomyRepo(database)

	require.NoError(t, repo.Add(ctx, d.ID, domain.TaxonomyStatus, testEntry("Blocked")))
	require.NoError(t, repo.Add(ctx, d.ID, domain.TaxonomyStatus, testEntry("Awaiting QA")))
	require.NoError(t, repo.Add(ctx, d.ID, domain.TaxonomyRisk, testEntry("Blocked")))

	statuses, err := repo.ListCustom(ctx, d.ID, domain.TaxonomyStatus)
	require.NoError(t, err)
	assert.Equal(t, []domain.TaxonomyEntry{testEntry("Blocked"), testEntry("Awaiting QA")}, statuses)

	risks, err := repo.ListCustom(ctx, d.ID, domain.TaxonomyRisk)
	require.NoError(t, err)
	assert.Len(t, risks, 1)
}

func TestTaxonomyRepo_DuplicateConflicts(t *testing.T) {
	database := testutil.NewTestDB(t)
	ctx := context.Background()
	d := seedDashboard(t, NewSQLiteDashboardRepo(database))
	repo := NewSQLiteTaxonomyRepo(database)

	require.NoError(t, repo.Add(ctx, d.ID, domain.TaxonomyRisk, testEntry("Critical")))
	err := repo.Add(ctx, d.ID, domain.TaxonomyRisk, testEntry("Critical"))
	assert.ErrorIs(t, err, ErrConflict)
}
