package repository

import (
	"context"
	"testing"

	"github.com/chetan-code/missioncontrol/internal/models"
	"github.com/chetan-code/missioncontrol/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTaxonomyRepo_CreateRequiresParent(t *testing.T) {
	repo := NewTaxonomyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	err := repo.CreateType(ctx, testutil.NewTestType("missing-category", "Orphan"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	err = repo.CreateItem(ctx, testutil.NewTestItem("missing-type", "Orphan"))
	assert.ErrorIs(t, err, models.ErrNotFound)

	types, err := repo.ListTypes(ctx, "missing-category")
	require.NoError(t, err)
	assert.Empty(t, types)
}

func TestTaxonomyRepo_DuplicateNamesAllowed(t *testing.T) {
	repo := NewTaxonomyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	a := testutil.NewTestCategory("Same")
	b := testutil.NewTestCategory("Same")
	require.NoError(t, repo.CreateCategory(ctx, a))
	require.NoError(t, repo.CreateCategory(ctx, b))

	cats, err := repo.ListCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, cats, 2)
	assert.NotEqual(t, cats[0].ID, cats[1].ID)
}

func TestTaxonomyRepo_ListScopedToParent(t *testing.T) {
	repo := NewTaxonomyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	c1 := testutil.NewTestCategory("One")
	c2 := testutil.NewTestCategory("Two")
	require.NoError(t, repo.CreateCategory(ctx, c1))
	require.NoError(t, repo.CreateCategory(ctx, c2))
	t1 := testutil.NewTestType(c1.ID, "T1")
	t2 := testutil.NewTestType(c2.ID, "T2")
	require.NoError(t, repo.CreateType(ctx, t1))
	require.NoError(t, repo.CreateType(ctx, t2))
	require.NoError(t, repo.CreateItem(ctx, testutil.NewTestItem(t1.ID, "I1")))

	types, err := repo.ListTypes(ctx, c1.ID)
	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "T1", types[0].Name)
	assert.Equal(t, c1.ID, types[0].CategoryID)

	items, err := repo.ListItems(ctx, t2.ID)
	require.NoError(t, err)
	assert.Empty(t, items)

	items, err = repo.ListItems(ctx, t1.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "I1", items[0].Name)
}

func TestTaxonomyRepo_DeleteItem(t *testing.T) {
	repo := NewTaxonomyRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	cat := testutil.NewTestCategory("C")
	require.NoError(t, repo.CreateCategory(ctx, cat))
	typ := testutil.NewTestType(cat.ID, "T")
	require.NoError(t, repo.CreateType(ctx, typ))
	item := testutil.NewTestItem(typ.ID, "I")
	require.NoError(t, repo.CreateItem(ctx, item))

	require.NoError(t, repo.DeleteItem(ctx, item.ID))
	assert.ErrorIs(t, repo.DeleteItem(ctx, item.ID), models.ErrNotFound)
	assert.ErrorIs(t, repo.DeleteCategory(ctx, "missing"), models.ErrNotFound)
}
