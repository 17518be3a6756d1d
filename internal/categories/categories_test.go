package categories

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rkeller/pennyflow/internal/models"
	"rkeller/pennyflow/internal/store"
)

func TestDefaults(t *testing.T) {
	defaults, err := Defaults()
	require.NoError(t, err)
	require.NotEmpty(t, defaults)

	names := make(map[string]bool)
	for _, d := range defaults {
		assert.NotEmpty(t, d.Name)
		assert.Contains(t, []string{"expense", "income", "transfer"}, d.Type)
		assert.False(t, names[d.Name], "duplicate default category %q", d.Name)
		names[d.Name] = true
	}
	assert.True(t, names["Groceries"])
	assert.True(t, names["Salary"])
	assert.True(t, names["Uncategorized"])
}

func TestSeedDefaults(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	created, err := SeedDefaults(ctx, s, "user-1")
	require.NoError(t, err)

	defaults, err := Defaults()
	require.NoError(t, err)
	assert.Equal(t, len(defaults), created)

	categories, err := s.ListCategories(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, categories, len(defaults))
	for _, c := range categories {
		assert.True(t, c.IsSystem)
		assert.Equal(t, "user-1", c.UserID)
	}
}

func TestSeedDefaults_SkipsWhenUserHasCategories(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	require.NoError(t, s.CreateCategory(ctx, &models.Category{
		ID:     uuid.NewString(),
		UserID: "user-1",
		Name:   "Custom",
		Type:   "expense",
	}))

	created, err := SeedDefaults(ctx, s, "user-1")
	require.NoError(t, err)
	assert.Zero(t, created)

	categories, err := s.ListCategories(ctx, "user-1")
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestSeedDefaults_PerUser(t *testing.T) {
	s := store.NewMemoryStore()
	ctx := context.Background()

	_, err := SeedDefaults(ctx, s, "user-1")
	require.NoError(t, err)
	created, err := SeedDefaults(ctx, s, "user-2")
	require.NoError(t, err)
	assert.NotZero(t, created)
}
