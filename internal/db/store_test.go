package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/specdraw/internal/parser"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	sqlDB, err := Open(filepath.Join(t.TempDir(), "nested", "specdraw.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return NewStore(sqlDB)
}

func TestStore_SaveAndGet(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	spec, _ := parser.Parse("# Shop\n\n## Classes\n\n### Cart\n#### Attributes\n- items: list\n")
	id, err := s.SaveParse(ctx, "regex", spec)
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	got, err := s.GetParse(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Shop", got.Title)
	assert.Equal(t, "regex", got.Source)
	assert.False(t, got.CreatedAt.IsZero())
	require.Len(t, got.Spec.Classes, 1)
	assert.Equal(t, "Cart", got.Spec.Classes[0].Name)
	assert.Equal(t, "list", got.Spec.Classes[0].Attributes[0].Type)
}

func TestStore_GetMissing(t *testing.T) {
	s := openTestStore(t)
	_, err := s.GetParse(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_ListNewestFirst(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, title := range []string{"One", "Two", "Three"} {
		_, err := s.SaveParse(ctx, "llm", &parser.Specification{Title: title})
		require.NoError(t, err)
	}

	records, err := s.ListParses(ctx, 2)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "Three", records[0].Title)
	assert.Equal(t, "Two", records[1].Title)
	assert.Nil(t, records[0].Spec)
}

func TestStore_ListEmpty(t *testing.T) {
	records, err := openTestStore(t).ListParses(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, records)
	assert.NotNil(t, records)
}

func TestOpen_UsesWAL(t *testing.T) {
	sqlDB, err := Open(filepath.Join(t.TempDir(), "wal.db"))
	require.NoError(t, err)
	defer sqlDB.Close()

	var mode string
	require.NoError(t, sqlDB.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
}
