package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ssargent/fieldsheet/pkg/codec"
)

func openTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(filepath.Join(t.TempDir(), "tables"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestLocalStore_ReadMissing(t *testing.T) {
	s := openTestStore(t)

	table, err := s.ReadRange(context.Background(), "sheet", "FormFields!A:G")
	require.NoError(t, err)
	assert.Empty(t, table)
}

func TestLocalStore_ClearThenWrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first := codec.Encode([]codec.FieldRecord{{ID: "old"}})
	require.NoError(t, s.WriteRange(ctx, "sheet", "FormFields!A:G", first))

	require.NoError(t, s.ClearRange(ctx, "sheet", "FormFields!A:G"))
	table, err := s.ReadRange(ctx, "sheet", "FormFields!A:G")
	require.NoError(t, err)
	assert.Empty(t, table)

	second := codec.Encode([]codec.FieldRecord{{ID: "new", Required: true}})
	require.NoError(t, s.WriteRange(ctx, "sheet", "FormFields!A:G", second))

	table, err = s.ReadRange(ctx, "sheet", "FormFields!A:G")
	require.NoError(t, err)
	assert.Equal(t, second, table)
}

func TestLocalStore_WriteAppends(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRange(ctx, "sheet", "r", codec.Table{{"id"}}))
	require.NoError(t, s.WriteRange(ctx, "sheet", "r", codec.Table{{"f1"}}))

	table, err := s.ReadRange(ctx, "sheet", "r")
	require.NoError(t, err)
	assert.Equal(t, codec.Table{{"id"}, {"f1"}}, table)
}

func TestLocalStore_DestinationsAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.WriteRange(ctx, "a", "r", codec.Table{{"id"}, {"in-a"}}))

	table, err := s.ReadRange(ctx, "b", "r")
	require.NoError(t, err)
	assert.Empty(t, table)
}
