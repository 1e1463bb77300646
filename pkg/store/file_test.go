package store

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yuliitezarygml/tg-bor-arend/pkg/logger"
)

func newTestFileStore(t *testing.T) Store {
	t.Helper()

	s, err := NewFile(t.TempDir(), logger.New("error"))
	require.NoError(t, err)

	return s
}

func TestFileStore_MissingCollectionIsEmpty(t *testing.T) {
	s := newTestFileStore(t)

	got, err := s.Load(context.Background(), CollectionRentals)

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestFileStore_SaveLoadRoundtrip(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	records := Collection{
		"c1": json.RawMessage(`{"id":"c1","name":"PS5"}`),
		"c2": json.RawMessage(`{"id":"c2","name":"Xbox"}`),
	}

	require.NoError(t, s.Save(ctx, CollectionConsoles, records))

	got, err := s.Load(ctx, CollectionConsoles)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.JSONEq(t, string(records["c1"]), string(got["c1"]))
	assert.JSONEq(t, string(records["c2"]), string(got["c2"]))
}

func TestFileStore_SaveReplacesWholesale(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, CollectionUsers, Collection{
		"u1": json.RawMessage(`{"id":"u1"}`),
		"u2": json.RawMessage(`{"id":"u2"}`),
	}))
	require.NoError(t, s.Save(ctx, CollectionUsers, Collection{
		"u3": json.RawMessage(`{"id":"u3"}`),
	}))

	got, err := s.Load(ctx, CollectionUsers)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Contains(t, got, "u3")
}

func TestFileStore_SaveNilWritesEmptyObject(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, CollectionRentals, nil))

	got, err := s.Load(ctx, CollectionRentals)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestFileStore_CorruptFileFails(t *testing.T) {
	dir := t.TempDir()

	s, err := NewFile(dir, logger.New("error"))
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, CollectionRentals+".json"), []byte("not json"), 0o644))

	_, err = s.Load(context.Background(), CollectionRentals)

	assert.ErrorContains(t, err, "decode")
}

func TestFileStore_CollectionsAreIndependent(t *testing.T) {
	s := newTestFileStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, CollectionConsoles, Collection{"c1": json.RawMessage(`{}`)}))

	got, err := s.Load(ctx, CollectionRentals)
	require.NoError(t, err)
	assert.Empty(t, got)
}
