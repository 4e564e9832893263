package session

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	_, err := store.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNoSession)

	admin := testAdmin()
	require.NoError(t, store.Save(ctx, "a", New("tok-file", &admin)))

	s, err := store.Load(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "tok-file", s.Token)
	assert.Equal(t, "SUPERADMIN", s.Admin.Role)

	_, err = store.Load(ctx, "b")
	assert.ErrorIs(t, err, ErrNoSession)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestFileStore_UsesFixedKeys(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	admin := testAdmin()
	require.NoError(t, store.Save(ctx, "a", New("tok", &admin)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Contains(t, raw, "a")
	assert.Contains(t, raw["a"], TokenKey)
	assert.Contains(t, raw["a"], AdminKey)
}

func TestFileStore_DeleteErasesTogether(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	store := NewFileStore(path)

	admin := testAdmin()
	require.NoError(t, store.Save(ctx, "a", New("tok-a", &admin)))
	require.NoError(t, store.Save(ctx, "b", New("tok-b", &admin)))
	require.NoError(t, store.Delete(ctx, "a"))

	_, err := store.Load(ctx, "a")
	assert.ErrorIs(t, err, ErrNoSession)
	s, err := store.Load(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, "tok-b", s.Token)

	require.NoError(t, store.Delete(ctx, "b"))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// повторное удаление не ошибка
	assert.NoError(t, store.Delete(ctx, "b"))
}

func TestFileStore_PrunesExpired(t *testing.T) {
	ctx := context.Background()
	store := NewFileStore(filepath.Join(t.TempDir(), "session.json"))

	admin := testAdmin()
	require.NoError(t, store.Save(ctx, "old", New(signedToken(t, time.Now().Add(-time.Minute)), &admin)))
	require.NoError(t, store.Save(ctx, "new", New("tok", &admin)))

	_, err := store.Load(ctx, "old")
	assert.ErrorIs(t, err, ErrNoSession)
}

func TestFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("not-json"), 0o600))

	_, err := NewFileStore(path).Load(context.Background(), "a")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNoSession)
}
