package paintstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/meshpaint/internal/config"
	"github.com/Faultbox/meshpaint/internal/paintsync"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	dir := t.TempDir()

	sqliteStore, err := OpenSQLite(filepath.Join(dir, "paint.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"json":   NewJSONStore(filepath.Join(dir, "paint.json")),
		"sqlite": sqliteStore,
		"memory": paintsync.NewMemoryStore(),
	}
}

func TestStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			edits, err := s.Load(ctx, "robot")
			require.NoError(t, err)
			assert.Empty(t, edits)

			require.NoError(t, s.Update(ctx, "robot", map[string]string{"12": "#00ff00", "0": "#ff0000"}))
			require.NoError(t, s.Update(ctx, "cube", map[string]string{"3": "#0000ff"}))

			edits, err = s.Load(ctx, "robot")
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"12": "#00ff00", "0": "#ff0000"}, edits)

			ids, err := s.Models(ctx)
			require.NoError(t, err)
			assert.Equal(t, []string{"cube", "robot"}, ids)
		})
	}
}

func TestStoreLastWriteWins(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update(ctx, "robot", map[string]string{"1": "#ff0000", "2": "#ff0000"}))
			require.NoError(t, s.Update(ctx, "robot", map[string]string{"2": "#00ff00"}))

			edits, err := s.Load(ctx, "robot")
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"1": "#ff0000", "2": "#00ff00"}, edits)
		})
	}
}

func TestStoreReplace(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update(ctx, "robot", map[string]string{"1": "#ff0000", "2": "#ff0000"}))
			require.NoError(t, s.Replace(ctx, "robot", map[string]string{"7": "#0000ff"}))

			edits, err := s.Load(ctx, "robot")
			require.NoError(t, err)
			assert.Equal(t, map[string]string{"7": "#0000ff"}, edits)

			require.NoError(t, s.Replace(ctx, "robot", nil))
			ids, err := s.Models(ctx)
			require.NoError(t, err)
			assert.Empty(t, ids)
		})
	}
}

func TestStoreWithSync(t *testing.T) {
	ctx := context.Background()
	for name, s := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Update(ctx, "robot", map[string]string{"12": "#00FF00"}))

			ps := paintsync.New(s, "robot")
			edits, report := paintsync.Decode(mustLoad(t, s, "robot"), 1319)
			require.True(t, report.OK())
			assert.Equal(t, paintsync.Color{G: 1}, edits[12])
			assert.Equal(t, "robot", ps.ModelID())
		})
	}
}

func mustLoad(t *testing.T, s Store, modelID string) map[string]string {
	t.Helper()
	edits, err := s.Load(context.Background(), modelID)
	require.NoError(t, err)
	return edits
}

func TestSQLiteRejectsNonIntegerKeys(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "paint.db"))
	require.NoError(t, err)
	defer s.Close()

	for _, key := range []string{"head", "+12", "012"} {
		err = s.Update(context.Background(), "robot", map[string]string{key: "#ff0000"})
		assert.Error(t, err, key)
	}
}

func TestSQLitePersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "paint.db")

	s, err := OpenSQLite(path)
	require.NoError(t, err)
	require.NoError(t, s.Update(ctx, "robot", map[string]string{"5": "#123456"}))
	require.NoError(t, s.Close())

	s, err = OpenSQLite(path)
	require.NoError(t, err)
	defer s.Close()
	assert.Equal(t, map[string]string{"5": "#123456"}, mustLoad(t, s, "robot"))
}

func TestJSONStoreFileFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paint.json")
	s := NewJSONStore(path)
	require.NoError(t, s.Update(context.Background(), "robot", map[string]string{"12": "#00ff00"}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, `{"robot": {"12": "#00ff00"}}`, string(data))

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), "*.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches, "temp files left behind")
}

func TestJSONStoreCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paint.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	_, err := NewJSONStore(path).Load(context.Background(), "robot")
	assert.Error(t, err)
}

func TestOpen(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		store   string
		wantErr bool
	}{
		{config.StoreJSON, false},
		{config.StoreSQLite, false},
		{config.StoreMemory, false},
		{"postgres", true},
	}
	for _, tt := range tests {
		t.Run(tt.store, func(t *testing.T) {
			s, closeFn, err := Open(config.PaintConfig{
				Store:      tt.store,
				JSONPath:   filepath.Join(dir, "paint.json"),
				SQLitePath: filepath.Join(dir, "paint.db"),
			})
			require.NotNil(t, closeFn)
			defer closeFn()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.NotNil(t, s)
		})
	}
}

func TestWatcherSeesExternalWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paint.json")
	require.NoError(t, os.WriteFile(path, []byte("{}"), 0644))

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	// Atomic replace, as JSONStore does it.
	s := NewJSONStore(path)
	require.NoError(t, s.Update(context.Background(), "robot", map[string]string{"1": "#ffffff"}))

	select {
	case got := <-w.Changes():
		assert.Equal(t, filepath.Base(path), filepath.Base(got))
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "paint.json")

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.json"), []byte("{}"), 0644))

	select {
	case got := <-w.Changes():
		t.Fatalf("unexpected change for %s", got)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestJSONStoreExternallyModified(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "paint.json")
	s := NewJSONStore(path)

	require.NoError(t, s.Update(ctx, "robot", map[string]string{"1": "#ff0000"}))
	external, err := s.ExternallyModified()
	require.NoError(t, err)
	assert.False(t, external, "own write")

	require.NoError(t, os.WriteFile(path, []byte(`{"robot":{"2":"#00ff00"}}`), 0644))
	external, err = s.ExternallyModified()
	require.NoError(t, err)
	assert.True(t, external, "outside write")

	external, err = s.ExternallyModified()
	require.NoError(t, err)
	assert.False(t, external, "outside write reported twice")
}

func TestJSONStoreExternalChangeMergedByOwnWrite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "paint.json")
	s := NewJSONStore(path)

	_, err := s.Load(ctx, "robot")
	require.NoError(t, err)

	// The outside edit lands before our next write folds it in.
	require.NoError(t, os.WriteFile(path, []byte(`{"robot":{"2":"#00ff00"}}`), 0644))
	require.NoError(t, s.Update(ctx, "robot", map[string]string{"1": "#ff0000"}))

	external, err := s.ExternallyModified()
	require.NoError(t, err)
	assert.True(t, external)
}

func TestWatcherOwnWriteIsNotExternal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "paint.json")
	s := NewJSONStore(path)
	_, err := s.Load(context.Background(), "robot")
	require.NoError(t, err)

	w, err := NewWatcher(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, s.Update(context.Background(), "robot", map[string]string{"1": "#ffffff"}))

	select {
	case <-w.Changes():
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
	external, err := s.ExternallyModified()
	require.NoError(t, err)
	assert.False(t, external)
}
