package watch

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func start(t *testing.T, root string) <-chan []string {
	t.Helper()

	w, err := New(Config{
		Root:     root,
		Match:    func(p string) bool { return strings.HasSuffix(p, ".desc") },
		Debounce: 20 * time.Millisecond,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 8)
	done := make(chan struct{})

	go func() {
		defer close(done)
		_ = w.Run(ctx, func(paths []string) { batches <- paths })
	}()

	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})

	return batches
}

func next(t *testing.T, batches <-chan []string) []string {
	t.Helper()

	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
		return nil
	}
}

func TestWatcher_ReportsMatchingChanges(t *testing.T) {
	dir := t.TempDir()
	batches := start(t, dir)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "foo.desc"), []byte("x"), 0o644))

	assert.Equal(t, []string{filepath.Join(dir, "foo.desc")}, next(t, batches))
}

func TestWatcher_Debounces(t *testing.T) {
	dir := t.TempDir()
	batches := start(t, dir)

	path := filepath.Join(dir, "foo.desc")
	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	assert.Equal(t, []string{path}, next(t, batches))
}

func TestNew_MissingRoot(t *testing.T) {
	_, err := New(Config{Root: filepath.Join(t.TempDir(), "missing"), Logger: zerolog.Nop()})
	assert.Error(t, err)
}
