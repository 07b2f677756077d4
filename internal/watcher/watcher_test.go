package watcher

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"netlayout/internal/domain"
)

const doc1 = `name: lab
netElements:
  - {id: 1, type: cloud, group: g1}
  - {id: 2, type: router, group: g1}
netLinks:
  - {source: 1, target: 2}
`

type recordingReloader struct {
	mu   sync.Mutex
	docs []*domain.Document
}

func (r *recordingReloader) Reload(doc *domain.Document) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.docs = append(r.docs, doc)
	return 1
}

func (r *recordingReloader) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.docs)
}

func TestReadDocument(t *testing.T) {
	dir := t.TempDir()

	t.Run("yaml", func(t *testing.T) {
		path := filepath.Join(dir, "lab.yaml")
		require.NoError(t, os.WriteFile(path, []byte(doc1), 0644))

		doc, err := ReadDocument(path)
		require.NoError(t, err)
		assert.Equal(t, "lab", doc.Name)
		assert.Len(t, doc.Elements, 2)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := ReadDocument(filepath.Join(dir, "lab.csv"))
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadDocument(filepath.Join(dir, "missing.json"))
		assert.Error(t, err)
	})

	t.Run("invalid element type", func(t *testing.T) {
		path := filepath.Join(dir, "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("netElements:\n  - {id: 1, type: switch}\n"), 0644))
		_, err := ReadDocument(path)
		assert.Error(t, err)
	})
}

func TestReloadDocumentsSkipsBrokenFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.yaml")
	require.NoError(t, os.WriteFile(path, []byte("netElements: [{"), 0644))

	r := &recordingReloader{}
	ReloadDocuments(r)(path)
	assert.Equal(t, 0, r.count())

	require.NoError(t, os.WriteFile(path, []byte(doc1), 0644))
	ReloadDocuments(r)(path)
	assert.Equal(t, 1, r.count())
}

func TestWatchReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lab.yaml")
	other := filepath.Join(dir, "other.yaml")
	require.NoError(t, os.WriteFile(path, []byte(doc1), 0644))

	r := &recordingReloader{}
	w := New([]string{path}, ReloadDocuments(r)).WithDebounce(20 * time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Watch(ctx) }()

	// Give the watcher time to register the directory
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(other, []byte(doc1), 0644))
	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(path, []byte(doc1), 0644))
	}

	require.Eventually(t, func() bool { return r.count() >= 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, 1, r.count(), "rapid writes should be debounced into one reload")

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
