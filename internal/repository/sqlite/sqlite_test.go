package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"netlayout/internal/domain"
	"netlayout/internal/repository"
)

// ============================================================================
// Test Helpers
// ============================================================================

// newTestRepo creates an in-memory SQLite repository for testing
func newTestRepo(t *testing.T, opts ...Option) *Repository {
	t.Helper()
	repo, err := New(":memory:", opts...)
	if err != nil {
		t.Fatalf("failed to create test repository: %v", err)
	}
	t.Cleanup(func() {
		repo.Close()
	})
	return repo
}

// assertNoError fails the test if err is not nil
func assertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// assertEqual fails the test if expected != actual
func assertEqual(t *testing.T, expected, actual interface{}) {
	t.Helper()
	if !reflect.DeepEqual(expected, actual) {
		t.Fatalf("expected %v, got %v", expected, actual)
	}
}

func float(v float64) *float64 { return &v }

// testDocument builds a small placed layout: a cloud with two routers
func testDocument(name string) *domain.Document {
	doc := domain.NewDocument(name)
	doc.AddElement(domain.ElementRecord{ID: 1, Type: domain.ElementTypeCloud, Group: "core", X: float(10), Y: float(20), FX: float(10), FY: float(20)})
	doc.AddElement(domain.ElementRecord{ID: 2, Type: domain.ElementTypeRouter, Group: "core", Name: "r2", X: float(30), Y: float(40)})
	doc.AddElement(domain.ElementRecord{ID: 3, Type: domain.ElementTypeRouter, Name: "r3"})
	doc.AddLink(domain.LinkRecord{ID: 1, Source: 1, Target: 2, LoadStatus: map[int]domain.LoadStatusEntry{
		7: {LoadingPercent: 42, Status: domain.LoadStatusOK},
	}})
	doc.AddLink(domain.LinkRecord{ID: 2, Source: 2, Target: 3})
	return doc
}

type saveCall struct {
	result string
	size   int
}

// ============================================================================
// Helper Function Tests
// ============================================================================

func TestEncodeSnapshot(t *testing.T) {
	doc := testDocument("lab")

	blob, digest, err := encodeSnapshot(doc)
	assertNoError(t, err)
	if len(digest) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(digest))
	}

	decoded, err := decodeSnapshot(blob)
	assertNoError(t, err)
	assertEqual(t, doc, decoded)

	_, again, err := encodeSnapshot(doc)
	assertNoError(t, err)
	assertEqual(t, digest, again)

	doc.Elements[1].X = float(31)
	_, moved, err := encodeSnapshot(doc)
	assertNoError(t, err)
	if moved == digest {
		t.Error("expected digest to change when a position changes")
	}
}

func TestDecodeSnapshotCorrupt(t *testing.T) {
	if _, err := decodeSnapshot([]byte("not snappy")); err == nil {
		t.Error("expected error for corrupt blob")
	}
}

func TestPositionsOf(t *testing.T) {
	positions := positionsOf(testDocument("lab"))

	expected := []domain.NodePosition{
		{NodeID: 1, X: 10, Y: 20, Pinned: true},
		{NodeID: 2, X: 30, Y: 40, Pinned: false},
	}
	assertEqual(t, expected, positions)
}

// ============================================================================
// Snapshot Tests
// ============================================================================

func TestSaveAndLoadSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)
	doc := testDocument("lab")

	assertNoError(t, repo.SaveSnapshot(ctx, doc))

	loaded, err := repo.LoadSnapshot(ctx, "lab")
	assertNoError(t, err)
	assertEqual(t, doc, loaded)

	positions, err := repo.LoadPositions(ctx, "lab")
	assertNoError(t, err)
	assertEqual(t, 2, len(positions))
}

func TestSaveSnapshotUnchanged(t *testing.T) {
	ctx := context.Background()
	var calls []saveCall
	repo := newTestRepo(t, WithSaveObserver(func(result string, size int, _ time.Duration) {
		calls = append(calls, saveCall{result, size})
	}))
	doc := testDocument("lab")

	assertNoError(t, repo.SaveSnapshot(ctx, doc))
	assertNoError(t, repo.SaveSnapshot(ctx, doc))

	doc.Elements[2].X = float(1)
	doc.Elements[2].Y = float(2)
	assertNoError(t, repo.SaveSnapshot(ctx, doc))

	if len(calls) != 3 {
		t.Fatalf("expected 3 observed saves, got %d", len(calls))
	}
	assertEqual(t, repository.ResultWritten, calls[0].result)
	assertEqual(t, repository.ResultUnchanged, calls[1].result)
	assertEqual(t, repository.ResultWritten, calls[2].result)
	if calls[0].size == 0 {
		t.Error("expected stored size to be reported")
	}

	positions, err := repo.LoadPositions(ctx, "lab")
	assertNoError(t, err)
	assertEqual(t, 3, len(positions))
}

func TestSaveSnapshotRequiresName(t *testing.T) {
	var calls []saveCall
	repo := newTestRepo(t, WithSaveObserver(func(result string, size int, _ time.Duration) {
		calls = append(calls, saveCall{result, size})
	}))

	if err := repo.SaveSnapshot(context.Background(), domain.NewDocument("")); err == nil {
		t.Fatal("expected error for unnamed document")
	}
	assertEqual(t, []saveCall{{repository.ResultFailed, 0}}, calls)
}

func TestLoadSnapshotNotFound(t *testing.T) {
	repo := newTestRepo(t)

	_, err := repo.LoadSnapshot(context.Background(), "missing")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestListSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	infos, err := repo.ListSnapshots(ctx)
	assertNoError(t, err)
	assertEqual(t, 0, len(infos))

	assertNoError(t, repo.SaveSnapshot(ctx, testDocument("zeta")))
	assertNoError(t, repo.SaveSnapshot(ctx, testDocument("alpha")))

	infos, err = repo.ListSnapshots(ctx)
	assertNoError(t, err)
	if len(infos) != 2 {
		t.Fatalf("expected 2 snapshots, got %d", len(infos))
	}
	assertEqual(t, "alpha", infos[0].Name)
	assertEqual(t, "zeta", infos[1].Name)
	assertEqual(t, 3, infos[0].Elements)
	assertEqual(t, 2, infos[0].Links)
	if infos[0].Size == 0 || infos[0].UpdatedAt.IsZero() {
		t.Errorf("expected size and timestamp, got %+v", infos[0])
	}
}

func TestDeleteSnapshot(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assertNoError(t, repo.SaveSnapshot(ctx, testDocument("lab")))
	assertNoError(t, repo.DeleteSnapshot(ctx, "lab"))

	if _, err := repo.LoadSnapshot(ctx, "lab"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	positions, err := repo.LoadPositions(ctx, "lab")
	assertNoError(t, err)
	assertEqual(t, 0, len(positions))

	if err := repo.DeleteSnapshot(ctx, "lab"); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound deleting twice, got %v", err)
	}
}

// ============================================================================
// Position Tests
// ============================================================================

func TestSavePositions(t *testing.T) {
	ctx := context.Background()
	repo := newTestRepo(t)

	assertNoError(t, repo.SavePositions(ctx, "lab", []domain.NodePosition{
		{NodeID: 5, X: 1, Y: 2},
		{NodeID: 4, X: 3, Y: 4, Pinned: true},
	}))
	assertNoError(t, repo.SavePositions(ctx, "lab", []domain.NodePosition{
		{NodeID: 5, X: 9, Y: 9, Pinned: true},
	}))
	assertNoError(t, repo.SavePositions(ctx, "other", []domain.NodePosition{
		{NodeID: 5, X: 0, Y: 0},
	}))

	positions, err := repo.LoadPositions(ctx, "lab")
	assertNoError(t, err)
	expected := []domain.NodePosition{
		{NodeID: 4, X: 3, Y: 4, Pinned: true},
		{NodeID: 5, X: 9, Y: 9, Pinned: true},
	}
	assertEqual(t, expected, positions)
}

func TestPersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "layout.db")

	repo, err := New(path)
	assertNoError(t, err)
	assertNoError(t, repo.SaveSnapshot(ctx, testDocument("lab")))
	assertNoError(t, repo.Close())

	reopened, err := New(path)
	assertNoError(t, err)
	defer reopened.Close()

	loaded, err := reopened.LoadSnapshot(ctx, "lab")
	assertNoError(t, err)
	assertEqual(t, testDocument("lab"), loaded)
}
