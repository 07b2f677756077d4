package repository

import (
	"context"
	"errors"
	"time"

	"netlayout/internal/domain"
)

// ErrNotFound is returned when no snapshot has the requested name
var ErrNotFound = errors.New("snapshot not found")

// Save outcomes reported to the save observer
const (
	ResultWritten   = "written"
	ResultUnchanged = "unchanged"
	ResultFailed    = "failed"
)

// SnapshotInfo describes a stored snapshot without its contents
type SnapshotInfo struct {
	Name      string    `json:"name"`
	Digest    string    `json:"digest"`
	Elements  int       `json:"elements"`
	Links     int       `json:"links"`
	Size      int       `json:"size"`
	UpdatedAt time.Time `json:"updated_at"`
}

// SnapshotRepository defines the interface for snapshot persistence
type SnapshotRepository interface {
	// Snapshots
	SaveSnapshot(ctx context.Context, doc *domain.Document) error
	LoadSnapshot(ctx context.Context, name string) (*domain.Document, error)
	ListSnapshots(ctx context.Context) ([]SnapshotInfo, error)
	DeleteSnapshot(ctx context.Context, name string) error

	// Layout positions
	SavePositions(ctx context.Context, name string, positions []domain.NodePosition) error
	LoadPositions(ctx context.Context, name string) ([]domain.NodePosition, error)

	// Close releases resources
	Close() error
}
