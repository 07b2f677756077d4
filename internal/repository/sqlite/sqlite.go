package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"netlayout/internal/domain"
	"netlayout/internal/repository"

	_ "modernc.org/sqlite"
)

// SaveObserver is told the outcome, stored size and duration of every snapshot save
type SaveObserver func(result string, size int, duration time.Duration)

// Option configures a Repository
type Option func(*Repository)

// WithSaveObserver registers an observer for snapshot saves
func WithSaveObserver(fn SaveObserver) Option {
	return func(r *Repository) {
		r.observe = fn
	}
}

// Repository implements repository.SnapshotRepository using SQLite
type Repository struct {
	db      *sql.DB
	observe SaveObserver
}

var _ repository.SnapshotRepository = (*Repository)(nil)

// New creates a new SQLite repository
func New(dbPath string, opts ...Option) (*Repository, error) {
	dsn := dbPath
	if dbPath != ":memory:" {
		dsn = "file:" + dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps :memory: databases alive and serializes writers
	db.SetMaxOpenConns(1)

	repo := &Repository{db: db}
	for _, opt := range opts {
		opt(repo)
	}
	if err := repo.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return repo, nil
}

func (r *Repository) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS graphs (
		name TEXT PRIMARY KEY,
		digest TEXT NOT NULL,
		elements INTEGER NOT NULL DEFAULT 0,
		links INTEGER NOT NULL DEFAULT 0,
		data BLOB NOT NULL,
		updated_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS positions (
		graph TEXT NOT NULL,
		node_id INTEGER NOT NULL,
		x REAL NOT NULL,
		y REAL NOT NULL,
		pinned INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (graph, node_id)
	);

	CREATE INDEX IF NOT EXISTS idx_positions_graph ON positions(graph);
	`

	_, err := r.db.Exec(schema)
	return err
}

// SaveSnapshot stores the document under its name. A document identical to the
// stored one leaves the row untouched.
func (r *Repository) SaveSnapshot(ctx context.Context, doc *domain.Document) error {
	start := time.Now()
	result, size, err := r.saveSnapshot(ctx, doc)
	if err != nil {
		result = repository.ResultFailed
	}
	if r.observe != nil {
		r.observe(result, size, time.Since(start))
	}
	return err
}

func (r *Repository) saveSnapshot(ctx context.Context, doc *domain.Document) (string, int, error) {
	if doc == nil || doc.Name == "" {
		return "", 0, errors.New("snapshot requires a document name")
	}

	blob, digest, err := encodeSnapshot(doc)
	if err != nil {
		return "", 0, err
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return "", 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var stored string
	err = tx.QueryRowContext(ctx, `SELECT digest FROM graphs WHERE name = ?`, doc.Name).Scan(&stored)
	switch {
	case err == nil && stored == digest:
		return repository.ResultUnchanged, len(blob), nil
	case err != nil && !errors.Is(err, sql.ErrNoRows):
		return "", 0, fmt.Errorf("failed to query digest: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO graphs (name, digest, elements, links, data, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			digest = excluded.digest,
			elements = excluded.elements,
			links = excluded.links,
			data = excluded.data,
			updated_at = excluded.updated_at
	`, doc.Name, digest, len(doc.Elements), len(doc.Links), blob, time.Now().UnixNano()); err != nil {
		return "", 0, fmt.Errorf("failed to store snapshot %s: %w", doc.Name, err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM positions WHERE graph = ?`, doc.Name); err != nil {
		return "", 0, fmt.Errorf("failed to clear positions: %w", err)
	}
	if err := insertPositions(ctx, tx, doc.Name, positionsOf(doc)); err != nil {
		return "", 0, err
	}

	if err := tx.Commit(); err != nil {
		return "", 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return repository.ResultWritten, len(blob), nil
}

// LoadSnapshot returns the stored document with the given name
func (r *Repository) LoadSnapshot(ctx context.Context, name string) (*domain.Document, error) {
	var blob []byte
	err := r.db.QueryRowContext(ctx, `SELECT data FROM graphs WHERE name = ?`, name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", repository.ErrNotFound, name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshot: %w", err)
	}
	return decodeSnapshot(blob)
}

// ListSnapshots describes every stored snapshot, ordered by name
func (r *Repository) ListSnapshots(ctx context.Context) ([]repository.SnapshotInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, digest, elements, links, length(data), updated_at
		FROM graphs ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer rows.Close()

	infos := make([]repository.SnapshotInfo, 0)
	for rows.Next() {
		var (
			info    repository.SnapshotInfo
			updated int64
		)
		if err := rows.Scan(&info.Name, &info.Digest, &info.Elements, &info.Links, &info.Size, &updated); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		info.UpdatedAt = time.Unix(0, updated).UTC()
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshots: %w", err)
	}
	return infos, nil
}

// DeleteSnapshot removes a snapshot and its positions
func (r *Repository) DeleteSnapshot(ctx context.Context, name string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM graphs WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("failed to delete snapshot: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", repository.ErrNotFound, name)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM positions WHERE graph = ?`, name); err != nil {
		return fmt.Errorf("failed to delete positions: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// SavePositions upserts position data for elements of a layout
func (r *Repository) SavePositions(ctx context.Context, name string, positions []domain.NodePosition) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPositions(ctx, tx, name, positions); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// LoadPositions returns the stored positions of a layout, ordered by element id
func (r *Repository) LoadPositions(ctx context.Context, name string) ([]domain.NodePosition, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT node_id, x, y, pinned FROM positions WHERE graph = ? ORDER BY node_id
	`, name)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := make([]domain.NodePosition, 0)
	for rows.Next() {
		var (
			pos    domain.NodePosition
			pinned int
		)
		if err := rows.Scan(&pos.NodeID, &pos.X, &pos.Y, &pinned); err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		pos.Pinned = pinned != 0
		positions = append(positions, pos)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}
	return positions, nil
}

func insertPositions(ctx context.Context, tx *sql.Tx, name string, positions []domain.NodePosition) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO positions (graph, node_id, x, y, pinned) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(graph, node_id) DO UPDATE SET
			x = excluded.x, y = excluded.y, pinned = excluded.pinned
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer stmt.Close()

	for _, pos := range positions {
		if _, err := stmt.ExecContext(ctx, name, pos.NodeID, pos.X, pos.Y, boolToInt(pos.Pinned)); err != nil {
			return fmt.Errorf("failed to update position for %d: %w", pos.NodeID, err)
		}
	}
	return nil
}

// Close closes the database connection
func (r *Repository) Close() error {
	return r.db.Close()
}
