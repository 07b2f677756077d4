package sqlite

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/golang/snappy"
	"golang.org/x/crypto/blake2b"

	"netlayout/internal/domain"
)

// ============================================================================
// Snapshot Blob Helpers
// ============================================================================

// encodeSnapshot serializes a document to JSON and returns the compressed blob
// along with the digest of the uncompressed bytes
func encodeSnapshot(doc *domain.Document) (blob []byte, digest string, err error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, "", fmt.Errorf("marshal snapshot: %w", err)
	}
	return snappy.Encode(nil, raw), digestOf(raw), nil
}

// decodeSnapshot reverses encodeSnapshot
func decodeSnapshot(blob []byte) (*domain.Document, error) {
	raw, err := snappy.Decode(nil, blob)
	if err != nil {
		return nil, fmt.Errorf("decompress snapshot: %w", err)
	}
	var doc domain.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal snapshot: %w", err)
	}
	return &doc, nil
}

// digestOf returns the hex blake2b-256 digest of data
func digestOf(data []byte) string {
	sum := blake2b.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// ============================================================================
// Position Helpers
// ============================================================================

// positionsOf extracts the placed positions of a document. Elements without
// coordinates have not been laid out yet and are skipped.
func positionsOf(doc *domain.Document) []domain.NodePosition {
	positions := make([]domain.NodePosition, 0, len(doc.Elements))
	for _, rec := range doc.Elements {
		if rec.X == nil || rec.Y == nil {
			continue
		}
		positions = append(positions, domain.NodePosition{
			NodeID: rec.ID,
			X:      *rec.X,
			Y:      *rec.Y,
			Pinned: rec.FX != nil && rec.FY != nil,
		})
	}
	return positions
}

// boolToInt converts a bool to the integer SQLite stores for it
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
