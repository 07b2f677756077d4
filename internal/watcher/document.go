package watcher

import (
	"fmt"
	"log"
	"os"

	"netlayout/internal/codec"
	"netlayout/internal/domain"
)

// Reloader restores a document into the sessions opened from it
type Reloader interface {
	Reload(doc *domain.Document) int
}

// ReadDocument parses and validates a JSON or YAML document file
func ReadDocument(path string) (*domain.Document, error) {
	c, err := codec.ForPath(path)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open document: %w", err)
	}
	defer f.Close()

	doc, err := codec.Decode(c, f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return doc, nil
}

// ReloadDocuments returns a change handler that re-reads the changed file and
// hands it to the reloader. Unreadable files are logged and skipped so a
// half-written document never replaces a live layout.
func ReloadDocuments(r Reloader) func(path string) {
	return func(path string) {
		doc, err := ReadDocument(path)
		if err != nil {
			log.Printf("Warning: not reloading %s: %v", path, err)
			return
		}
		n := r.Reload(doc)
		log.Printf("Reloaded %q into %d session(s)", doc.Name, n)
	}
}
