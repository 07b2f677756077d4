package codec

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"netlayout/internal/domain"
)

// Importer interface for importing layout documents from various formats
type Importer interface {
	Parse(r io.Reader) (*domain.Document, error)
	Format() string
}

// Exporter interface for exporting layout documents to various formats
type Exporter interface {
	Export(doc *domain.Document, w io.Writer) error
	Format() string
}

// Codec both imports and exports one format
type Codec interface {
	Importer
	Exporter
}

// ForFormat returns the codec for a format name
func ForFormat(format string) (Codec, error) {
	switch strings.ToLower(format) {
	case "", "json":
		return NewJSONCodec(), nil
	case "yaml", "yml":
		return NewYAMLCodec(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}

// ForPath picks a codec from a file extension
func ForPath(path string) (Codec, error) {
	return ForFormat(strings.TrimPrefix(filepath.Ext(path), "."))
}

// Decode parses and validates a document
func Decode(imp Importer, r io.Reader) (*domain.Document, error) {
	doc, err := imp.Parse(r)
	if err != nil {
		return nil, err
	}
	if err := Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ForContentType picks a codec from an HTTP Content-Type or Accept value.
// Anything that is not YAML is treated as JSON.
func ForContentType(contentType string) Codec {
	ct := strings.ToLower(contentType)
	if strings.Contains(ct, "yaml") || strings.Contains(ct, "yml") {
		return NewYAMLCodec()
	}
	return NewJSONCodec()
}
