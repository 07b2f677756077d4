package codec

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"netlayout/internal/domain"
	"netlayout/internal/interaction"
)

var validate = validator.New()

// Validate checks field constraints of a document. Referential integrity is
// checked when the document is loaded into a store.
func Validate(doc *domain.Document) error {
	return validateStruct("document", doc)
}

// ValidateEvent checks that an input event carries the fields its type needs
func ValidateEvent(ev interaction.Event) error {
	return validateStruct("event", ev)
}

// DecodeEvents reads a single JSON event or a JSON array of events
func DecodeEvents(r io.Reader) ([]interaction.Event, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decode event: %w", err)
	}

	var events []interaction.Event
	if trimmed := strings.TrimSpace(string(raw)); strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(raw, &events); err != nil {
			return nil, fmt.Errorf("decode events: %w", err)
		}
	} else {
		var ev interaction.Event
		if err := json.Unmarshal(raw, &ev); err != nil {
			return nil, fmt.Errorf("decode event: %w", err)
		}
		events = append(events, ev)
	}

	for i, ev := range events {
		if err := ValidateEvent(ev); err != nil {
			return nil, fmt.Errorf("event %d: %w", i, err)
		}
	}
	return events, nil
}

func validateStruct(kind string, v interface{}) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("invalid %s: %w", kind, err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return fmt.Errorf("invalid %s: %s", kind, strings.Join(msgs, "; "))
}
