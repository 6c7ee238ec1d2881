package errors

import (
	"strings"
	"unicode"
)

// ValidateID validates a node or group identifier from input descriptors.
// Identifiers end up as XML attribute values and Mermaid node names, so the
// validation rules are intentionally conservative:
//   - No empty identifiers
//   - No control characters or null bytes
//   - No whitespace
//   - Maximum length of 128 characters
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "identifier cannot be empty")
	}

	if len(id) > 128 {
		return New(ErrCodeInvalidID, "identifier too long (max 128 characters): %q", id[:32]+"...")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "identifier contains control characters")
		}
		if unicode.IsSpace(r) {
			return New(ErrCodeInvalidID, "identifier contains whitespace: %q", id)
		}
	}

	if strings.ContainsRune(id, '\x00') {
		return New(ErrCodeInvalidID, "identifier contains null byte")
	}

	return nil
}
