package errors

import (
	"strings"
	"unicode"
)

// ValidateItemID validates an item identifier for safety and correctness.
// IDs are opaque handles, so the rules are intentionally conservative:
//   - No empty IDs
//   - No control characters
//   - Maximum length of 256 characters
func ValidateItemID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidItems, "item id cannot be empty")
	}

	if len(id) > 256 {
		return New(ErrCodeInvalidItems, "item id too long (max 256 characters)")
	}

	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidItems, "item id contains invalid control characters")
		}
	}

	return nil
}

// ValidateCloudName validates a saved-cloud name.
// It ensures the name is a simple identifier without path components so it is
// safe to embed in cache keys and store queries.
func ValidateCloudName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidName, "cloud name cannot be empty")
	}

	if len(name) > 128 {
		return New(ErrCodeInvalidName, "cloud name too long (max 128 characters)")
	}

	if strings.ContainsAny(name, "/\\") {
		return New(ErrCodeInvalidName, "cloud name cannot contain path separators")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidName, "cloud name contains invalid control characters")
		}
	}

	return nil
}
