package errors

import (
	"strings"
	"unicode"
)

// EdgeIDSeparator joins parent and child ids into an edge id. Person ids must
// not contain it, otherwise "a|b"+"c" and "a"+"b|c" would collide.
const EdgeIDSeparator = "|"

// maxIDLength bounds person identifiers read from external sources.
const maxIDLength = 256

// ValidateID validates an opaque person identifier.
//
// The validation rules are:
//   - No empty ids
//   - No control characters
//   - No edge id separator ("|")
//   - Maximum length of 256 bytes
func ValidateID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidID, "id cannot be empty")
	}
	if len(id) > maxIDLength {
		return New(ErrCodeInvalidID, "id too long (max %d characters)", maxIDLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidID, "id contains invalid control characters")
		}
	}
	if strings.Contains(id, EdgeIDSeparator) {
		return New(ErrCodeInvalidID, "id %q contains reserved separator %q", id, EdgeIDSeparator)
	}
	return nil
}

// ValidatePath validates a local file path given on the command line or in
// the configuration file.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}

// ValidateURL validates a URL string for safety.
// It ensures the URL has a safe scheme (http or https).
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidInput, "URL cannot be empty")
	}

	if !strings.HasPrefix(rawURL, "http://") && !strings.HasPrefix(rawURL, "https://") {
		return New(ErrCodeInvalidInput, "URL must use http or https scheme")
	}

	return nil
}

// ValidateSheetID validates a Google Sheets document id. Sheet ids are URL
// path segments, so only URL-safe characters are accepted.
func ValidateSheetID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidSource, "sheet id cannot be empty")
	}
	for _, r := range id {
		if !(r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)) || r > unicode.MaxASCII {
			return New(ErrCodeInvalidSource, "sheet id contains invalid character %q", r)
		}
	}
	return nil
}
