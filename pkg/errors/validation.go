package errors

import (
	"strings"
	"unicode"
)

// ValidateCandidateName validates a candidate name from an election file.
//
// The validation rules are intentionally conservative:
//   - No empty names
//   - No control characters
//   - Maximum length of 256 characters
//
// Names are compared verbatim elsewhere, so leading or trailing whitespace
// is rejected rather than trimmed.
func ValidateCandidateName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidElection, "candidate name cannot be empty")
	}

	if len(name) > 256 {
		return New(ErrCodeInvalidElection, "candidate name too long (max 256 characters)")
	}

	for _, r := range name {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidElection, "candidate name contains invalid control characters")
		}
	}

	if strings.TrimSpace(name) != name {
		return New(ErrCodeInvalidElection, "candidate name has leading or trailing whitespace: %q", name)
	}

	return nil
}

// ValidateOutputPath validates a user-supplied output file path for safety.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidInput, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidInput, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "path contains invalid characters")
		}
	}

	return nil
}
