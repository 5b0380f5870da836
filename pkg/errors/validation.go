package errors

import (
	"regexp"
	"strings"
	"unicode"
)

// engineNameRegex matches plain executable names or paths without shell
// metacharacters.
var engineNameRegex = regexp.MustCompile(`^[A-Za-z0-9._/\\:-]+$`)

// ValidateEngineName validates the rendering engine binary passed to exec.
// The value is never run through a shell, but rejecting odd characters keeps
// config typos from turning into confusing exec errors.
func ValidateEngineName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidEngine, "engine name cannot be empty")
	}
	if len(name) > 256 {
		return New(ErrCodeInvalidEngine, "engine name too long (max 256 characters)")
	}
	if !engineNameRegex.MatchString(name) {
		return New(ErrCodeInvalidEngine, "invalid engine name: %q", name)
	}
	return nil
}

// layoutNameRegex matches Graphviz layout names (dot, neato, sfdp, ...).
var layoutNameRegex = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// ValidateLayoutName validates a layout engine name passed as -K<layout>.
func ValidateLayoutName(name string) error {
	if name == "" {
		return New(ErrCodeInvalidEngine, "layout cannot be empty")
	}
	if !layoutNameRegex.MatchString(name) {
		return New(ErrCodeInvalidEngine, "invalid layout name: %q", name)
	}
	return nil
}

// ValidateOutputPath validates a file path the CLI is about to write.
//
// Validation rules:
//   - Path cannot be empty or whitespace
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidateOutputPath(path string) error {
	if strings.TrimSpace(path) == "" {
		return New(ErrCodeInvalidPath, "output path cannot be empty")
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
