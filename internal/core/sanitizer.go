package core

import (
	"strings"
)

// DefaultExtension is probed when a caller does not name an extension.
const DefaultExtension = "default"

// SanitizeLayoutName normalizes a logical layout name into a relative,
// forward-slash path.  Backslashes count as separators, runs of
// separators collapse, and leading/trailing separators and "." segments
// are dropped.  A ".." segment is rejected rather than stripped, so a
// sanitized name can never leave its search root.
func SanitizeLayoutName(name string) (string, error) {
	if strings.ContainsRune(name, 0) {
		return "", &InvalidLayoutNameError{Name: name, Reason: "contains NUL byte"}
	}

	segments := strings.FieldsFunc(name, isSeparator)
	kept := segments[:0]
	for _, segment := range segments {
		switch segment {
		case ".":
			continue
		case "..":
			return "", &InvalidLayoutNameError{Name: name, Reason: "parent directory segment"}
		}
		kept = append(kept, segment)
	}
	if len(kept) == 0 {
		return "", &InvalidLayoutNameError{Name: name, Reason: "empty after normalization"}
	}
	return strings.Join(kept, "/"), nil
}

// SanitizeExtension trims one leading dot and falls back to
// DefaultExtension when ext is blank.
func SanitizeExtension(ext string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(ext), ".")
	if trimmed == "" {
		return DefaultExtension, nil
	}
	if strings.ContainsAny(trimmed, "/\\\x00") || trimmed == ".." || strings.HasPrefix(trimmed, ".") {
		return "", &InvalidLayoutNameError{Name: ext, Reason: "malformed extension"}
	}
	return trimmed, nil
}

func isSeparator(r rune) bool {
	return r == '/' || r == '\\'
}
