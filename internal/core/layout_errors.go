package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrLayoutNotFound matches every *LayoutNotFoundError via errors.Is.
	ErrLayoutNotFound = errors.New("layout not found")

	// ErrInvalidLayoutName matches every *InvalidLayoutNameError via errors.Is.
	ErrInvalidLayoutName = errors.New("invalid layout name")
)

// LayoutNotFoundError reports that no search path holds a file for the
// sanitized name and extension.
type LayoutNotFoundError struct {
	Layout    string
	Extension string
	Searched  []string
}

func (e *LayoutNotFoundError) Error() string {
	if len(e.Searched) == 0 {
		return fmt.Sprintf("layout %q (.%s) not found: no search paths registered", e.Layout, e.Extension)
	}
	return fmt.Sprintf("layout %q (.%s) not found in %s", e.Layout, e.Extension, strings.Join(e.Searched, ", "))
}

func (e *LayoutNotFoundError) Is(target error) bool {
	return target == ErrLayoutNotFound
}

// InvalidLayoutNameError reports a name or extension that cannot be turned
// into a path below a search root.
type InvalidLayoutNameError struct {
	Name   string
	Reason string
}

func (e *InvalidLayoutNameError) Error() string {
	return fmt.Sprintf("invalid layout name %q: %s", e.Name, e.Reason)
}

func (e *InvalidLayoutNameError) Is(target error) bool {
	return target == ErrInvalidLayoutName
}
