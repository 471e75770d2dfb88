package jsdeps

import "fmt"

func NewMalformedHeaderError(path string, line int, text string) *MalformedHeaderError {
	return &MalformedHeaderError{
		Path: path,
		Line: line,
		Text: text,
	}
}

// MalformedHeaderError is returned when a provide/require declaration is
// present but its namespace argument cannot be read.
type MalformedHeaderError struct {
	// Path of the offending file.
	Path string
	// Line is the 1-based line number.
	Line int
	// Text is the content of the line.
	Text string
}

func (e *MalformedHeaderError) Error() string {
	return fmt.Sprintf("%s:%d: malformed namespace declaration: %q", e.Path, e.Line, e.Text)
}
