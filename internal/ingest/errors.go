package ingest

import "fmt"

// FormatError reports a malformed input row or header
type FormatError struct {
	Source string // file name or stream label
	Line   int    // 1-based line, 0 when the whole source is at fault
	Column string
	Err    error
}

func (e *FormatError) Error() string {
	switch {
	case e.Line > 0 && e.Column != "":
		return fmt.Sprintf("%s:%d: column %q: %v", e.Source, e.Line, e.Column, e.Err)
	case e.Line > 0:
		return fmt.Sprintf("%s:%d: %v", e.Source, e.Line, e.Err)
	case e.Column != "":
		return fmt.Sprintf("%s: column %q: %v", e.Source, e.Column, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
