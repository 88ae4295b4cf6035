package extractor

import (
	"errors"
	"fmt"
)

// ErrMalformedDocument reports a document without the expected schedule
// structure.
var ErrMalformedDocument = errors.New("expected schedule table not found in document")

// RowError reports a meeting row whose cell failed field parsing. Row is the
// 1-based index of the data row within its course block.
type RowError struct {
	Course string
	Row    int
	Field  string
	Err    error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("course %s, row %d: bad %s: %v", e.Course, e.Row, e.Field, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}
