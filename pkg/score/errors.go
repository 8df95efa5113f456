package score

import (
	"fmt"

	"github.com/pkg/errors"
)

// DataError reports input that can not be scored: a required column that is
// missing, an unparseable value or an empty score series.
type DataError struct {
	Op    string
	Field string
	Row   int
	Err   error
}

// NewDataError creates a DataError. Row is 1-based, 0 when the problem is not
// tied to a single row.
func NewDataError(op, field string, row int, err error) *DataError {
	return &DataError{Op: op, Field: field, Row: row, Err: err}
}

func (e *DataError) Error() string {
	msg := e.Op
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Field)
	}
	if e.Row > 0 {
		msg = fmt.Sprintf("%s (row %d)", msg, e.Row)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *DataError) Unwrap() error {
	return e.Err
}

// IsDataError reports whether any error in err's chain is a DataError.
func IsDataError(err error) bool {
	var de *DataError
	return errors.As(err, &de)
}
