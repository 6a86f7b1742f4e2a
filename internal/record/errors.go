package record

import "errors"

// ErrTooManyFields indicates a row with more fields than the schema has
// columns. The excess fields have no column to land in, so the whole
// decode call fails rather than silently truncating the row.
var ErrTooManyFields = errors.New("row has more fields than schema columns")
