package mdl

import "fmt"

// FormatError reports a malformed container field. Decoding stops at the
// first one: the on-disk layout past a misparsed field cannot be
// resynchronized, so every format anomaly is fatal for the input.
type FormatError struct {
	Offset int64  // stream offset just past the offending field
	Reason string // e.g. "magic mismatch", "suspicious group size"
	Value  int64  // the offending value
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("mdl: %s: value %d at offset %d", e.Reason, e.Value, e.Offset)
}
