package replay

import (
	"errors"
	"fmt"
)

// NoRecordingsError reports that replay found zero recordings for a function
// identifier. This is a fatal precondition, not an empty result: a replay
// run that matches nothing proves nothing.
type NoRecordingsError struct {
	Identifier string
}

// Error implements the error interface.
func (e *NoRecordingsError) Error() string {
	return fmt.Sprintf("no recordings found for %s", e.Identifier)
}

// IsNoRecordings returns true if the error is a missing-recordings
// precondition failure. Uses errors.As to handle wrapped errors.
func IsNoRecordings(err error) bool {
	var nre *NoRecordingsError
	return errors.As(err, &nre)
}
