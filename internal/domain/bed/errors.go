package bed

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repository lookups when no bed matches.
var ErrNotFound = errors.New("bed not found")

// ErrOccupied is returned by Assign when the resolved bed already has an
// occupant. Assignment never overrides an occupant; the bed must be vacated
// through the upsert path first.
var ErrOccupied = errors.New("bed already occupied")

// ValidationError reports malformed or missing input.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// NotFoundError reports an assignment against a bed the registry does not
// know, carrying the submitted keys for the client-facing message.
type NotFoundError struct {
	BedNo string
	Ward  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no bed with bed_no=%s and ward=%s", e.BedNo, e.Ward)
}
