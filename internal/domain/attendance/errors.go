package attendance

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingInput is returned when the branch selection or the live
	// coordinates are absent.
	ErrMissingInput = errors.New("select a branch and enable location first")

	// ErrBranchGone is returned when the selected branch no longer resolves
	// in the registry. No record is produced.
	ErrBranchGone = errors.New("selected branch no longer exists")

	ErrRecordNotFound = errors.New("attendance record not found")
)

// OutOfRangeError rejects an attempt made outside the branch geofence. The
// distance is rounded for the message only; the raw float was used for the
// threshold comparison.
type OutOfRangeError struct {
	DistanceMeters int
	RadiusMeters   int
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("you are %dm away from the branch; allowed range is %dm", e.DistanceMeters, e.RadiusMeters)
}
