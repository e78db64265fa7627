package recommend

import (
	"errors"
	"fmt"
)

// ErrEmptyRoster is returned when an evaluation is requested with no
// candidates. No partial work is performed.
var ErrEmptyRoster = errors.New("recommend: empty roster")

// InvalidRequirementError is returned when the dispatch requirement fails
// boundary validation. No partial work is performed.
type InvalidRequirementError struct {
	Reason string
}

func (e *InvalidRequirementError) Error() string {
	return fmt.Sprintf("recommend: invalid requirement: %s", e.Reason)
}
