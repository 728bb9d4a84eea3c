package program

import "fmt"

// UnresolvedLabelError is raised by Backpatch when a branch or data
// reference names a label that does not exist in the program. Fatal; the
// missing name is reported.
type UnresolvedLabelError struct {
	Label string
}

func (e *UnresolvedLabelError) Error() string {
	return fmt.Sprintf("program: unresolved label %q", e.Label)
}
