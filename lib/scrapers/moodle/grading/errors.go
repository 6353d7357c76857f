package grading

import "fmt"

// NotFoundError means an expected element was absent where the contract
// declares it mandatory, e.g. no course link matched the caller's name.
type NotFoundError struct {
	Course string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no course link matching %q", e.Course)
}

// StructureError means a mandatory extraction target is missing from
// the page, the pipeline cannot proceed without it.
type StructureError struct {
	Target string
}

func (e *StructureError) Error() string {
	return fmt.Sprintf("missing mandatory element: %s", e.Target)
}

// MalformedRowError means a grading row has no student-identity anchor.
// Fabricating an empty student would poison the result set, so the row
// aborts the whole extraction instead.
type MalformedRowError struct {
	RowId string
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("grading row %q is missing its student anchor", e.RowId)
}
