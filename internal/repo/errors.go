package repo

import "fmt"

// ValidationError indicates the caller supplied unusable input, such as
// a delete with no id or a task with an empty title. It carries enough
// detail to correct the input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError indicates an operation referenced an id that does not
// exist in the document.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Kind, e.ID)
}
