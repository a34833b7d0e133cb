package mutate

import "fmt"

type NotFoundError struct {
	Kind string
	ID   string
}

func (e NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// RejectedError means the drop was refused and the layout left untouched.
type RejectedError struct {
	Reason Reason
}

func (e RejectedError) Error() string {
	return "drop rejected: " + string(e.Reason)
}
