package cli

import (
	"errors"
	"fmt"

	"lunchpad-cli/internal/mutate"
)

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

// explainDrop turns a rejected drop into a message naming the ids involved.
func explainDrop(err error, draggedID, targetID string) error {
	var rej mutate.RejectedError
	if !errors.As(err, &rej) {
		return err
	}
	switch rej.Reason {
	case mutate.ReasonSameItem:
		return fmt.Errorf("%w: cannot drop %s onto itself", err, draggedID)
	case mutate.ReasonDraggedFolder:
		return fmt.Errorf("%w: %s is a folder; folders cannot be dropped onto %s", err, draggedID, targetID)
	case mutate.ReasonAlreadyInside:
		return fmt.Errorf("%w: folder %s already holds %s", err, targetID, draggedID)
	default:
		return err
	}
}
