package task

import (
	"errors"
	"fmt"

	"github.com/kazz187/taskmarket/pkg/cerr"
)

var (
	// ErrInvalidTransition is wrapped by every error rejecting a status change.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrValidation is wrapped by every error rejecting caller input.
	ErrValidation = errors.New("validation failed")
)

func errNotFound(id string) error {
	return cerr.NewError(cerr.NotFound, "task not found", fmt.Errorf("task %s", id))
}

func errInvalidTransition(from, to Status, reason string) error {
	msg := fmt.Sprintf("cannot move task from %s to %s", from, to)
	if reason != "" {
		msg += ": " + reason
	}
	return cerr.NewError(cerr.FailedPrecondition, msg, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, from, to))
}

func errAssigneeLocked(status Status) error {
	return cerr.NewError(cerr.FailedPrecondition, "the assignee can only be set by assigning an open task",
		fmt.Errorf("%w: assignee change on %s task", ErrInvalidTransition, status))
}

func errNotPoster(action string) error {
	return cerr.NewError(cerr.PermissionDenied, fmt.Sprintf("only the poster can %s this task", action), nil)
}
