package task

import (
	"context"
	"slices"

	"github.com/kazz187/taskmarket/internal/user"
	"github.com/kazz187/taskmarket/pkg/future"
)

// transitions is the lifecycle state machine. Completed and cancelled are
// terminal; in_progress is never entered.
var transitions = map[Status][]Status{
	StatusOpen:     {StatusAssigned},
	StatusAssigned: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether a task may move from one status to another.
func CanTransition(from, to Status) bool {
	return slices.Contains(transitions[from], to)
}

// checkTransition validates the status change between two versions of the
// same task. Keeping the status is not a transition. The assignee is set by
// the open to assigned transition and is fixed otherwise.
func checkTransition(before, after *Task) error {
	if before.Status != after.Status && !CanTransition(before.Status, after.Status) {
		return errInvalidTransition(before.Status, after.Status, "")
	}
	if before.Status != StatusOpen || after.Status != StatusAssigned {
		if !sameRef(before.AssignedTo, after.AssignedTo) {
			return errAssigneeLocked(before.Status)
		}
		return nil
	}
	if before.AssignedTo != nil {
		return errInvalidTransition(before.Status, after.Status, "task already has an assignee")
	}
	if after.AssignedTo == nil {
		return errInvalidTransition(before.Status, after.Status, "an assignee is required")
	}
	return nil
}

// sameRef compares user identity; the snapshot fields may differ.
func sameRef(a, b *user.Ref) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.ID == b.ID
}

// Lifecycle drives tasks through their states on behalf of an acting user.
// Only the poster of a task may move it.
type Lifecycle struct {
	store *Store
}

func NewLifecycle(store *Store) *Lifecycle {
	return &Lifecycle{store: store}
}

func posterOnly(actor user.Ref, action string) func(*Task) error {
	return func(t *Task) error {
		if !t.IsPostedBy(actor.ID) {
			return errNotPoster(action)
		}
		return nil
	}
}

// Assign hands an open task to helper.
func (l *Lifecycle) Assign(ctx context.Context, id string, actor, helper user.Ref) *future.Future[*Task] {
	status := StatusAssigned
	return l.store.update(ctx, id, posterOnly(actor, "assign"), Patch{
		Status:     &status,
		AssignedTo: &helper,
	})
}

// Complete marks an assigned task as done.
func (l *Lifecycle) Complete(ctx context.Context, id string, actor user.Ref) *future.Future[*Task] {
	status := StatusCompleted
	return l.store.update(ctx, id, posterOnly(actor, "complete"), Patch{Status: &status})
}

// Cancel withdraws an assigned task.
func (l *Lifecycle) Cancel(ctx context.Context, id string, actor user.Ref) *future.Future[*Task] {
	status := StatusCancelled
	return l.store.update(ctx, id, posterOnly(actor, "cancel"), Patch{Status: &status})
}
