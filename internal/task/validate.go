package task

import (
	"fmt"
	"strings"
	"time"

	"github.com/kazz187/taskmarket/pkg/cerr"
)

type violation struct {
	field string
	rule  string
	msg   string
}

type violations []violation

func (v *violations) add(field, rule, msg string) {
	*v = append(*v, violation{field: field, rule: rule, msg: msg})
}

func (v violations) err(msg string) error {
	if len(v) == 0 {
		return nil
	}
	fields := make([]string, len(v))
	for i, x := range v {
		fields[i] = x.field
	}
	e := cerr.NewError(cerr.InvalidArgument, msg,
		fmt.Errorf("%w: %s", ErrValidation, strings.Join(fields, ", ")))
	for _, x := range v {
		e.WithViolation(x.field+"."+x.rule, x.msg)
	}
	return e
}

// Validate checks a task before it is created. now is the creation time the
// due date is compared against.
func (nt NewTask) Validate(now time.Time) error {
	var v violations
	if strings.TrimSpace(nt.Title) == "" {
		v.add("title", "required", "title is required")
	}
	if !nt.Category.Valid() {
		v.add("category", "in", fmt.Sprintf("unknown category %q", nt.Category))
	}
	if nt.Payment.IsNegative() {
		v.add("payment", "gte", "payment must not be negative")
	}
	if nt.DueDate != nil && nt.DueDate.Before(now) {
		v.add("due_date", "gte", "due date must not be in the past")
	}
	if nt.PostedBy.ID == "" {
		v.add("posted_by", "required", "poster is required")
	}
	return v.err("invalid task")
}

// checkDueDate enforces dueDate >= createdAt on a patched task.
func checkDueDate(t *Task) error {
	var v violations
	if t.DueDate != nil && t.DueDate.Before(t.CreatedAt) {
		v.add("due_date", "gte", "due date must not be before the task was created")
	}
	return v.err("invalid task")
}

// Validate checks the fields a patch sets. Status changes are checked by the
// Store against the lifecycle instead.
func (p Patch) Validate() error {
	var v violations
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		v.add("title", "required", "title must not be empty")
	}
	if p.Category != nil && !p.Category.Valid() {
		v.add("category", "in", fmt.Sprintf("unknown category %q", *p.Category))
	}
	if p.Payment != nil && p.Payment.IsNegative() {
		v.add("payment", "gte", "payment must not be negative")
	}
	if p.Status != nil && !p.Status.Valid() {
		v.add("status", "in", fmt.Sprintf("unknown status %q", *p.Status))
	}
	if p.AssignedTo != nil && p.AssignedTo.ID == "" {
		v.add("assigned_to", "required", "assignee id is required")
	}
	return v.err("invalid task")
}
