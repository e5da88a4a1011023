package task

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kazz187/taskmarket/internal/user"
)

// Patch lists the fields of a task that may change after creation. A nil
// field is left untouched. ID, CreatedAt and PostedBy cannot be patched.
type Patch struct {
	Title       *string
	Description *string
	Category    *Category
	Payment     *decimal.Decimal
	Location    *string
	Coordinates *Coordinates
	Status      *Status
	DueDate     *time.Time
	AssignedTo  *user.Ref
	// Tags and Attachments replace the whole list when non-nil; pass an
	// empty slice to clear them.
	Tags        []string
	Attachments []string
}

// apply merges p into t, last write wins per field.
func (p Patch) apply(t *Task) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Category != nil {
		t.Category = *p.Category
	}
	if p.Payment != nil {
		t.Payment = *p.Payment
	}
	if p.Location != nil {
		t.Location = *p.Location
	}
	if p.Coordinates != nil {
		coords := *p.Coordinates
		t.Coordinates = &coords
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.AssignedTo != nil {
		ref := *p.AssignedTo
		t.AssignedTo = &ref
	}
	if p.Tags != nil {
		t.Tags = slices.Clone(p.Tags)
	}
	if p.Attachments != nil {
		t.Attachments = slices.Clone(p.Attachments)
	}
}
