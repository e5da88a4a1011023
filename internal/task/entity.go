package task

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/kazz187/taskmarket/internal/user"
)

type Status string

const (
	StatusOpen       Status = "open"
	StatusAssigned   Status = "assigned"
	StatusInProgress Status = "in_progress" // declared for clients, never produced
	StatusCompleted  Status = "completed"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusAssigned, StatusInProgress, StatusCompleted, StatusCancelled:
		return true
	}
	return false
}

type Category string

const (
	CategoryCleaning Category = "Cleaning"
	CategoryDelivery Category = "Delivery"
	CategoryHandyman Category = "Handyman"
	CategoryMoving   Category = "Moving"
	CategoryPetCare  Category = "Pet Care"
	CategoryOther    Category = "Other"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryCleaning,
	CategoryDelivery,
	CategoryHandyman,
	CategoryMoving,
	CategoryPetCare,
	CategoryOther,
}

func (c Category) Valid() bool {
	return slices.Contains(Categories, c)
}

type Coordinates struct {
	Lat float64 `yaml:"lat"`
	Lng float64 `yaml:"lng"`
}

type Task struct {
	ID          string          `yaml:"id"`
	Title       string          `yaml:"title"`
	Description string          `yaml:"description"`
	Category    Category        `yaml:"category"`
	Payment     decimal.Decimal `yaml:"payment"`
	Location    string          `yaml:"location"`
	Coordinates *Coordinates    `yaml:"coordinates,omitempty"`
	Status      Status          `yaml:"status"`
	CreatedAt   time.Time       `yaml:"created_at"`
	DueDate     *time.Time      `yaml:"due_date,omitempty"`
	PostedBy    user.Ref        `yaml:"posted_by"`
	AssignedTo  *user.Ref       `yaml:"assigned_to,omitempty"`
	Tags        []string        `yaml:"tags,omitempty"`
	Attachments []string        `yaml:"attachments,omitempty"`
}

// NewTask holds the caller supplied fields of a task. ID, CreatedAt and
// Status are assigned by the Store.
type NewTask struct {
	Title       string
	Description string
	Category    Category
	Payment     decimal.Decimal
	Location    string
	Coordinates *Coordinates
	DueDate     *time.Time
	PostedBy    user.Ref
	Tags        []string
	Attachments []string
}

// Clone returns a deep copy so that callers never share state with the store.
func (t *Task) Clone() *Task {
	c := *t
	if t.Coordinates != nil {
		coords := *t.Coordinates
		c.Coordinates = &coords
	}
	if t.DueDate != nil {
		due := *t.DueDate
		c.DueDate = &due
	}
	if t.AssignedTo != nil {
		ref := *t.AssignedTo
		c.AssignedTo = &ref
	}
	c.Tags = slices.Clone(t.Tags)
	c.Attachments = slices.Clone(t.Attachments)
	return &c
}

// IsPostedBy reports whether userID is the poster of t.
func (t *Task) IsPostedBy(userID string) bool {
	return userID != "" && t.PostedBy.ID == userID
}
