package rpc

import (
	"time"

	"github.com/shopspring/decimal"
)

type UserRef struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Rating      float64 `json:"rating"`
	ReviewCount int     `json:"reviewCount"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type Task struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Payment     decimal.Decimal `json:"payment"`
	Location    string          `json:"location"`
	Coordinates *Coordinates    `json:"coordinates,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"createdAt"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	PostedBy    UserRef         `json:"postedBy"`
	AssignedTo  *UserRef        `json:"assignedTo,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Attachments []string        `json:"attachments,omitempty"`
}

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Bio            string    `json:"bio,omitempty"`
	Avatar         string    `json:"avatar,omitempty"`
	Rating         float64   `json:"rating"`
	ReviewCount    int       `json:"reviewCount"`
	Location       string    `json:"location,omitempty"`
	JoinedDate     time.Time `json:"joinedDate"`
	TasksCompleted int       `json:"tasksCompleted"`
	TasksPosted    int       `json:"tasksPosted"`
}

type CreateTaskRequest struct {
	Title       string          `json:"title"`
	Description string          `json:"description"`
	Category    string          `json:"category"`
	Payment     decimal.Decimal `json:"payment"`
	Location    string          `json:"location"`
	Coordinates *Coordinates    `json:"coordinates,omitempty"`
	DueDate     *time.Time      `json:"dueDate,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Attachments []string        `json:"attachments,omitempty"`
}

type CreateTaskResponse struct {
	Task *Task `json:"task"`
}

type GetTaskRequest struct {
	ID string `json:"id"`
}

type GetTaskResponse struct {
	Task *Task `json:"task"`
}

type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// ListTasksRequest selects and orders tasks. Empty fields do not constrain
// the result.
type ListTasksRequest struct {
	Category   string      `json:"category,omitempty"`
	PostedBy   string      `json:"postedBy,omitempty"`
	PriceRange *PriceRange `json:"priceRange,omitempty"`
	Distance   float64     `json:"distance,omitempty"`
	SortBy     string      `json:"sortBy,omitempty"`
}

type ListTasksResponse struct {
	Tasks []*Task `json:"tasks"`
}

// UpdateTaskRequest patches a task. Absent fields are left unchanged; an
// empty list clears tags or attachments.
type UpdateTaskRequest struct {
	ID           string           `json:"id"`
	Title        *string          `json:"title,omitempty"`
	Description  *string          `json:"description,omitempty"`
	Category     *string          `json:"category,omitempty"`
	Payment      *decimal.Decimal `json:"payment,omitempty"`
	Location     *string          `json:"location,omitempty"`
	Coordinates  *Coordinates     `json:"coordinates,omitempty"`
	Status       *string          `json:"status,omitempty"`
	DueDate      *time.Time       `json:"dueDate,omitempty"`
	AssignedToID *string          `json:"assignedToId,omitempty"`
	Tags         []string         `json:"tags"`
	Attachments  []string         `json:"attachments"`
}

type UpdateTaskResponse struct {
	Task *Task `json:"task"`
}

type DeleteTaskRequest struct {
	ID string `json:"id"`
}

type DeleteTaskResponse struct {
	Deleted bool `json:"deleted"`
}

type AssignTaskRequest struct {
	ID       string `json:"id"`
	HelperID string `json:"helperId"`
}

type AssignTaskResponse struct {
	Task *Task `json:"task"`
}

type CompleteTaskRequest struct {
	ID string `json:"id"`
}

type CompleteTaskResponse struct {
	Task *Task `json:"task"`
}

type CancelTaskRequest struct {
	ID string `json:"id"`
}

type CancelTaskResponse struct {
	Task *Task `json:"task"`
}

// SignupRequest registers a user. Without a password the account signs in
// with the server's demo password, like the seeded users.
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password,omitempty"`
	Phone    string `json:"phone,omitempty"`
	Bio      string `json:"bio,omitempty"`
	Location string `json:"location,omitempty"`
}

type SignupResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  *User  `json:"user"`
	Token string `json:"token"`
}

type LogoutRequest struct{}

type LogoutResponse struct{}

type GetCurrentUserRequest struct{}

type GetCurrentUserResponse struct {
	User *User `json:"user"`
}

type GetUserRequest struct {
	ID string `json:"id"`
}

type GetUserResponse struct {
	User *User `json:"user"`
}
