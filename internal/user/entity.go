package user

import "time"

type User struct {
	ID             string    `yaml:"id"`
	Name           string    `yaml:"name"`
	Email          string    `yaml:"email"`
	Phone          string    `yaml:"phone,omitempty"`
	Bio            string    `yaml:"bio,omitempty"`
	Avatar         string    `yaml:"avatar,omitempty"`
	Rating         float64   `yaml:"rating"`
	ReviewCount    int       `yaml:"review_count"`
	Location       string    `yaml:"location,omitempty"`
	JoinedDate     time.Time `yaml:"joined_date"`
	TasksCompleted int       `yaml:"tasks_completed"`
	TasksPosted    int       `yaml:"tasks_posted"`
	// PasswordHash is a bcrypt hash. Accounts without one sign in with the
	// demo password.
	PasswordHash string `yaml:"password_hash,omitempty"`
}

// Ref is a snapshot of the public part of a user, taken at the moment a task
// references them. It is not kept in sync with the user afterwards.
type Ref struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Rating      float64 `yaml:"rating"`
	ReviewCount int     `yaml:"review_count"`
}

func (u *User) Ref() Ref {
	return Ref{
		ID:          u.ID,
		Name:        u.Name,
		Rating:      u.Rating,
		ReviewCount: u.ReviewCount,
	}
}

func (u *User) Clone() *User {
	c := *u
	return &c
}
