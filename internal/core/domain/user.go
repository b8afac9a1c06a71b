package domain

import "time"

type User struct {
	ID        string
	Name      string
	Title     string
	Role      string
	Email     string
	IsAdmin   bool
	IsActive  bool
	CreatedAt time.Time
}

// Actor is the authenticated caller of an operation.
type Actor struct {
	UserID  string
	IsAdmin bool
}

// Notice is a best-effort message to a task's team.
type Notice struct {
	TaskID string
	Team   []string
	Text   string
}
