package model

import "time"

// Task is an externally owned unit of work that intervals can be attached to.
// The interval engine only reads CustomDuration and writes TotalTimeSpent and
// LastStartedAt.
type Task struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	// CustomDuration overrides the focus length, in minutes.
	CustomDuration *int `json:"customDuration,omitempty"`
	// TotalTimeSpent is the cumulative tracked time in seconds.
	TotalTimeSpent int64     `json:"totalTimeSpent"`
	LastStartedAt  *int64    `json:"lastStartedAt,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
