package models

import "time"

// Callback is a "call me back" request left on the site.
type Callback struct {
	Name      string    `json:"name" validate:"required"`
	Phone     string    `json:"phone" validate:"required"`
	Email     string    `json:"email"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	ID        int64     `json:"id"`
}

// Subscription is a newsletter sign-up.
type Subscription struct {
	Email     string    `json:"email" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	ID        int64     `json:"id"`
}
