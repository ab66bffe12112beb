package model

import "time"

// User is a row of the users table. Email is unique.
type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      *string   `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateUser holds the validated fields of a new user.
type CreateUser struct {
	Email string
	Name  *string
}

// UpdateUser holds the columns to change; unset patches are left as stored.
type UpdateUser struct {
	Email Patch[string]
	Name  Patch[string]
}
