package model

import "time"

// Author is the projection of a user embedded in a blog.
type Author struct {
	ID    int64   `json:"id"`
	Name  *string `json:"name"`
	Email string  `json:"email"`
}

// Blog is a row of the blogs table. AuthorID is nil once the author is deleted.
type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   *string   `json:"content"`
	AuthorID  *int64    `json:"authorId"`
	Author    *Author   `json:"author"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateBlog holds the validated fields of a new blog.
type CreateBlog struct {
	Title    string
	Content  *string
	AuthorID *int64
}

// UpdateBlog holds the columns to change; unset patches are left as stored.
type UpdateBlog struct {
	Title    Patch[string]
	Content  Patch[string]
	AuthorID Patch[int64]
}
