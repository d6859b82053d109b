package models

// BoardPost is an announcement.
type BoardPost struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Content   string `json:"content"`
	Author    string `json:"author"`
	CreatedAt string `json:"created_at"`
	Views     int    `json:"views"`
}

// BoardPostRequest creates a post; Author is filled from the session.
type BoardPostRequest struct {
	Title   string `json:"title" validate:"required,max=200"`
	Content string `json:"content" validate:"required"`
	Author  string `json:"author"`
}
