package models

import "time"

type Post struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"-"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	Author    *Author   `json:"author"`
}

// HasAuthor reports whether the post carries a usable author projection.
func (p Post) HasAuthor() bool {
	return p.Author != nil && p.Author.ID != "" && p.Author.Name != ""
}

type Profile struct {
	User  User   `json:"user"`
	Posts []Post `json:"posts"`
}
