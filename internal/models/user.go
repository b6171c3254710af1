package models

import "time"

type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Bio          string    `json:"bio"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Public returns a copy of u without the password hash.
func (u User) Public() User {
	u.PasswordHash = ""
	return u
}

// Author is the public projection of a user embedded into posts.
type Author struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
