package model

import "time"

// User is an account known to the auth collaborator.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Member returns the user's representation as a list member.
func (u User) Member() Member {
	return Member{ID: u.ID, Name: u.Name, Email: u.Email, Avatar: u.Avatar}
}

// Session is an authenticated browser session.
type Session struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
