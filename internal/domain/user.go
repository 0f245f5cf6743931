package domain

import "time"

type User struct {
	ID        int       `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Password  string    `json:"-"`
	Role      string    `json:"role"` // "owner", "operator", "admin"
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type RegisterUserDTO struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Phone    string `json:"phone" binding:"required,min=7,max=20"`
	Password string `json:"password,omitempty"`
	Role     string `json:"role,omitempty"`
}

// Password is optional: owners registered without one log in by phone alone.
type LoginUserDTO struct {
	Phone    string `json:"phone" binding:"required"`
	Password string `json:"password,omitempty"`
}

type AuthResponseDTO struct {
	Token  string `json:"token"`
	UserID int    `json:"user_id"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Role   string `json:"role"`
}
