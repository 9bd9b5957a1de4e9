package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles. Admins are promoted manually; registration always yields RoleUser.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is an app user. Email and phone are both optional but at least one
// must be present; each is unique across users when set (sparse indexes).
type User struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name           string             `bson:"name,omitempty" json:"name,omitempty"`
	Email          string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone          string             `bson:"phone,omitempty" json:"phone,omitempty"`
	HashedPassword string             `bson:"hashed_password" json:"-"` // never serialised
	Role           string             `bson:"role" json:"-"`
	CreatedAt      time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time          `bson:"updated_at" json:"updated_at"`
}

// PublicUser is the user view returned by auth endpoints.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// Public returns the externally visible view of the user.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
	}
}

// RegisterInput is the request body for POST /api/auth/register.
type RegisterInput struct {
	Name     *string `json:"name" validate:"nullable,max=120"`
	Email    *string `json:"email" validate:"nullable,email"`
	Phone    *string `json:"phone" validate:"nullable,min=7,max=20"`
	Password string  `json:"password" validate:"required,min=6"`
}

// LoginInput is the request body for POST /api/auth/login.
type LoginInput struct {
	Email    *string `json:"email" validate:"nullable,email"`
	Phone    *string `json:"phone" validate:"nullable"`
	Password string  `json:"password" validate:"required"`
}

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string     `json:"access_token"`
	TokenType   string     `json:"token_type"`
	User        PublicUser `json:"user"`
}

func strOrEmpty(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
