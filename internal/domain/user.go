package domain

import "time"

type UserRole string

const (
	RoleClient     UserRole = "client"
	RoleFreelancer UserRole = "freelancer"
	RoleAdmin      UserRole = "admin"
)

type User struct {
	ID        string
	Email     string
	Name      string
	Role      UserRole
	CreatedAt time.Time
}

type UserRepository interface {
	GetUserByID(userID string) (*User, error)
	GetUserByEmail(email string) (*User, error)
	CreateUser(user *User) error
}
