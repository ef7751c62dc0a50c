package domain

import "time"

// User is an account that can log in and place orders.
type User struct {
	ID           int64
	FirstName    string
	LastName     string
	Email        string
	PhoneNumber  string
	PasswordHash string
	UserType     Role
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
