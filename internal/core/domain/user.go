package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

type CreateUserInput struct {
	Name         string
	Email        string
	PasswordHash string
}
