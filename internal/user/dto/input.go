package dto

import "time"

type CredentialsInput struct {
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	UserID      int64
	Email       string
	IsAdmin     bool
}
