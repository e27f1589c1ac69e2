package identity

import "time"

// User is a registered account as stored by the credential repository.
type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	TokenVersion int
	CreatedAt    time.Time
}

// Account is the externally visible identity produced by a successful
// sign-in or sign-up.
type Account struct {
	ID    string
	Email string
}

// Grant couples an authenticated account with the access token the provider
// issued for it.
type Grant struct {
	Account     Account
	AccessToken string
}
