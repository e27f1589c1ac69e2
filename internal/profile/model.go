package profile

// Profile links an authenticated user to its role and contact details.
type Profile struct {
	UserID      string
	FullName    string
	PhoneNumber string
	Role        Role
	Address     string
}
