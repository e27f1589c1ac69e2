package auth

import "errors"

var (
	// ErrBusy rejects an auth operation while another one is in flight for
	// the same device. The in-flight operation is unaffected.
	ErrBusy = errors.New("another auth operation is in progress")

	// ErrProfileWrite marks a signup whose account was created but whose
	// profile record could not be saved. The user is still signed in; the
	// role defaults to customer until the record exists.
	ErrProfileWrite = errors.New("account created, but profile could not be saved")
)
