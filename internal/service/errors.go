package service

import "errors"

var (
	// ErrInvalidCategory rejects ledger operations on categories outside
	// the fixed set. Nothing is written when it is returned.
	ErrInvalidCategory = errors.New("invalid category")

	// ErrNoToken means the provider was never authenticated.
	ErrNoToken = errors.New("no token found")

	// ErrRefreshFailed means the stored credentials expired and could not
	// be refreshed; the user has to re-authenticate.
	ErrRefreshFailed = errors.New("token expired and refresh failed")
)
