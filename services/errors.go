package services

import "errors"

// Service-level error kinds. Controllers map these onto HTTP statuses; none
// are retried automatically — retry is always a fresh user action.
var (
	// ErrCodeNotFound covers every way a supplied code can be unusable:
	// never issued, expired, superseded by a reissue, or already redeemed.
	// Callers are deliberately not told which.
	ErrCodeNotFound = errors.New("interaction code not found or expired")

	// ErrSelfRedemption is returned when a user redeems their own code.
	ErrSelfRedemption = errors.New("cannot confirm an interaction with yourself")

	// ErrInvalidPeer is returned when the two participants are the same
	// user, or the named peer does not exist.
	ErrInvalidPeer = errors.New("invalid peer")

	// ErrNotAuthorized is returned when the caller is not the party a
	// request or submission belongs to.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrAlreadyResolved is returned when a pending record has already
	// reached a terminal state (or was consumed by a confirmation).
	ErrAlreadyResolved = errors.New("request already resolved")

	// ErrTokenConflict reports that the transaction's token condition
	// failed: the authorizing token was consumed or changed between read
	// and commit. Callers translate it into their own token error.
	ErrTokenConflict = errors.New("authorizing token no longer valid")

	// ErrCommitFailed reports a store failure during the commit
	// transaction. Nothing was written and the token remains valid.
	ErrCommitFailed = errors.New("interaction commit failed")

	// ErrIssuanceFailed reports a store failure while persisting a new code.
	ErrIssuanceFailed = errors.New("code issuance failed")
)
