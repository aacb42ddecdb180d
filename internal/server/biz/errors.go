package biz

import "errors"

var (
	// ErrInvalidToken covers malformed, forged and stale bearer tokens, and
	// tokens whose account no longer exists. Callers must not distinguish
	// the cases.
	ErrInvalidToken = errors.New("invalid token")
	// ErrLoginFailed is returned for unknown usernames and wrong passwords
	// alike.
	ErrLoginFailed = errors.New("login failed")
	// ErrCommentSave means the comment row itself could not be written.
	ErrCommentSave = errors.New("failed to save comment")
	// ErrCommentLink means the comment row was written but the parent post's
	// comment list could not be updated. The comment is not rolled back.
	ErrCommentLink = errors.New("failed to link comment to post")
	// ErrInternal hides storage details from the transport.
	ErrInternal = errors.New("server internal error, please try again later")
)
