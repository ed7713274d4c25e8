package store

import "errors"

var (
	// ErrNotFound covers a missing post as well as a vanished owner.
	ErrNotFound = errors.New("not found")
	// ErrForbidden means the requester does not own the target post.
	ErrForbidden = errors.New("forbidden")
	// ErrMissingField means a required field was empty.
	ErrMissingField = errors.New("required field missing")
	// ErrEmptyComment means the comment text was empty after trimming.
	ErrEmptyComment = errors.New("comment cannot be empty")
)
