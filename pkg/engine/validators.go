package engine

import "github.com/tradecircle/backend/pkg/validate"

// requireNonEmptyMax applies the "empty after trim -> XEmpty, over max ->
// XTooLong" rule shared by every required text field.
func requireNonEmptyMax(v string, max int, emptyErr, tooLongErr *Error) error {
	if !validate.NotEmpty(v) {
		return emptyErr
	}
	if !validate.MaxLen(v, max) {
		return tooLongErr
	}
	return nil
}

// requireMax applies an upper bound only, for fields that may be empty
// (bio, KVK number, initial message, project description).
func requireMax(v string, max int, tooLongErr *Error) error {
	if !validate.MaxLen(v, max) {
		return tooLongErr
	}
	return nil
}
