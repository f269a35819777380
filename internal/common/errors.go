package common

import "errors"

// ErrRecordNotFound is returned by every store when a record does not exist or is not
// visible to the caller. Callers must not be able to tell the two apart.
var ErrRecordNotFound = errors.New("record not found")
