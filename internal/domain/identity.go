package domain

import "time"

// Identity is the verified subject extracted from a bearer credential.
// It lives for the duration of a single request and is never persisted.
type Identity struct {
	SubjectID string
	ExpiresAt time.Time
}
