package session

import "errors"

// ErrSessionNotFound is returned when a chat has no stored session
var ErrSessionNotFound = errors.New("session not found")
