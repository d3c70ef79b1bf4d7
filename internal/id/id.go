package id

import "github.com/google/uuid"

// GenerateID returns a random (version 4) UUID in its canonical string form.
func GenerateID() string {
	return uuid.NewString()
}

// Valid reports whether s parses as a UUID.
func Valid(s string) bool {
	return uuid.Validate(s) == nil
}
