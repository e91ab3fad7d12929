// Package uuid generates and validates the string identifiers used as
// primary keys throughout Shargea.
package uuid

import googleuuid "github.com/google/uuid"

// New returns a UUIDv7 string. Version 7 IDs embed a millisecond timestamp,
// so rows sort roughly by creation time and primary-key indexes stay
// append-mostly.
func New() string {
	id, err := googleuuid.NewV7()
	if err != nil {
		// NewV7 only fails when the random source does; fall back to v4.
		return googleuuid.New().String()
	}
	return id.String()
}

// Parse validates a UUID string and returns its canonical form.
func Parse(s string) (string, error) {
	parsed, err := googleuuid.Parse(s)
	if err != nil {
		return "", err
	}
	return parsed.String(), nil
}

// IsValid reports whether s is a well-formed UUID.
func IsValid(s string) bool {
	_, err := googleuuid.Parse(s)
	return err == nil
}
