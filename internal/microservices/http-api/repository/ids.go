package repository

import "github.com/google/uuid"

// uuidKey reports whether id can be compared against a uuid column. Postgres
// fails the whole statement on a malformed uuid literal instead of matching nothing.
func uuidKey(id string) bool {
	if len(id) != 36 {
		return false
	}
	_, err := uuid.Parse(id)
	return err == nil
}
