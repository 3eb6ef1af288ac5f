package dberrors

import (
	"errors"

	"go.mongodb.org/mongo-driver/mongo"
)

// IsNotFound checks if the error means no document matched the query.
func IsNotFound(err error) bool {
	return errors.Is(err, mongo.ErrNoDocuments)
}

// IsDuplicateKeyError checks if the error is a unique index violation,
// e.g. inserting a team member with an email that is already taken.
func IsDuplicateKeyError(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
