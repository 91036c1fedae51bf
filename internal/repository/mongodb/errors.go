package mongodb

import (
	"go.mongodb.org/mongo-driver/mongo"

	"eventbooking/internal/domain"
)

// mapWriteError turns a duplicate key error into a UniqueConstraintError for
// index; every collection here has exactly one unique index besides _id.
func mapWriteError(collection, index string, err error) error {
	if mongo.IsDuplicateKeyError(err) {
		return &domain.UniqueConstraintError{Collection: collection, Index: index, Err: err}
	}
	return err
}
