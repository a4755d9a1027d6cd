package mongodb

import (
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/inkwellapp/inkwell-server/internal/domain"
)

// parseObjectID converts a path-segment identifier into an ObjectID.
// Malformed identifiers are a client error, never a crash: callers get a
// domain validation error that the HTTP adapter maps to a 400.
func parseObjectID(field, id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, domain.NewValidationErrorWithValue(
			field,
			"must be a valid object id",
			id,
		)
	}

	return oid, nil
}
