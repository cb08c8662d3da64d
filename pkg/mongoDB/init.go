package mongodb

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
)

// InitAll ensures the thinkify collections and indexes exist in database.
// The schema is scoped to database's own name, so MONGODB_DATABASE
// overrides are honoured. Call this after db.Initialize().
func InitAll(ctx context.Context, database *mongo.Database, opts ...Option) (*Report, error) {
	target := NewTarget(database)
	return NewBootstrapper(target, DefaultSchema().WithDatabase(database.Name()), opts...).Run(ctx)
}

// VerifyAll compares database against the thinkify schema.
func VerifyAll(ctx context.Context, database *mongo.Database) (*Verification, error) {
	return Verify(ctx, NewTarget(database), DefaultSchema().WithDatabase(database.Name()))
}
