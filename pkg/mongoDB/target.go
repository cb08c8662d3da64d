package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// IndexSpec is an index as reported by the server.
type IndexSpec struct {
	Name   string
	Keys   bson.D
	Unique bool
}

// Target is the database the bootstrapper provisions.
type Target interface {
	Name() string
	CreateCollection(ctx context.Context, name string) error
	CreateIndex(ctx context.Context, collection string, model mongo.IndexModel) (string, error)
	CollectionNames(ctx context.Context) ([]string, error)
	IndexSpecs(ctx context.Context, collection string) ([]IndexSpec, error)
}

type mongoTarget struct {
	db *mongo.Database
}

// NewTarget adapts a driver database handle.
func NewTarget(database *mongo.Database) Target {
	return &mongoTarget{db: database}
}

func (t *mongoTarget) Name() string {
	return t.db.Name()
}

func (t *mongoTarget) CreateCollection(ctx context.Context, name string) error {
	return t.db.CreateCollection(ctx, name)
}

func (t *mongoTarget) CreateIndex(ctx context.Context, collection string, model mongo.IndexModel) (string, error) {
	return t.db.Collection(collection).Indexes().CreateOne(ctx, model)
}

func (t *mongoTarget) CollectionNames(ctx context.Context) ([]string, error) {
	return t.db.ListCollectionNames(ctx, bson.D{})
}

func (t *mongoTarget) IndexSpecs(ctx context.Context, collection string) ([]IndexSpec, error) {
	specs, err := t.db.Collection(collection).Indexes().ListSpecifications(ctx)
	if err != nil {
		if isNamespaceNotFound(err) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]IndexSpec, 0, len(specs))
	for _, s := range specs {
		var keys bson.D
		if err := bson.Unmarshal(s.KeysDocument, &keys); err != nil {
			return nil, fmt.Errorf("decode keys of index %q: %w", s.Name, err)
		}
		out = append(out, IndexSpec{
			Name:   s.Name,
			Keys:   keys,
			Unique: s.Unique != nil && *s.Unique,
		})
	}
	return out, nil
}
