package mongodb

import (
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultDatabase is the database every thinkify service reads from.
const DefaultDatabase = "thinkify"

const (
	UsersCollection    = "users"
	TasksCollection    = "tasks"
	PostsCollection    = "posts"
	ProductsCollection = "products"
)

// IndexDeclaration is one index that must exist on a collection.
type IndexDeclaration struct {
	Collection string
	Keys       bson.D
	Unique     bool
}

// Model returns the index model sent to the server. The name is left to
// the server so that it matches indexes created by earlier tooling.
func (d IndexDeclaration) Model() mongo.IndexModel {
	model := mongo.IndexModel{Keys: d.Keys}
	if d.Unique {
		model.Options = options.Index().SetUnique(true)
	}
	return model
}

// Name returns the server's default name for the index, e.g. "email_1".
func (d IndexDeclaration) Name() string {
	parts := make([]string, 0, len(d.Keys)*2)
	for _, k := range d.Keys {
		parts = append(parts, k.Key, fmt.Sprint(k.Value))
	}
	return strings.Join(parts, "_")
}

func (d IndexDeclaration) String() string {
	if d.Unique {
		return d.Collection + "." + d.Name() + " (unique)"
	}
	return d.Collection + "." + d.Name()
}

// Schema is the ordered set of collections and indexes of one database.
type Schema struct {
	Database    string
	Collections []string
	Indexes     []IndexDeclaration
}

func ascending(field string) bson.D {
	return bson.D{{Key: field, Value: 1}}
}

// DefaultSchema returns the thinkify schema.
func DefaultSchema() Schema {
	return Schema{
		Database: DefaultDatabase,
		Collections: []string{
			UsersCollection,
			TasksCollection,
			PostsCollection,
			ProductsCollection,
		},
		Indexes: []IndexDeclaration{
			{Collection: UsersCollection, Keys: ascending("email"), Unique: true},
			{Collection: TasksCollection, Keys: ascending("userId")},
			{Collection: PostsCollection, Keys: ascending("userId")},
			{Collection: ProductsCollection, Keys: ascending("userId")},
		},
	}
}

// WithDatabase returns a copy of s scoped to another database.
func (s Schema) WithDatabase(name string) Schema {
	s.Collections = append([]string(nil), s.Collections...)
	s.Indexes = append([]IndexDeclaration(nil), s.Indexes...)
	s.Database = name
	return s
}

// Steps is the number of create calls a run issues.
func (s Schema) Steps() int {
	return len(s.Collections) + len(s.Indexes)
}

// Validate checks that the declarations are internally consistent.
func (s Schema) Validate() error {
	if s.Database == "" {
		return fmt.Errorf("%w: empty database name", ErrInvalidSchema)
	}
	declared := make(map[string]bool, len(s.Collections))
	for _, c := range s.Collections {
		if c == "" {
			return fmt.Errorf("%w: empty collection name", ErrInvalidSchema)
		}
		if declared[c] {
			return fmt.Errorf("%w: collection %q declared twice", ErrInvalidSchema, c)
		}
		declared[c] = true
	}
	for _, idx := range s.Indexes {
		if len(idx.Keys) == 0 {
			return fmt.Errorf("%w: index on %q has no keys", ErrInvalidSchema, idx.Collection)
		}
		if !declared[idx.Collection] {
			return fmt.Errorf("%w: index %s on undeclared collection", ErrInvalidSchema, idx)
		}
	}
	return nil
}
