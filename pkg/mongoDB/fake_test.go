package mongodb

import (
	"context"
	"fmt"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// fakeTarget mimics the server semantics the bootstrapper relies on:
// NamespaceExists on a second create, no-op on an identical index,
// conflicts on a differing one and E11000 when unique data is duplicated.
type fakeTarget struct {
	name          string
	collections   map[string]bool
	indexes       map[string][]IndexSpec
	docs          map[string][]bson.M
	collectionErr map[string]error
	indexErr      map[string]error
	calls         []string
}

func newFakeTarget(name string) *fakeTarget {
	return &fakeTarget{
		name:          name,
		collections:   map[string]bool{},
		indexes:       map[string][]IndexSpec{},
		docs:          map[string][]bson.M{},
		collectionErr: map[string]error{},
		indexErr:      map[string]error{},
	}
}

func (f *fakeTarget) Name() string { return f.name }

func (f *fakeTarget) ensureNamespace(name string) {
	if f.collections[name] {
		return
	}
	f.collections[name] = true
	f.indexes[name] = append(f.indexes[name], IndexSpec{Name: "_id_", Keys: bson.D{{Key: "_id", Value: int32(1)}}})
}

func (f *fakeTarget) CreateCollection(_ context.Context, name string) error {
	f.calls = append(f.calls, "collection:"+name)
	if err := f.collectionErr[name]; err != nil {
		return err
	}
	if f.collections[name] {
		return mongo.CommandError{
			Code:    48,
			Name:    "NamespaceExists",
			Message: fmt.Sprintf("Collection %s.%s already exists.", f.name, name),
		}
	}
	f.ensureNamespace(name)
	return nil
}

func (f *fakeTarget) CreateIndex(_ context.Context, collection string, model mongo.IndexModel) (string, error) {
	keys := model.Keys.(bson.D)
	unique := model.Options != nil && model.Options.Unique != nil && *model.Options.Unique
	name := IndexDeclaration{Keys: keys}.Name()
	f.calls = append(f.calls, "index:"+collection+"."+name)

	if err := f.indexErr[collection]; err != nil {
		return "", err
	}
	for _, s := range f.indexes[collection] {
		if s.Name != name && !sameKeys(s.Keys, keys) {
			continue
		}
		if !sameKeys(s.Keys, keys) {
			return "", mongo.CommandError{Code: 86, Name: "IndexKeySpecsConflict", Message: "An existing index has the same name as the requested index"}
		}
		if s.Unique != unique {
			return "", mongo.CommandError{Code: 85, Name: "IndexOptionsConflict", Message: "An equivalent index already exists with a different name and options"}
		}
		return s.Name, nil
	}
	if unique && hasDuplicates(f.docs[collection], keys[0].Key) {
		return "", mongo.CommandError{
			Code:    11000,
			Name:    "DuplicateKey",
			Message: fmt.Sprintf("Index build failed: E11000 duplicate key error collection: %s.%s index: %s", f.name, collection, name),
		}
	}
	f.ensureNamespace(collection)
	f.indexes[collection] = append(f.indexes[collection], IndexSpec{Name: name, Keys: keys, Unique: unique})
	return name, nil
}

func (f *fakeTarget) CollectionNames(context.Context) ([]string, error) {
	names := make([]string, 0, len(f.collections))
	for n := range f.collections {
		names = append(names, n)
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeTarget) IndexSpecs(_ context.Context, collection string) ([]IndexSpec, error) {
	return append([]IndexSpec(nil), f.indexes[collection]...), nil
}

func hasDuplicates(docs []bson.M, field string) bool {
	seen := map[string]bool{}
	for _, d := range docs {
		v, ok := d[field]
		if !ok {
			continue
		}
		k := fmt.Sprint(v)
		if seen[k] {
			return true
		}
		seen[k] = true
	}
	return false
}
