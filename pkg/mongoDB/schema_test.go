package mongodb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestDefaultSchema(t *testing.T) {
	s := DefaultSchema()

	assert.Equal(t, "thinkify", s.Database)
	assert.Equal(t, []string{"users", "tasks", "posts", "products"}, s.Collections)
	require.Len(t, s.Indexes, 4)

	assert.Equal(t, "users", s.Indexes[0].Collection)
	assert.Equal(t, bson.D{{Key: "email", Value: 1}}, s.Indexes[0].Keys)
	assert.True(t, s.Indexes[0].Unique)

	for i, c := range []string{"tasks", "posts", "products"} {
		idx := s.Indexes[i+1]
		assert.Equal(t, c, idx.Collection)
		assert.Equal(t, bson.D{{Key: "userId", Value: 1}}, idx.Keys)
		assert.False(t, idx.Unique)
	}
	assert.NoError(t, s.Validate())
}

func TestIndexDeclaration_Model(t *testing.T) {
	unique := IndexDeclaration{Collection: "users", Keys: ascending("email"), Unique: true}.Model()
	require.NotNil(t, unique.Options)
	require.NotNil(t, unique.Options.Unique)
	assert.True(t, *unique.Options.Unique)
	assert.Nil(t, unique.Options.Name, "name is left to the server")

	plain := IndexDeclaration{Collection: "tasks", Keys: ascending("userId")}.Model()
	assert.Nil(t, plain.Options)
	assert.Equal(t, bson.D{{Key: "userId", Value: 1}}, plain.Keys)
}

func TestIndexDeclaration_Name(t *testing.T) {
	assert.Equal(t, "email_1", IndexDeclaration{Keys: ascending("email")}.Name())
	assert.Equal(t, "userId_1_createdAt_-1",
		IndexDeclaration{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "createdAt", Value: -1}}}.Name())
	assert.Equal(t, "users.email_1 (unique)",
		IndexDeclaration{Collection: "users", Keys: ascending("email"), Unique: true}.String())
}

func TestSchema_Steps(t *testing.T) {
	assert.Equal(t, 8, DefaultSchema().Steps())
	assert.Equal(t, 0, Schema{}.Steps())
}

func TestSchema_WithDatabase(t *testing.T) {
	base := DefaultSchema()
	other := base.WithDatabase("thinkify_test")
	other.Collections[0] = "changed"

	assert.Equal(t, "thinkify_test", other.Database)
	assert.Equal(t, "thinkify", base.Database)
	assert.Equal(t, "users", base.Collections[0])
}

func TestSchema_Validate(t *testing.T) {
	cases := map[string]func(s *Schema){
		"empty database":       func(s *Schema) { s.Database = "" },
		"empty collection":     func(s *Schema) { s.Collections = append(s.Collections, "") },
		"duplicate collection": func(s *Schema) { s.Collections = append(s.Collections, "users") },
		"index without keys":   func(s *Schema) { s.Indexes[1].Keys = nil },
		"undeclared collection": func(s *Schema) {
			s.Indexes = append(s.Indexes, IndexDeclaration{Collection: "comments", Keys: ascending("postId")})
		},
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			s := DefaultSchema()
			mutate(&s)
			assert.ErrorIs(t, s.Validate(), ErrInvalidSchema)
		})
	}
}
