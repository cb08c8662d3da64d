package mongodb

import (
	"context"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
)

// Mismatch is one difference between a Schema and a live database.
type Mismatch struct {
	Collection string `json:"collection"`
	Index      string `json:"index,omitempty"`
	Problem    string `json:"problem"`
}

func (m Mismatch) String() string {
	if m.Index == "" {
		return m.Collection + ": " + m.Problem
	}
	return m.Collection + "." + m.Index + ": " + m.Problem
}

// Verification is the result of comparing a database against a Schema.
type Verification struct {
	Database   string     `json:"database"`
	Mismatches []Mismatch `json:"mismatches"`
}

func (v *Verification) OK() bool {
	return len(v.Mismatches) == 0
}

// Err returns nil when the database matches, otherwise an error wrapping
// ErrSchemaMismatch that lists every mismatch.
func (v *Verification) Err() error {
	if v.OK() {
		return nil
	}
	problems := make([]string, len(v.Mismatches))
	for i, m := range v.Mismatches {
		problems[i] = m.String()
	}
	return fmt.Errorf("%w in %q: %s", ErrSchemaMismatch, v.Database, strings.Join(problems, "; "))
}

// Verify reads the live collections and indexes of target and reports how
// they differ from schema. Extra collections and indexes are not reported.
func Verify(ctx context.Context, target Target, schema Schema) (*Verification, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}

	names, err := target.CollectionNames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list collections: %w", Classify(err))
	}
	existing := make(map[string]bool, len(names))
	for _, n := range names {
		existing[n] = true
	}

	v := &Verification{Database: target.Name(), Mismatches: []Mismatch{}}
	for _, c := range schema.Collections {
		if !existing[c] {
			v.Mismatches = append(v.Mismatches, Mismatch{Collection: c, Problem: "collection missing"})
		}
	}

	specs := make(map[string][]IndexSpec)
	for _, idx := range schema.Indexes {
		if !existing[idx.Collection] {
			v.Mismatches = append(v.Mismatches, Mismatch{Collection: idx.Collection, Index: idx.Name(), Problem: "index missing"})
			continue
		}
		have, ok := specs[idx.Collection]
		if !ok {
			have, err = target.IndexSpecs(ctx, idx.Collection)
			if err != nil {
				return nil, fmt.Errorf("list indexes of %q: %w", idx.Collection, Classify(err))
			}
			specs[idx.Collection] = have
		}
		if m, ok := compareIndex(idx, have); !ok {
			v.Mismatches = append(v.Mismatches, m)
		}
	}
	return v, nil
}

func compareIndex(want IndexDeclaration, have []IndexSpec) (Mismatch, bool) {
	for _, spec := range have {
		if !sameKeys(want.Keys, spec.Keys) {
			continue
		}
		if spec.Unique != want.Unique {
			return Mismatch{
				Collection: want.Collection,
				Index:      spec.Name,
				Problem:    fmt.Sprintf("unique is %t, want %t", spec.Unique, want.Unique),
			}, false
		}
		return Mismatch{}, true
	}
	return Mismatch{Collection: want.Collection, Index: want.Name(), Problem: "index missing"}, false
}

// sameKeys compares key documents in order. Directions are compared by
// numeric value: the server returns int32 or double for what was sent as int.
func sameKeys(a, b bson.D) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Key != b[i].Key {
			return false
		}
		av, aNum := number(a[i].Value)
		bv, bNum := number(b[i].Value)
		if aNum != bNum {
			return false
		}
		if aNum && av != bv {
			return false
		}
		if !aNum && fmt.Sprint(a[i].Value) != fmt.Sprint(b[i].Value) {
			return false
		}
	}
	return true
}

func number(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
