package mongo

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
)

func TestCollections_UniqueConstraints(t *testing.T) {
	unique := map[string]bson.D{}
	for _, def := range collections() {
		if def.validator == nil {
			t.Errorf("%s has no validator", def.name)
		}
		for _, idx := range def.indexes {
			if idx.Options != nil && idx.Options.Unique != nil && *idx.Options.Unique {
				unique[def.name] = idx.Keys.(bson.D)
			}
		}
	}

	tests := []struct {
		collection string
		keys       []string
	}{
		{"Babysitters", []string{"email"}},
		{"Parents", []string{"email"}},
		{"Reviews", []string{"babysitter_id", "parent_id"}},
	}

	for _, tt := range tests {
		keys, ok := unique[tt.collection]
		if !ok {
			t.Errorf("%s has no unique index", tt.collection)
			continue
		}
		if len(keys) != len(tt.keys) {
			t.Errorf("%s unique keys = %v, want %v", tt.collection, keys, tt.keys)
			continue
		}
		for i, k := range tt.keys {
			if keys[i].Key != k {
				t.Errorf("%s key[%d] = %s, want %s", tt.collection, i, keys[i].Key, k)
			}
		}
	}

	if _, ok := unique["Reservations"]; ok {
		t.Error("reservations must not carry a unique index")
	}
}
