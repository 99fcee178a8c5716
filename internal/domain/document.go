package domain

import (
	"encoding/json"
	"reflect"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Classes, cart items and payments are stored as the client sent them. The
// struct fields cover what the server reads; any other field travels in the
// entity's Extra map, which is inlined into the BSON document and merged
// into the JSON object.

// jsonKeys returns the JSON names of the exported fields of struct type t.
func jsonKeys(t reflect.Type) map[string]struct{} {
	keys := make(map[string]struct{}, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			continue
		}
		if name == "" {
			name = f.Name
		}
		keys[name] = struct{}{}
	}
	return keys
}

// marshalDocument encodes known and merges in the extra fields whose names
// are not among keys.
func marshalDocument(known interface{}, extra map[string]interface{}, keys map[string]struct{}) ([]byte, error) {
	raw, err := json.Marshal(known)
	if err != nil || len(extra) == 0 {
		return raw, err
	}

	merged := make(map[string]json.RawMessage, len(keys)+len(extra))
	if err := json.Unmarshal(raw, &merged); err != nil {
		return nil, err
	}
	for k, v := range extra {
		if _, ok := keys[k]; ok {
			continue
		}
		b, err := json.Marshal(plainValue(v))
		if err != nil {
			return nil, err
		}
		merged[k] = b
	}
	return json.Marshal(merged)
}

// unmarshalDocument decodes data into known and returns the fields whose
// names are not among keys, or nil when there are none.
func unmarshalDocument(data []byte, known interface{}, keys map[string]struct{}) (map[string]interface{}, error) {
	if err := json.Unmarshal(data, known); err != nil {
		return nil, err
	}

	var all map[string]interface{}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}

	var extra map[string]interface{}
	for k, v := range all {
		if _, ok := keys[k]; ok {
			continue
		}
		if extra == nil {
			extra = make(map[string]interface{})
		}
		extra[k] = v
	}
	return extra, nil
}

// plainValue converts BSON container types decoded from MongoDB into plain
// maps and slices so they encode as JSON objects and arrays.
func plainValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.D:
		m := make(map[string]interface{}, len(val))
		for _, e := range val {
			m[e.Key] = plainValue(e.Value)
		}
		return m
	case primitive.M:
		return plainMap(val)
	case map[string]interface{}:
		return plainMap(val)
	case primitive.A:
		return plainSlice(val)
	case []interface{}:
		return plainSlice(val)
	default:
		return v
	}
}

func plainMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = plainValue(v)
	}
	return out
}

func plainSlice(in []interface{}) []interface{} {
	out := make([]interface{}, len(in))
	for i, v := range in {
		out[i] = plainValue(v)
	}
	return out
}
