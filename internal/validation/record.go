package validation

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Record is an ordered mapping of field name to raw Value. Iteration order is
// insertion order, which for decoded JSON is document order.
//
// Set is for building input. Nothing in the pipeline mutates a record it was
// handed.
type Record struct {
	fields *orderedmap.OrderedMap[string, Value]
}

// NewRecord returns an empty record.
func NewRecord() *Record {
	return &Record{fields: orderedmap.New[string, Value]()}
}

// Set stores v under name and returns the record for chaining. Setting an
// existing name replaces its value and keeps its position.
func (r *Record) Set(name string, v Value) *Record {
	r.fields.Set(name, v)
	return r
}

// Get returns the value stored under name.
func (r *Record) Get(name string) (Value, bool) {
	return r.fields.Get(name)
}

// Len returns the number of fields.
func (r *Record) Len() int {
	return r.fields.Len()
}

// Keys returns the field names in order.
func (r *Record) Keys() []string {
	keys := make([]string, 0, r.fields.Len())
	for pair := r.fields.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// MarshalJSON renders the record as a JSON object in field order.
func (r *Record) MarshalJSON() ([]byte, error) {
	if r == nil {
		return []byte("null"), nil
	}
	return r.fields.MarshalJSON()
}
