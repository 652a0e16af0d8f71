package validation

import (
	"encoding/json"
	"strconv"
)

// Shape is the structural type of a raw Value.
type Shape int

// Value shapes. The zero Value is ShapeNull.
const (
	ShapeNull Shape = iota
	ShapeString
	ShapeNumber
	ShapeBool
	ShapeRecord
	ShapeList
)

func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeString:
		return "string"
	case ShapeNumber:
		return "number"
	case ShapeBool:
		return "bool"
	case ShapeRecord:
		return "record"
	case ShapeList:
		return "list"
	default:
		return "unknown"
	}
}

// Value is one untrusted input value. Numbers keep their textual form so
// integer fields never go through a float.
type Value struct {
	shape Shape
	text  string
	flag  bool
	rec   *Record
	list  []Value
	// formScalar marks a single form value, which Sequence also reads as a
	// one-item list.
	formScalar bool
}

// NullValue returns an explicit null.
func NullValue() Value { return Value{} }

// StringValue wraps a string.
func StringValue(s string) Value { return Value{shape: ShapeString, text: s} }

// NumberValue wraps a JSON number literal.
func NumberValue(n json.Number) Value { return Value{shape: ShapeNumber, text: string(n)} }

// IntValue wraps an integer.
func IntValue(n int64) Value {
	return Value{shape: ShapeNumber, text: strconv.FormatInt(n, 10)}
}

// BoolValue wraps a boolean.
func BoolValue(b bool) Value { return Value{shape: ShapeBool, flag: b} }

// RecordValue wraps a nested record. A nil record is a null.
func RecordValue(r *Record) Value {
	if r == nil {
		return Value{}
	}
	return Value{shape: ShapeRecord, rec: r}
}

// ListValue wraps a list of values.
func ListValue(items ...Value) Value {
	return Value{shape: ShapeList, list: append([]Value(nil), items...)}
}

// Shape reports the structural type.
func (v Value) Shape() Shape { return v.shape }

// IsNull reports whether the value is null.
func (v Value) IsNull() bool { return v.shape == ShapeNull }

// AsString returns the string and true when the value is a string.
func (v Value) AsString() (string, bool) {
	return v.text, v.shape == ShapeString
}

// AsNumber returns the number literal and true when the value is a number.
func (v Value) AsNumber() (json.Number, bool) {
	return json.Number(v.text), v.shape == ShapeNumber
}

// AsBool returns the boolean and true when the value is a bool.
func (v Value) AsBool() (bool, bool) {
	return v.flag, v.shape == ShapeBool
}

// AsRecord returns the nested record and true when the value is a record.
func (v Value) AsRecord() (*Record, bool) {
	return v.rec, v.shape == ShapeRecord
}

// AsList returns a copy of the items and true when the value is a list.
func (v Value) AsList() ([]Value, bool) {
	if v.shape != ShapeList {
		return nil, false
	}
	return append([]Value(nil), v.list...), true
}

// MarshalJSON renders the value as JSON.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.shape {
	case ShapeString:
		return json.Marshal(v.text)
	case ShapeNumber:
		return []byte(v.text), nil
	case ShapeBool:
		return strconv.AppendBool(nil, v.flag), nil
	case ShapeRecord:
		return v.rec.MarshalJSON()
	case ShapeList:
		if v.list == nil {
			return []byte("[]"), nil
		}
		return json.Marshal(v.list)
	default:
		return []byte("null"), nil
	}
}
