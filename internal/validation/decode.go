package validation

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/buger/jsonparser"
)

// FromJSON parses a JSON object into a Record, keeping document key order.
// Anything other than a well-formed object yields an error wrapping ErrShape.
// Duplicate keys keep their first position and their last value.
func FromJSON(data []byte) (*Record, error) {
	if !json.Valid(data) {
		return nil, fmt.Errorf("%w: malformed JSON", ErrShape)
	}
	raw, dataType, _, err := jsonparser.Get(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	if dataType != jsonparser.Object {
		return nil, fmt.Errorf("%w: top-level value is %s", ErrShape, dataType)
	}
	rec, err := decodeObject(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	return rec, nil
}

func decodeObject(data []byte) (*Record, error) {
	rec := NewRecord()
	err := jsonparser.ObjectEach(data, func(key, value []byte, dataType jsonparser.ValueType, _ int) error {
		name, err := jsonparser.ParseString(key)
		if err != nil {
			return fmt.Errorf("key %q: %w", key, err)
		}
		v, err := decodeValue(value, dataType)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		rec.Set(name, v)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func decodeValue(data []byte, dataType jsonparser.ValueType) (Value, error) {
	switch dataType {
	case jsonparser.String:
		s, err := jsonparser.ParseString(data)
		if err != nil {
			return Value{}, err
		}
		return StringValue(s), nil
	case jsonparser.Number:
		return NumberValue(json.Number(data)), nil
	case jsonparser.Boolean:
		b, err := jsonparser.ParseBoolean(data)
		if err != nil {
			return Value{}, err
		}
		return BoolValue(b), nil
	case jsonparser.Null:
		return NullValue(), nil
	case jsonparser.Object:
		rec, err := decodeObject(data)
		if err != nil {
			return Value{}, err
		}
		return RecordValue(rec), nil
	case jsonparser.Array:
		return decodeArray(data)
	default:
		return Value{}, fmt.Errorf("unsupported value %q", data)
	}
}

func decodeArray(data []byte) (Value, error) {
	items := []Value{}
	var itemErr error
	_, err := jsonparser.ArrayEach(data, func(value []byte, dataType jsonparser.ValueType, _ int, err error) {
		if itemErr != nil {
			return
		}
		if err != nil {
			itemErr = err
			return
		}
		v, err := decodeValue(value, dataType)
		if err != nil {
			itemErr = fmt.Errorf("%d: %w", len(items), err)
			return
		}
		items = append(items, v)
	})
	if err = errors.Join(err, itemErr); err != nil {
		return Value{}, err
	}
	return ListValue(items...), nil
}

// FromValues builds a Record from form input. Dotted keys ("shipping.city")
// become nested records. A key repeated in the form or ending in "[]"
// ("tags[]") becomes a list of strings. A key sent once without the suffix
// is a string, but Sequence accepts it as a one-item list, since a form
// cannot tell one list item from a scalar. An empty single value becomes
// null, which is how browsers submit untouched optional inputs.
//
// url.Values carries no order, so keys are processed sorted.
func FromValues(form url.Values) (*Record, error) {
	root := NewRecord()
	keys := make([]string, 0, len(form))
	for k := range form {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	for _, key := range keys {
		vals := form[key]
		name, isList := strings.CutSuffix(key, "[]")
		path := strings.Split(name, ".")
		if slices.Contains(path, "") {
			return nil, fmt.Errorf("%w: malformed form key %q", ErrShape, key)
		}

		var v Value
		switch {
		case isList || len(vals) > 1:
			items := make([]Value, len(vals))
			for i, s := range vals {
				items[i] = StringValue(s)
			}
			v = ListValue(items...)
		case len(vals) == 0 || vals[0] == "":
			v = NullValue()
		default:
			v = StringValue(vals[0])
			v.formScalar = true
		}

		if err := setPath(root, path, v); err != nil {
			return nil, fmt.Errorf("%w: form key %q: %w", ErrShape, key, err)
		}
	}
	return root, nil
}

func setPath(rec *Record, path []string, v Value) error {
	for _, seg := range path[:len(path)-1] {
		existing, ok := rec.Get(seg)
		if !ok {
			child := NewRecord()
			rec.Set(seg, RecordValue(child))
			rec = child
			continue
		}
		child, isRecord := existing.AsRecord()
		if !isRecord {
			return fmt.Errorf("%q is both a value and a group", seg)
		}
		rec = child
	}
	last := path[len(path)-1]
	if existing, ok := rec.Get(last); ok && existing.Shape() == ShapeRecord {
		return fmt.Errorf("%q is both a value and a group", last)
	}
	rec.Set(last, v)
	return nil
}

// FromMap builds a Record from a decoded Go map. Map iteration order is
// random, so keys are inserted sorted. Supported leaf types are the ones
// encoding/json produces plus the common integer and string-slice types.
func FromMap(m map[string]any) (*Record, error) {
	rec, err := fromMap(m)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrShape, err)
	}
	return rec, nil
}

func fromMap(m map[string]any) (*Record, error) {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	rec := NewRecord()
	for _, k := range keys {
		v, err := fromAny(m[k])
		if err != nil {
			return nil, fmt.Errorf("%s: %w", k, err)
		}
		rec.Set(k, v)
	}
	return rec, nil
}

func fromAny(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return NullValue(), nil
	case Value:
		return t, nil
	case string:
		return StringValue(t), nil
	case bool:
		return BoolValue(t), nil
	case int:
		return IntValue(int64(t)), nil
	case int64:
		return IntValue(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Value{}, fmt.Errorf("unsupported value %v", t)
		}
		return NumberValue(json.Number(strconv.FormatFloat(t, 'f', -1, 64))), nil
	case json.Number:
		return NumberValue(t), nil
	case map[string]any:
		rec, err := fromMap(t)
		if err != nil {
			return Value{}, err
		}
		return RecordValue(rec), nil
	case *Record:
		return RecordValue(t), nil
	case []string:
		items := make([]Value, len(t))
		for i, s := range t {
			items[i] = StringValue(s)
		}
		return ListValue(items...), nil
	case []any:
		items := make([]Value, len(t))
		for i, item := range t {
			v, err := fromAny(item)
			if err != nil {
				return Value{}, fmt.Errorf("%d: %w", i, err)
			}
			items[i] = v
		}
		return ListValue(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported type %T", x)
	}
}
