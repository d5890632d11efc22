package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

// Item is a schemaless resource as returned by a collection endpoint.
// Field order is preserved from the wire. Scalar values are kept as
// string, json.Number, bool or nil; nested objects and arrays are kept
// as compact json.RawMessage.
type Item struct {
	keys   []string
	values map[string]interface{}
}

// NewItem builds an Item from alternating key/value pairs, in order.
// It panics on an odd number of arguments or a non-string key.
func NewItem(kv ...interface{}) Item {
	if len(kv)%2 != 0 {
		panic("api.NewItem: odd number of arguments")
	}
	var it Item
	for i := 0; i < len(kv); i += 2 {
		key, ok := kv[i].(string)
		if !ok {
			panic(fmt.Sprintf("api.NewItem: key %v is not a string", kv[i]))
		}
		it.Set(key, kv[i+1])
	}
	return it
}

// Set assigns a field, appending the key if it is new.
func (it *Item) Set(key string, value interface{}) {
	if it.values == nil {
		it.values = make(map[string]interface{})
	}
	if _, exists := it.values[key]; !exists {
		it.keys = append(it.keys, key)
	}
	it.values[key] = value
}

// Keys returns the field names in wire order.
func (it Item) Keys() []string {
	out := make([]string, len(it.keys))
	copy(out, it.keys)
	return out
}

// Len returns the number of fields.
func (it Item) Len() int {
	return len(it.keys)
}

// Get returns the raw value of a field.
func (it Item) Get(key string) (interface{}, bool) {
	v, ok := it.values[key]
	return v, ok
}

// ID returns the "id" field as a string, or "".
func (it Item) ID() string {
	return it.Display("id")
}

// Display coerces a field to its display string. Missing and null fields
// render as "".
func (it Item) Display(key string) string {
	v, ok := it.values[key]
	if !ok {
		return ""
	}
	return DisplayValue(v)
}

// Values returns every field's display string in key order.
func (it Item) Values() []string {
	out := make([]string, len(it.keys))
	for i, k := range it.keys {
		out[i] = it.Display(k)
	}
	return out
}

// DisplayValue renders a single field value as text.
func DisplayValue(v interface{}) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		return strconv.FormatBool(val)
	case json.RawMessage:
		return string(val)
	case fmt.Stringer:
		return val.String()
	default:
		// Values set programmatically (maps, slices, numbers) go through JSON
		// so they render the same way as decoded ones.
		if b, err := json.Marshal(val); err == nil {
			return string(b)
		}
		return fmt.Sprint(val)
	}
}

// MarshalJSON writes the item as a JSON object in key order.
func (it Item) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range it.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		vb, err := json.Marshal(it.values[k])
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k, err)
		}
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads a JSON object, remembering key order.
func (it *Item) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return errors.New("api: item must be a JSON object")
	}

	*it = Item{}
	for dec.More() {
		keyTok, keyErr := dec.Token()
		if keyErr != nil {
			return keyErr
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("api: unexpected object key %v", keyTok)
		}

		var raw json.RawMessage
		if err = dec.Decode(&raw); err != nil {
			return fmt.Errorf("field %q: %w", key, err)
		}
		value, convErr := decodeValue(raw)
		if convErr != nil {
			return fmt.Errorf("field %q: %w", key, convErr)
		}
		it.Set(key, value)
	}

	_, err = dec.Token()
	return err
}

func decodeValue(raw json.RawMessage) (interface{}, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		var compact bytes.Buffer
		if err := json.Compact(&compact, trimmed); err != nil {
			return nil, err
		}
		return json.RawMessage(compact.Bytes()), nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, err
	}
	return v, nil
}
