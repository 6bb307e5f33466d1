// Package dotdict provides an ordered key/value mapping for JSON- and YAML-like documents, with
// dotted-path access into nested mappings.
package dotdict

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

// AttributeError is returned when a key is missing.
type AttributeError struct {
	Name string
}

func (e *AttributeError) Error() string {
	return fmt.Sprintf("dotdict: no attribute called: %s", e.Name)
}

type Pair struct {
	Key   string
	Value any
}

// DotDict keeps keys in insertion order.  The zero value is an empty dict.
type DotDict struct {
	keys   []string
	values map[string]any
}

// New builds a DotDict from pairs.  Values which are themselves mappings are converted to
// *DotDict, recursively.  A repeated key keeps its first position and its last value.
func New(pairs ...Pair) *DotDict {
	d := &DotDict{values: make(map[string]any, len(pairs))}
	for _, p := range pairs {
		d.Set(p.Key, wrap(p.Value))
	}
	return d
}

// FromMap converts m.  Go maps have no order, so keys are sorted.
func FromMap(m map[string]any) *DotDict {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]Pair, 0, len(m))
	for _, k := range keys {
		pairs = append(pairs, Pair{Key: k, Value: m[k]})
	}
	return New(pairs...)
}

// FromMapSlice converts a yaml.v2 MapSlice, keeping its order.
func FromMapSlice(ms yaml.MapSlice) *DotDict {
	pairs := make([]Pair, 0, len(ms))
	for _, item := range ms {
		pairs = append(pairs, Pair{Key: fmt.Sprint(item.Key), Value: item.Value})
	}
	return New(pairs...)
}

// Parse decodes a YAML or JSON document whose top level is a mapping.
func Parse(data []byte) (*DotDict, error) {
	var ms yaml.MapSlice
	if err := yaml.Unmarshal(data, &ms); err != nil {
		return nil, fmt.Errorf("dotdict: couldn't parse document: %w", err)
	}
	return FromMapSlice(ms), nil
}

func wrap(v any) any {
	switch m := v.(type) {
	case *DotDict:
		return New(m.Pairs()...)
	case yaml.MapSlice:
		return FromMapSlice(m)
	case map[string]any:
		return FromMap(m)
	case map[any]any:
		converted := make(map[string]any, len(m))
		for k, val := range m {
			converted[fmt.Sprint(k)] = val
		}
		return FromMap(converted)
	case []Pair:
		return New(m...)
	}
	return v
}

// Get returns the value stored under key.
func (d *DotDict) Get(key string) (any, error) {
	v, ok := d.values[key]
	if !ok {
		return nil, &AttributeError{Name: key}
	}
	return v, nil
}

func (d *DotDict) Lookup(key string) (any, bool) {
	v, ok := d.values[key]
	return v, ok
}

// Set stores value as is; unlike New it does not convert nested mappings.
func (d *DotDict) Set(key string, value any) {
	if d.values == nil {
		d.values = make(map[string]any)
	}
	if _, ok := d.values[key]; !ok {
		d.keys = append(d.keys, key)
	}
	d.values[key] = value
}

func (d *DotDict) Delete(key string) error {
	if _, ok := d.values[key]; !ok {
		return &AttributeError{Name: key}
	}
	delete(d.values, key)
	for i, k := range d.keys {
		if k == key {
			d.keys = append(d.keys[:i], d.keys[i+1:]...)
			break
		}
	}
	return nil
}

func (d *DotDict) Keys() []string {
	return append([]string(nil), d.keys...)
}

func (d *DotDict) Len() int {
	return len(d.keys)
}

func (d *DotDict) Pairs() []Pair {
	pairs := make([]Pair, 0, len(d.keys))
	for _, k := range d.keys {
		pairs = append(pairs, Pair{Key: k, Value: d.values[k]})
	}
	return pairs
}

// Path follows a dotted path such as "version.number" through nested DotDicts.
func (d *DotDict) Path(path string) (any, error) {
	var cur any = d
	for _, name := range strings.Split(path, ".") {
		dd, ok := cur.(*DotDict)
		if !ok {
			return nil, &AttributeError{Name: name}
		}
		v, err := dd.Get(name)
		if err != nil {
			return nil, err
		}
		cur = v
	}
	return cur, nil
}

// MarshalJSON writes keys in insertion order.
func (d *DotDict) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range d.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(Normalize(d.values[k]))
		if err != nil {
			return nil, fmt.Errorf("dotdict: couldn't marshal %s: %w", k, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// Normalize converts the mappings yaml.v2 decodes inside lists into *DotDict, which
// encoding/json can marshal.
func Normalize(v any) any {
	switch t := v.(type) {
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = Normalize(item)
		}
		return out
	case yaml.MapSlice, map[any]any:
		return wrap(t)
	}
	return v
}
