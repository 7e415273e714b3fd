package internal

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Args holds the values passed to function translations.
type Args map[string]any

// Node is either a subtree (Record) or a leaf translation (Text, Number, Func).
type Node interface {
	node()
}

// Translation is a leaf node: a literal string, a literal number or a function.
type Translation interface {
	Node
	// Render produces the final string for the translation.
	Render(args Args) string
}

// Record is a nested translations tree for a single namespace.
type Record map[string]Node

// Text is a literal string translation.
type Text string

// Number is a literal numeric translation. It is stringified on use.
type Number float64

// Func is a translation computed from the caller's arguments.
type Func func(args Args) string

func (Record) node() {}
func (Text) node()   {}
func (Number) node() {}
func (Func) node()   {}

func (t Text) Render(Args) string { return string(t) }

func (n Number) Render(Args) string {
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

func (f Func) Render(args Args) string {
	if f == nil {
		return ""
	}
	if args == nil {
		args = Args{}
	}
	return f(args)
}

// RecordFrom converts loosely typed data (as produced by JSON or YAML decoders)
// into a Record. Values that are neither a translation nor a nested mapping
// are dropped.
func RecordFrom(data map[string]any) Record {
	if data == nil {
		return nil
	}

	rec := make(Record, len(data))
	for key, value := range data {
		if n, ok := nodeFrom(value); ok {
			rec[key] = n
		}
	}
	return rec
}

func nodeFrom(value any) (Node, bool) {
	switch v := value.(type) {
	case Node:
		return v, v != nil
	case string:
		return Text(v), true
	case float64:
		return Number(v), true
	case float32:
		return Number(v), true
	case int:
		return Number(v), true
	case int64:
		return Number(v), true
	case int32:
		return Number(v), true
	case uint64:
		return Number(v), true
	case func(Args) string:
		return Func(v), v != nil
	case func() string:
		if v == nil {
			return nil, false
		}
		return Func(func(Args) string { return v() }), true
	case map[string]any:
		return RecordFrom(v), true
	case map[string]string:
		rec := make(Record, len(v))
		for key, s := range v {
			rec[key] = Text(s)
		}
		return rec, true
	case map[any]any:
		converted := make(map[string]any, len(v))
		for key, nested := range v {
			if s, ok := key.(string); ok {
				converted[s] = nested
			}
		}
		return RecordFrom(converted), true
	default:
		return nil, false
	}
}

// Plain returns the record as plain data suitable for JSON or YAML encoding.
// Function translations cannot be serialized and are left out.
func (r Record) Plain() map[string]any {
	out := make(map[string]any, len(r))
	for key, value := range r {
		switch v := value.(type) {
		case Record:
			out[key] = v.Plain()
		case Text:
			out[key] = string(v)
		case Number:
			out[key] = float64(v)
		}
	}
	return out
}

// flatten walks the tree and calls visit for every leaf with its full key path.
// Keys are visited in sorted order so that colliding paths resolve the same way
// on every run.
func (r Record) flatten(prefix, sep string, visit func(key string, t Translation)) {
	for _, part := range slices.Sorted(maps.Keys(r)) {
		key := prefix + part
		switch v := r[part].(type) {
		case Record:
			if v != nil {
				v.flatten(key+sep, sep, visit)
			}
		case Translation:
			if v != nil {
				visit(key, v)
			}
		}
	}
}

// Unflatten builds a nested record from dotted keys, splitting on sep.
func Unflatten(flat map[string]string, sep string) Record {
	root := Record{}
	for _, key := range slices.Sorted(maps.Keys(flat)) {
		parts := []string{key}
		if sep != "" {
			parts = strings.Split(key, sep)
		}
		node := root
		for i, part := range parts {
			if i == len(parts)-1 {
				if _, exists := node[part]; !exists {
					node[part] = Text(flat[key])
				}
				break
			}
			child, ok := node[part].(Record)
			if !ok {
				if _, taken := node[part]; taken {
					break
				}
				child = Record{}
				node[part] = child
			}
			node = child
		}
	}
	return root
}

// Flatten returns the literal leaves of the record keyed by their full path
// joined with sep. Function translations are left out.
func (r Record) Flatten(sep string) map[string]string {
	out := make(map[string]string)
	r.flatten("", sep, func(key string, t Translation) {
		if _, ok := t.(Func); ok {
			return
		}
		if _, exists := out[key]; !exists {
			out[key] = t.Render(nil)
		}
	})
	return out
}
