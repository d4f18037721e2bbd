/*
Copyright 2026 Benny Powers. All rights reserved.
Use of this source code is governed by the GPLv3
license that can be found in the LICENSE file.
*/

package manifest

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Kind discriminates the JSON value types held by a Value.
type Kind int

const (
	// KindNull is a JSON null.
	KindNull Kind = iota
	// KindBool is a JSON boolean.
	KindBool
	// KindNumber is a JSON number.
	KindNumber
	// KindString is a JSON string.
	KindString
	// KindArray is a JSON array.
	KindArray
	// KindObject is a JSON object.
	KindObject
)

// String returns the JSON name of the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "boolean"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindArray:
		return "array"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is a decoded JSON value that preserves object key order.
// encoding/json loads objects into unordered maps, but condition matching
// in "exports" and "imports" depends on the order conditions were written,
// so those subtrees are decoded into Values instead.
type Value struct {
	// Kind is the JSON type of this value.
	Kind Kind

	scalar string
	items  []*Value
	keys   []string
	fields map[string]*Value
}

// Str returns the text of a string scalar.
func (v *Value) Str() string {
	return v.scalar
}

// Keys returns the object keys in document order.
func (v *Value) Keys() []string {
	return v.keys
}

// Get returns the value of an object field.
func (v *Value) Get(key string) (*Value, bool) {
	child, ok := v.fields[key]
	return child, ok
}

// Len returns the number of array elements or object fields.
func (v *Value) Len() int {
	if v.Kind == KindArray {
		return len(v.items)
	}
	return len(v.keys)
}

// Index returns the i'th array element.
func (v *Value) Index(i int) *Value {
	return v.items[i]
}

// fromYAMLNode converts a yaml.v3 AST node into a Value. The manifest is
// JSON, but yaml.v3 parses JSON and keeps mapping entries in document
// order, which encoding/json does not.
func fromYAMLNode(n *yaml.Node) (*Value, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return &Value{Kind: KindNull}, nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.MappingNode:
		v := &Value{
			Kind:   KindObject,
			fields: make(map[string]*Value, len(n.Content)/2),
		}
		for i := 0; i+1 < len(n.Content); i += 2 {
			keyNode := n.Content[i]
			valueNode := n.Content[i+1]
			child, err := fromYAMLNode(valueNode)
			if err != nil {
				return nil, err
			}
			// Duplicate keys keep their first position and last value.
			if _, dup := v.fields[keyNode.Value]; !dup {
				v.keys = append(v.keys, keyNode.Value)
			}
			v.fields[keyNode.Value] = child
		}
		return v, nil
	case yaml.SequenceNode:
		v := &Value{
			Kind:  KindArray,
			items: make([]*Value, 0, len(n.Content)),
		}
		for _, item := range n.Content {
			child, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			v.items = append(v.items, child)
		}
		return v, nil
	case yaml.ScalarNode:
		switch n.Tag {
		case "!!null":
			return &Value{Kind: KindNull}, nil
		case "!!bool":
			return &Value{Kind: KindBool, scalar: n.Value}, nil
		case "!!int", "!!float":
			return &Value{Kind: KindNumber, scalar: n.Value}, nil
		default:
			return &Value{Kind: KindString, scalar: n.Value}, nil
		}
	default:
		return nil, fmt.Errorf("unsupported value node kind %d", n.Kind)
	}
}
