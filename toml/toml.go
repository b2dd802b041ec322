package toml

import (
	"io"
)

// Parse parses a TOML v1.0.0 document from r and returns the root
// Object, or an *Error on any lexical, structural, semantic, or
// conversion failure. No partial tree is returned on error.
func Parse(r io.Reader) (*Object, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return ParseBytes(b)
}

// ParseBytes parses a TOML v1.0.0 document held in memory.
func ParseBytes(b []byte) (*Object, error) {
	return ParseString(string(b))
}

// ParseString parses a TOML v1.0.0 document held in a string. A
// leading UTF-8 BOM, if present, is stripped before lexing (spec.md
// section 6: implementations MAY reject a BOM; this one strips it,
// matching the upstream loader it's ported from).
func ParseString(s string) (*Object, error) {
	s = stripBOM(s)
	p, err := newParser(s)
	if err != nil {
		return nil, err
	}
	return p.parseDocument()
}

func stripBOM(s string) string {
	const bom = "\uFEFF"
	if len(s) >= len(bom) && s[:len(bom)] == bom {
		return s[len(bom):]
	}
	return s
}

// =========================
// Safe access helpers
// =========================

// Get walks path through root, returning the node at that path and
// whether it was found.
func Get(root *Object, path ...string) (Node, bool) {
	var cur Node = root
	for _, key := range path {
		if key == "" {
			continue
		}
		obj, ok := cur.(*Object)
		if !ok {
			return nil, false
		}
		cur, ok = obj.Get(key)
		if !ok {
			return nil, false
		}
	}
	return cur, true
}

// GetUntyped is Get followed by ToUntyped.
func GetUntyped(root *Object, path ...string) (any, bool) {
	n, ok := Get(root, path...)
	if !ok {
		return nil, false
	}
	return ToUntyped(n), true
}

// ToUntyped recursively unwraps a Node into host-native Go values:
// map[string]any for objects, []any for arrays, and the natural Go
// type for each scalar kind.
func ToUntyped(n Node) any {
	switch v := n.(type) {
	case String:
		return string(v)
	case Bool:
		return bool(v)
	case Number:
		switch v.NumKind {
		case NumberInt32:
			return v.Int32
		case NumberInt64:
			return v.Int64
		case NumberBigInt:
			return v.BigInt
		default:
			if v.IsNaN || v.IsInf {
				return v.AsFloat64()
			}
			return v.BigFloat
		}
	case *Array:
		out := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			out[i] = ToUntyped(e)
		}
		return out
	case *Object:
		m := make(map[string]any, v.Len())
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			m[k] = ToUntyped(child)
		}
		return m
	default:
		return nil
	}
}

// MustString panics if n is not a String node.
func MustString(n Node) string {
	return string(n.(String))
}

// MustBool panics if n is not a Bool node.
func MustBool(n Node) bool {
	return bool(n.(Bool))
}

// MustInt panics if n is not a Number node, and converts it to int64.
func MustInt(n Node) int64 {
	return n.(Number).AsInt64()
}

// MustFloat panics if n is not a Number node, and converts it to
// float64.
func MustFloat(n Node) float64 {
	return n.(Number).AsFloat64()
}

// MustArray panics if n is not an Array node.
func MustArray(n Node) *Array {
	return n.(*Array)
}

// MustObject panics if n is not an Object node.
func MustObject(n Node) *Object {
	return n.(*Object)
}
