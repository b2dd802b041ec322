// Package flatten adapts a parsed TOML value tree into the dotted-key
// map[string]any shape a configuration framework's property source
// expects, the way TomlPropertySourceLoader.processMap does in the
// source this module was ported from.
package flatten

import (
	"github.com/sirupsen/logrus"

	"github.com/dzjyyds666/gotoml/toml"
)

// Flatten walks root and returns a single-level map whose keys are
// dot-joined paths to every scalar and array leaf. Arrays are kept as
// []any leaves rather than being indexed into further dotted keys
// (spec.md section 1: index-by-number is the host framework's job, not
// this parser's).
//
// A key collision — two distinct TOML paths flattening to the same
// dotted string, such as a quoted key "a.b" next to a nested table a
// with key b — logs a warning and keeps the last value written, matching
// AbstractPropertySourceLoader.processMap's silent last-wins behavior
// but making it observable.
func Flatten(root *toml.Object) map[string]any {
	out := make(map[string]any)
	flattenObject(root, "", out)
	return out
}

func flattenObject(obj *toml.Object, prefix string, out map[string]any) {
	for _, key := range obj.Keys() {
		child, _ := obj.Get(key)
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		putFlattened(child, path, out)
	}
}

func putFlattened(n toml.Node, path string, out map[string]any) {
	switch v := n.(type) {
	case *toml.Object:
		flattenObject(v, path, out)
	default:
		setLeaf(out, path, unwrap(n))
	}
}

func setLeaf(out map[string]any, path string, value any) {
	if _, collision := out[path]; collision {
		logrus.WithField("key", path).Warn("flatten: key collision, keeping last value")
	}
	out[path] = value
}

// unwrap recursively converts a toml.Node into host-native Go values:
// map[string]any for objects, []any for arrays, and the natural Go
// type for each scalar kind. TOML has no null, so unwrap never produces
// one.
func unwrap(n toml.Node) any {
	switch v := n.(type) {
	case toml.String:
		return string(v)
	case toml.Bool:
		return bool(v)
	case toml.Number:
		return unwrapNumber(v)
	case *toml.Array:
		elems := make([]any, len(v.Elems))
		for i, e := range v.Elems {
			elems[i] = unwrap(e)
		}
		return elems
	case *toml.Object:
		m := make(map[string]any, v.Len())
		for _, k := range v.Keys() {
			child, _ := v.Get(k)
			m[k] = unwrap(child)
		}
		return m
	default:
		return nil
	}
}

func unwrapNumber(n toml.Number) any {
	switch n.NumKind {
	case toml.NumberInt32:
		return n.Int32
	case toml.NumberInt64:
		return n.Int64
	case toml.NumberBigInt:
		return n.BigInt
	default:
		return n.AsFloat64()
	}
}
