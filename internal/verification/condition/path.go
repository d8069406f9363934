// Package condition implements the restricted rule-condition language:
// dotted field paths resolved against a verification context, comparisons,
// boolean combinators, and a substring predicate. Conditions are parsed
// into a small AST and walked by a pure interpreter; no host code is ever
// executed and no input can make evaluation panic.
package condition

import (
	"strings"

	"vouch/internal/verification/models"
)

// Value is an optional value read out of a verification context. Absence is
// an ordinary state, not an error: a missing path segment yields Absent().
type Value struct {
	raw     any
	present bool
}

// Absent returns the missing-value marker.
func Absent() Value { return Value{} }

// Of wraps a concrete value. Wrapping nil still yields an absent value so
// explicit JSON nulls behave like missing fields.
func Of(v any) Value {
	if v == nil {
		return Value{}
	}
	return Value{raw: v, present: true}
}

// Present reports whether a value exists at the path.
func (v Value) Present() bool { return v.present }

// Raw returns the underlying value, nil when absent.
func (v Value) Raw() any { return v.raw }

// Number coerces the value to a float64 where possible.
func (v Value) Number() (float64, bool) {
	if !v.present {
		return 0, false
	}
	switch n := v.raw.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// Str returns the value as a string where it is one.
func (v Value) Str() (string, bool) {
	if !v.present {
		return "", false
	}
	s, ok := v.raw.(string)
	return s, ok
}

// Bool returns the value as a bool where it is one.
func (v Value) Bool() (bool, bool) {
	if !v.present {
		return false, false
	}
	b, ok := v.raw.(bool)
	return b, ok
}

// Truthy implements bare-path truthiness: present and not empty-string,
// zero, or false. Non-scalar values (maps, slices) are truthy when present.
func (v Value) Truthy() bool {
	if !v.present {
		return false
	}
	switch t := v.raw.(type) {
	case bool:
		return t
	case string:
		return t != ""
	case float64:
		return t != 0
	case float32:
		return t != 0
	case int:
		return t != 0
	case int32:
		return t != 0
	case int64:
		return t != 0
	}
	return true
}

// Lookup resolves a dotted path against a context. The first segment names
// either a signal section (fingerprint, behavioral, facial) or a top-level
// scalar (sessionId, timestamp); remaining segments walk nested maps. Any
// missing or null intermediate makes the whole lookup absent.
func Lookup(ctx *models.VerificationContext, path string) Value {
	if ctx == nil || path == "" {
		return Absent()
	}
	segments := strings.Split(path, ".")

	switch segments[0] {
	case "sessionId":
		if len(segments) > 1 {
			return Absent()
		}
		return Of(ctx.SessionID)
	case "timestamp":
		if len(segments) > 1 {
			return Absent()
		}
		return Of(ctx.Timestamp)
	}

	node := ctx.Section(segments[0])
	if node == nil {
		return Absent()
	}
	if len(segments) == 1 {
		return Of(node)
	}

	current := any(node)
	for _, seg := range segments[1:] {
		m, ok := current.(map[string]any)
		if !ok {
			return Absent()
		}
		next, ok := m[seg]
		if !ok || next == nil {
			return Absent()
		}
		current = next
	}
	return Of(current)
}
