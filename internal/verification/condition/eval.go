package condition

import (
	"strings"

	"vouch/internal/verification/models"
)

// Evaluate parses and evaluates a condition against a context. The only
// error source is parsing; once a tree exists, evaluation is total. Absent
// fields and type mismatches fold to false rather than failing, so a
// missing signal can never abort a verification request.
func Evaluate(conditionStr string, ctx *models.VerificationContext) (bool, error) {
	expr, err := Parse(conditionStr)
	if err != nil {
		return false, err
	}
	return Eval(expr, ContextLookup(ctx)), nil
}

// LookupFunc resolves a dotted path to an optional value. Decoupling the
// interpreter from the context type keeps evaluation trivially testable.
type LookupFunc func(path string) Value

// ContextLookup adapts a verification context to the interpreter.
func ContextLookup(ctx *models.VerificationContext) LookupFunc {
	return func(path string) Value {
		return Lookup(ctx, path)
	}
}

// Eval walks a parsed expression to its truth value.
func Eval(expr Expr, look LookupFunc) bool {
	return evalBool(expr, look)
}

func evalBool(expr Expr, look LookupFunc) bool {
	switch e := expr.(type) {
	case Not:
		return !evalBool(e.X, look)
	case And:
		return evalBool(e.Left, look) && evalBool(e.Right, look)
	case Or:
		return evalBool(e.Left, look) || evalBool(e.Right, look)
	case Cmp:
		return evalCmp(e, look)
	case Includes:
		recv, ok := look(e.Recv.Dotted).Str()
		if !ok {
			return false
		}
		return strings.Contains(recv, e.Needle)
	case Path:
		return look(e.Dotted).Truthy()
	case Literal:
		return Of(e.Value).Truthy()
	}
	return false
}

func evalCmp(e Cmp, look LookupFunc) bool {
	left := evalValue(e.Left, look)
	right := evalValue(e.Right, look)
	if !left.Present() || !right.Present() {
		return false
	}

	if ln, ok := left.Number(); ok {
		rn, ok := right.Number()
		if !ok {
			return false
		}
		return compareNumbers(e.Op, ln, rn)
	}
	if ls, ok := left.Str(); ok {
		rs, ok := right.Str()
		if !ok {
			return false
		}
		return compareStrings(e.Op, ls, rs)
	}
	if lb, ok := left.Bool(); ok {
		rb, ok := right.Bool()
		if !ok {
			return false
		}
		switch e.Op {
		case OpEq:
			return lb == rb
		case OpNe:
			return lb != rb
		}
	}
	return false
}

func evalValue(expr Expr, look LookupFunc) Value {
	switch e := expr.(type) {
	case Path:
		return look(e.Dotted)
	case Literal:
		return Of(e.Value)
	default:
		// A nested boolean expression used as a comparison operand
		// evaluates to its truth value.
		return Of(evalBool(expr, look))
	}
}

func compareNumbers(op CmpOp, a, b float64) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	}
	return false
}

func compareStrings(op CmpOp, a, b string) bool {
	switch op {
	case OpEq:
		return a == b
	case OpNe:
		return a != b
	case OpLt:
		return a < b
	case OpLe:
		return a <= b
	case OpGt:
		return a > b
	case OpGe:
		return a >= b
	}
	return false
}
