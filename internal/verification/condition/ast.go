package condition

// Expr is a node in the parsed condition tree. The variants are closed:
// nothing outside this package can add one, which keeps the interpreter's
// type switch exhaustive.
type Expr interface {
	isExpr()
}

// Path references a dotted field in the verification context.
type Path struct {
	Dotted string
}

// Literal holds a string, float64, or bool constant.
type Literal struct {
	Value any
}

// Not negates the truthiness of its operand.
type Not struct {
	X Expr
}

// CmpOp enumerates the comparison operators.
type CmpOp string

const (
	OpEq CmpOp = "=="
	OpNe CmpOp = "!="
	OpLt CmpOp = "<"
	OpLe CmpOp = "<="
	OpGt CmpOp = ">"
	OpGe CmpOp = ">="
)

// Cmp compares two operands. An absent operand makes the comparison false.
type Cmp struct {
	Op    CmpOp
	Left  Expr
	Right Expr
}

// And short-circuits left to right.
type And struct {
	Left  Expr
	Right Expr
}

// Or short-circuits left to right.
type Or struct {
	Left  Expr
	Right Expr
}

// Includes is the substring-containment predicate path.includes("needle").
// Matching is case-sensitive; an absent receiver makes it false.
type Includes struct {
	Recv   Path
	Needle string
}

func (Path) isExpr()     {}
func (Literal) isExpr()  {}
func (Not) isExpr()      {}
func (Cmp) isExpr()      {}
func (And) isExpr()      {}
func (Or) isExpr()       {}
func (Includes) isExpr() {}
