package expr

// Node is the interface for all expression tree nodes. The set of
// implementations is closed: *Atom, *Unary and *Binary.
type Node interface {
	node()
}

// Atom is a leaf naming a single variable.
type Atom struct {
	Name string
}

func (*Atom) node() {}

// Unary applies a prefix operator (currently only NOT) to one operand.
type Unary struct {
	Op      TokenType
	Operand Node
}

func (*Unary) node() {}

// Binary applies AND, OR or -> to two operands.
type Binary struct {
	Left  Node
	Op    TokenType
	Right Node
}

func (*Binary) node() {}

// Equal reports whether two trees have the same shape, operators and names.
func Equal(a, b Node) bool {
	switch x := a.(type) {
	case *Atom:
		y, ok := b.(*Atom)
		return ok && x.Name == y.Name
	case *Unary:
		y, ok := b.(*Unary)
		return ok && x.Op == y.Op && Equal(x.Operand, y.Operand)
	case *Binary:
		y, ok := b.(*Binary)
		return ok && x.Op == y.Op && Equal(x.Left, y.Left) && Equal(x.Right, y.Right)
	default:
		return false
	}
}

// opText returns the canonical spelling of an operator token type.
func opText(op TokenType) string {
	switch op {
	case TokenAnd:
		return "AND"
	case TokenOr:
		return "OR"
	case TokenImplies:
		return "->"
	case TokenNot:
		return "NOT"
	default:
		return op.String()
	}
}
