package expr

import (
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// item is one stack entry: either a pending token (paren or operator) or a
// completed node.
type item struct {
	tok  Token
	node Node
}

func (it item) done() bool { return it.node != nil }

// builder is a shift/collapse tree builder. Binary applications are only
// reduced at a closing parenthesis, so no precedence table is needed; NOT is
// folded onto its operand as soon as the operand is complete.
type builder struct {
	stack []item
}

// Build turns a validated token sequence into a tree. Any stack shape the
// algorithm does not expect means the validator let something through, and
// is reported as an InternalError.
func Build(tokens []Token) (Node, error) {
	if len(tokens) == 0 {
		return nil, types.NewInternalError("build: empty token sequence")
	}

	b := &builder{}
	for _, t := range tokens {
		switch t.Type {
		case TokenVar:
			b.push(item{node: &Atom{Name: t.Value}})
		case TokenLParen, TokenAnd, TokenOr, TokenImplies, TokenNot:
			b.push(item{tok: t})
		case TokenRParen:
			if err := b.closeGroup(t); err != nil {
				return nil, err
			}
		default:
			return nil, types.NewInternalError("build: unexpected token %q at position %d", t.Value, t.Pos)
		}
		b.collapseNot()
	}

	return b.finish()
}

func (b *builder) push(it item) {
	b.stack = append(b.stack, it)
}

func (b *builder) pop() item {
	it := b.stack[len(b.stack)-1]
	b.stack = b.stack[:len(b.stack)-1]
	return it
}

// collapseNot folds NOT tokens onto the completed node above them. A NOT
// applied to a NOT cancels out.
func (b *builder) collapseNot() {
	for len(b.stack) >= 2 {
		op := b.stack[len(b.stack)-2]
		top := b.stack[len(b.stack)-1]
		if op.done() || op.tok.Type != TokenNot || !top.done() {
			return
		}
		b.pop()
		b.pop()
		if inner, ok := top.node.(*Unary); ok && inner.Op == TokenNot {
			b.push(item{node: inner.Operand})
			continue
		}
		b.push(item{node: &Unary{Op: TokenNot, Operand: top.node}})
	}
}

// closeGroup pops back to the matching open parenthesis and reduces the
// group to a single node.
func (b *builder) closeGroup(closing Token) error {
	var chunk []item
	for {
		if len(b.stack) == 0 {
			return types.NewInternalError("build: unmatched ) at position %d", closing.Pos)
		}
		it := b.pop()
		if !it.done() && it.tok.Type == TokenLParen {
			break
		}
		chunk = append(chunk, it)
	}
	for i, j := 0, len(chunk)-1; i < j; i, j = i+1, j-1 {
		chunk[i], chunk[j] = chunk[j], chunk[i]
	}

	node, ok := reduce(chunk)
	if !ok {
		return types.NewInternalError("build: cannot reduce group of %d entries closed at position %d", len(chunk), closing.Pos)
	}
	b.push(item{node: node})
	return nil
}

// finish returns the tree left on the stack. A bare top-level binary
// application without outer parentheses is reduced here.
func (b *builder) finish() (Node, error) {
	node, ok := reduce(b.stack)
	if !ok {
		return nil, types.NewInternalError("build: unexpected final stack of %d entries", len(b.stack))
	}
	return node, nil
}

// reduce turns one completed node, or node-operator-node, into a node.
func reduce(chunk []item) (Node, bool) {
	switch len(chunk) {
	case 1:
		if chunk[0].done() {
			return chunk[0].node, true
		}
	case 3:
		left, op, right := chunk[0], chunk[1], chunk[2]
		if left.done() && !op.done() && op.tok.IsBinary() && right.done() {
			return &Binary{Left: left.node, Op: op.tok.Type, Right: right.node}, true
		}
	}
	return nil, false
}

// Parse validates text and builds its tree. Validation runs to completion
// before any building starts.
func Parse(text string) (Node, []Token, error) {
	if err := Check(text); err != nil {
		return nil, nil, err
	}
	tokens := Tokenize(text)
	node, err := Build(tokens)
	if err != nil {
		return nil, nil, err
	}
	return node, tokens, nil
}
