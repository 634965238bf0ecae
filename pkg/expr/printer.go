package expr

import "strings"

// Render returns the fully parenthesized text of a tree. Binary nodes are
// always wrapped in parentheses, NOT never is.
func Render(node Node) string {
	var sb strings.Builder
	render(&sb, node)
	return sb.String()
}

func render(sb *strings.Builder, node Node) {
	switch n := node.(type) {
	case *Atom:
		sb.WriteString(n.Name)
	case *Unary:
		sb.WriteString(opText(n.Op))
		sb.WriteByte(' ')
		render(sb, n.Operand)
	case *Binary:
		sb.WriteByte('(')
		render(sb, n.Left)
		sb.WriteByte(' ')
		sb.WriteString(opText(n.Op))
		sb.WriteByte(' ')
		render(sb, n.Right)
		sb.WriteByte(')')
	}
}
