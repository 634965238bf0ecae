package expr

import (
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// Environment maps each variable to its truth value for one row.
type Environment map[string]bool

// Row is one line of a truth table.
type Row struct {
	Env    Environment
	Result bool
}

// Values returns the row's assignment in the order of vars.
func (r Row) Values(vars []string) []bool {
	out := make([]bool, len(vars))
	for i, v := range vars {
		out[i] = r.Env[v]
	}
	return out
}

// Eval evaluates a tree under env. A variable missing from env is an
// InternalError: the environment is always derived from the same tokens as
// the tree.
func Eval(node Node, env Environment) (bool, error) {
	switch n := node.(type) {
	case *Atom:
		v, ok := env[n.Name]
		if !ok {
			return false, types.NewInternalError("eval: variable %q not in environment", n.Name)
		}
		return v, nil
	case *Unary:
		return evalUnary(n, env)
	case *Binary:
		return evalBinary(n, env)
	default:
		return false, types.NewInternalError("eval: unsupported node type %T", node)
	}
}

func evalUnary(n *Unary, env Environment) (bool, error) {
	v, err := Eval(n.Operand, env)
	if err != nil {
		return false, err
	}
	switch n.Op {
	case TokenNot:
		return !v, nil
	default:
		return false, types.NewInternalError("eval: unsupported unary operator %s", n.Op)
	}
}

func evalBinary(n *Binary, env Environment) (bool, error) {
	left, err := Eval(n.Left, env)
	if err != nil {
		return false, err
	}
	right, err := Eval(n.Right, env)
	if err != nil {
		return false, err
	}
	switch n.Op {
	case TokenAnd:
		return left && right, nil
	case TokenOr:
		return left || right, nil
	case TokenImplies:
		return !left || right, nil
	default:
		return false, types.NewInternalError("eval: unsupported binary operator %s", n.Op)
	}
}

// Assignments returns every assignment of vars, first variable varying
// slowest and true before false: for [a b] the order is TT, TF, FT, FF.
func Assignments(vars []string) []Environment {
	n := len(vars)
	total := 1 << n
	envs := make([]Environment, 0, total)
	for i := 0; i < total; i++ {
		env := make(Environment, n)
		for j, v := range vars {
			env[v] = (i>>(n-1-j))&1 == 0
		}
		envs = append(envs, env)
	}
	return envs
}

// EvaluateAll evaluates node under every assignment of vars. Either the
// whole table comes back or an error does.
func EvaluateAll(vars []string, node Node) ([]Row, error) {
	envs := Assignments(vars)
	rows := make([]Row, 0, len(envs))
	for _, env := range envs {
		v, err := Eval(node, env)
		if err != nil {
			return nil, err
		}
		rows = append(rows, Row{Env: env, Result: v})
	}
	return rows, nil
}
