// Package engine runs the full pipeline from expression text to truth table:
// validate, tokenize, collect variables, check the variable limit, build,
// render and evaluate.
package engine

import (
	"github.com/lemonberrylabs/truthtable/pkg/expr"
	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// DefaultMaxVariables is the variable limit used when none is configured.
const DefaultMaxVariables = 5

// Result is a complete, successfully evaluated truth table.
type Result struct {
	Expression string     // input as given
	Canonical  string     // rendered tree
	Variables  []string   // column order
	Rows       []expr.Row // enumeration order
	Tree       expr.Node
}

// Engine evaluates expressions under a fixed variable limit.
type Engine struct {
	maxVariables int
}

// New creates an engine. A non-positive limit falls back to
// DefaultMaxVariables.
func New(maxVariables int) *Engine {
	if maxVariables <= 0 {
		maxVariables = DefaultMaxVariables
	}
	return &Engine{maxVariables: maxVariables}
}

// MaxVariables returns the configured variable limit.
func (e *Engine) MaxVariables() int {
	return e.maxVariables
}

// Evaluate validates text and builds its complete truth table. On failure it
// returns a *types.EngineError tagged SyntaxError, VariableLimitExceeded or
// InternalError and no partial result.
func (e *Engine) Evaluate(text string) (*Result, error) {
	if err := expr.Check(text); err != nil {
		return nil, err
	}

	tokens := expr.Tokenize(text)
	vars := expr.Variables(tokens)
	if len(vars) > e.maxVariables {
		return nil, types.NewVariableLimitError(e.maxVariables)
	}

	tree, err := expr.Build(tokens)
	if err != nil {
		return nil, err
	}

	rows, err := expr.EvaluateAll(vars, tree)
	if err != nil {
		return nil, err
	}

	return &Result{
		Expression: text,
		Canonical:  expr.Render(tree),
		Variables:  vars,
		Rows:       rows,
		Tree:       tree,
	}, nil
}

// Validate runs the syntax validator only and, when it passes, returns the
// canonical rendering.
func (e *Engine) Validate(text string) (string, error) {
	tree, _, err := expr.Parse(text)
	if err != nil {
		return "", err
	}
	return expr.Render(tree), nil
}
