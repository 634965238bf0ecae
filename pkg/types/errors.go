// Package types holds the error type shared by the engine, the CLI and the
// API surfaces.
package types

import (
	"errors"
	"fmt"
	"strings"
)

// Error tag constants.
const (
	TagSyntaxError           = "SyntaxError"
	TagVariableLimitExceeded = "VariableLimitExceeded"
	TagInternalError         = "InternalError"
)

// Syntax rule names reported in EngineError.Rule.
const (
	RuleEmpty         = "empty"
	RuleBinaryOperand = "binary-operand"
	RuleUnaryOperand  = "unary-operand"
	RuleUnaryAdjacent = "unary-adjacent"
	RuleMultiLetter   = "multi-letter"
	RuleEmptyOperand  = "empty-operand"
	RuleUnbalanced    = "unbalanced"
	RuleAmbiguous     = "ambiguous"
	RuleJuxtaposed    = "juxtaposed"
	RuleCharacter     = "character"
)

// EngineError is an engine failure with message and tags.
type EngineError struct {
	Message string
	Tags    []string
	Rule    string // failed validator rule, SyntaxError only
	Max     int    // configured maximum, VariableLimitExceeded only
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("%s (tags=[%s])", e.Message, strings.Join(e.Tags, ", "))
}

// HasTag returns true if the error has the specified tag.
func (e *EngineError) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Common error constructors.

// NewSyntaxError creates a SyntaxError for the given failed rule.
func NewSyntaxError(rule, msg string) *EngineError {
	return &EngineError{Message: msg, Rule: rule, Tags: []string{TagSyntaxError}}
}

// NewVariableLimitError creates a VariableLimitExceeded error carrying max.
func NewVariableLimitError(max int) *EngineError {
	return &EngineError{
		Message: fmt.Sprintf("The amount of variables is too high, please enter an expression with %d or less variables", max),
		Max:     max,
		Tags:    []string{TagVariableLimitExceeded},
	}
}

// NewInternalError creates an InternalError. These signal a bug in validation
// or tree building, never bad user input.
func NewInternalError(format string, args ...any) *EngineError {
	return &EngineError{Message: fmt.Sprintf(format, args...), Tags: []string{TagInternalError}}
}

// IsSyntaxError reports whether err carries the SyntaxError tag.
func IsSyntaxError(err error) bool { return hasTag(err, TagSyntaxError) }

// IsVariableLimit reports whether err carries the VariableLimitExceeded tag.
func IsVariableLimit(err error) bool { return hasTag(err, TagVariableLimitExceeded) }

// IsInternal reports whether err carries the InternalError tag.
func IsInternal(err error) bool { return hasTag(err, TagInternalError) }

// IsUserError reports whether err is one the caller can recover from by
// re-prompting.
func IsUserError(err error) bool {
	return IsSyntaxError(err) || IsVariableLimit(err)
}

func hasTag(err error, tag string) bool {
	var ee *EngineError
	if !errors.As(err, &ee) {
		return false
	}
	return ee.HasTag(tag)
}
