package expr

import (
	"strings"
	"unicode"

	"github.com/lemonberrylabs/truthtable/pkg/types"
)

// Placeholder markers substituted for confirmed keywords. They come from the
// private use area so they can never be mistaken for a variable.
const (
	binaryMarker = '\uE000'
	unaryMarker  = '\uE001'
)

// IsValid reports whether text passes every structural rule.
func IsValid(text string) bool {
	return Check(text) == nil
}

// Check re-scans the raw text against the structural rules and returns a
// SyntaxError naming the first rule that fails, or nil. It works on the text
// alone and does not share any code with Tokenize or Build.
func Check(text string) error {
	if strings.TrimSpace(text) == "" {
		return syntaxError(types.RuleEmpty, "expression is empty")
	}
	if strings.ContainsRune(text, binaryMarker) || strings.ContainsRune(text, unaryMarker) {
		return syntaxError(types.RuleCharacter, "expression contains reserved characters")
	}

	rs := []rune(text)

	for _, kw := range binaryKeywords {
		var ok bool
		rs, ok = markKeyword(rs, kw, binaryMarker, binaryFlanked)
		if !ok {
			return syntaxError(types.RuleBinaryOperand, kw+" needs an operand on each side")
		}
	}
	for _, kw := range unaryKeywords {
		var ok bool
		rs, ok = markKeyword(rs, kw, unaryMarker, unaryFollowed)
		if !ok {
			return syntaxError(types.RuleUnaryOperand, kw+" needs an operand")
		}
	}

	for i, r := range rs {
		if r != unaryMarker {
			continue
		}
		if (i > 0 && touchesUnary(rs[i-1])) || (i+1 < len(rs) && touchesUnary(rs[i+1])) {
			return syntaxError(types.RuleUnaryAdjacent, "NOT must be separated from its neighbours")
		}
	}

	compact := make([]rune, 0, len(rs))
	for _, r := range rs {
		if r != ' ' {
			compact = append(compact, r)
		}
	}

	for i := 1; i < len(compact); i++ {
		if isLower(compact[i-1]) && isLower(compact[i]) {
			return syntaxError(types.RuleMultiLetter, "variables are single letters")
		}
	}

	for i := 1; i < len(compact); i++ {
		prev, cur := compact[i-1], compact[i]
		if (prev == '(' && cur == binaryMarker) || (prev == binaryMarker && cur == ')') {
			return syntaxError(types.RuleEmptyOperand, "operator next to a parenthesis has no operand")
		}
	}

	if !balanced(compact) {
		return syntaxError(types.RuleUnbalanced, "parentheses are not balanced")
	}

	if !onePerDepth(compact) {
		return syntaxError(types.RuleAmbiguous, "each binary operator needs its own parentheses")
	}

	if rule, msg := juxtaposed(compact); rule != "" {
		return syntaxError(rule, msg)
	}

	for _, r := range compact {
		if r == binaryMarker || r == unaryMarker {
			continue
		}
		if !isLower(r) && r != '(' && r != ')' {
			return syntaxError(types.RuleCharacter, "unexpected character "+string(r))
		}
	}

	return nil
}

func syntaxError(rule, msg string) *types.EngineError {
	return types.NewSyntaxError(rule, msg)
}

// markKeyword replaces every case-insensitive occurrence of kw with marker.
// Every occurrence must satisfy accept, checked against the text as it was
// before any replacement for this keyword.
func markKeyword(rs []rune, kw string, marker rune, accept func(rs []rune, start, end int) bool) ([]rune, bool) {
	out := make([]rune, 0, len(rs))
	for i := 0; i < len(rs); {
		if matchFold(rs, i, kw) {
			if !accept(rs, i, i+len(kw)) {
				return nil, false
			}
			out = append(out, marker)
			i += len(kw)
			continue
		}
		out = append(out, rs[i])
		i++
	}
	return out, true
}

func matchFold(rs []rune, at int, kw string) bool {
	if at+len(kw) > len(rs) {
		return false
	}
	for k := 0; k < len(kw); k++ {
		r := rs[at+k]
		if r >= unicode.MaxASCII || unicode.ToUpper(r) != rune(kw[k]) {
			return false
		}
	}
	return true
}

// binaryFlanked requires whitespace and then a letter or parenthesis on both
// sides of the keyword.
func binaryFlanked(rs []rune, start, end int) bool {
	i := start - 1
	if i < 0 || !unicode.IsSpace(rs[i]) {
		return false
	}
	for i >= 0 && unicode.IsSpace(rs[i]) {
		i--
	}
	if i < 0 || !isOperandRune(rs[i]) {
		return false
	}

	j := end
	if j >= len(rs) || !unicode.IsSpace(rs[j]) {
		return false
	}
	for j < len(rs) && unicode.IsSpace(rs[j]) {
		j++
	}
	return j < len(rs) && isOperandRune(rs[j])
}

// unaryFollowed requires whitespace then a letter, or optional whitespace
// then an opening parenthesis.
func unaryFollowed(rs []rune, _, end int) bool {
	j := end
	for j < len(rs) && unicode.IsSpace(rs[j]) {
		j++
	}
	if j >= len(rs) {
		return false
	}
	if rs[j] == '(' {
		return true
	}
	return j > end && isASCIILetter(rs[j])
}

func balanced(rs []rune) bool {
	var stack []rune
	for _, r := range rs {
		switch r {
		case '(':
			stack = append(stack, r)
		case ')':
			if len(stack) == 0 {
				return false
			}
			stack = stack[:len(stack)-1]
		}
	}
	return len(stack) == 0
}

// onePerDepth reports whether every parenthesis level holds at most one
// binary operator. Expects balanced input.
func onePerDepth(rs []rune) bool {
	counts := []int{0}
	for _, r := range rs {
		switch r {
		case '(':
			counts = append(counts, 0)
		case ')':
			counts = counts[:len(counts)-1]
		case binaryMarker:
			counts[len(counts)-1]++
			if counts[len(counts)-1] > 1 {
				return false
			}
		}
	}
	return true
}

// juxtaposed looks for operands with no operator between them, empty groups
// and NOT without an operand.
func juxtaposed(rs []rune) (string, string) {
	for i, r := range rs {
		var next rune
		if i+1 < len(rs) {
			next = rs[i+1]
		}
		switch {
		case r == unaryMarker && (next == 0 || next == ')' || next == binaryMarker):
			return types.RuleUnaryOperand, "NOT needs an operand"
		case r == '(' && next == ')':
			return types.RuleEmptyOperand, "empty parentheses"
		case (isLower(r) || r == ')') && (isLower(next) || next == '(' || next == unaryMarker):
			return types.RuleJuxtaposed, "operands need an operator between them"
		}
	}
	return "", ""
}

func touchesUnary(r rune) bool {
	return isLower(r) || r == binaryMarker || r == unaryMarker
}

func isOperandRune(r rune) bool {
	return isASCIILetter(r) || r == '(' || r == ')'
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}
