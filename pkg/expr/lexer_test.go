package expr

import (
	"reflect"
	"testing"
)

func TestTokenize(t *testing.T) {
	tests := []struct {
		input string
		types []TokenType
		vals  []string
	}{
		{"a", []TokenType{TokenVar}, []string{"a"}},
		{"  a  ", []TokenType{TokenVar}, []string{"a"}},
		{"(a AND b)",
			[]TokenType{TokenLParen, TokenVar, TokenAnd, TokenVar, TokenRParen},
			[]string{"(", "a", "AND", "b", ")"}},
		{"(a and b)",
			[]TokenType{TokenLParen, TokenVar, TokenAnd, TokenVar, TokenRParen},
			[]string{"(", "a", "AND", "b", ")"}},
		{"not a", []TokenType{TokenNot, TokenVar}, []string{"NOT", "a"}},
		{"a->b", []TokenType{TokenVar, TokenImplies, TokenVar}, []string{"a", "->", "b"}},
		{"a Or b", []TokenType{TokenVar, TokenOr, TokenVar}, []string{"a", "OR", "b"}},
		{"nota", []TokenType{TokenNot, TokenVar}, []string{"NOT", "a"}},
		{"a1", []TokenType{TokenVar, TokenIllegal}, []string{"a", "1"}},
		{"B", []TokenType{TokenIllegal}, []string{"B"}},
		{"a é", []TokenType{TokenVar, TokenIllegal}, []string{"a", "é"}},
		{"Ņb", []TokenType{TokenIllegal, TokenVar}, []string{"Ņ", "b"}},
		{"a\u00a0b", []TokenType{TokenVar, TokenVar}, []string{"a", "b"}},
		{"", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			tokens := Tokenize(tt.input)
			var gotTypes []TokenType
			var gotVals []string
			for _, tok := range tokens {
				gotTypes = append(gotTypes, tok.Type)
				gotVals = append(gotVals, tok.Value)
			}
			if !reflect.DeepEqual(gotTypes, tt.types) {
				t.Errorf("types: got %v, want %v", gotTypes, tt.types)
			}
			if !reflect.DeepEqual(gotVals, tt.vals) {
				t.Errorf("values: got %v, want %v", gotVals, tt.vals)
			}
		})
	}
}

func TestTokenPositions(t *testing.T) {
	tokens := Tokenize("( a -> b )")
	want := []int{0, 2, 4, 7, 9}
	if len(tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(tokens), len(want))
	}
	for i, tok := range tokens {
		if tok.Pos != want[i] {
			t.Errorf("token %d (%s): pos %d, want %d", i, tok.Value, tok.Pos, want[i])
		}
	}
}

func TestTokenPositionsMultibyte(t *testing.T) {
	tokens := Tokenize("é a")
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2", len(tokens))
	}
	if tokens[0].Value != "é" || tokens[0].Pos != 0 {
		t.Errorf("token 0: got %q at %d", tokens[0].Value, tokens[0].Pos)
	}
	if tokens[1].Pos != 3 {
		t.Errorf("token 1: pos %d, want 3", tokens[1].Pos)
	}
}

func TestVariables(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"a", []string{"a"}},
		{"(b AND (a OR b))", []string{"a", "b"}},
		{"(NOT z -> (c AND a))", []string{"a", "c", "z"}},
		{"NOT NOT q", []string{"q"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := Variables(Tokenize(tt.input))
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}
