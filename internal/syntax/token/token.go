// Package token provides the set of lexical tokens for a .lox file.
package token

import (
	"fmt"
	"slices"
)

// Token is a lexical token in a .lox file.
type Token struct {
	Kind  Kind // The kind of token this is
	Start int  // Byte offset from the start of the file to the start of this token
	End   int  // Byte offset from the start of the file to the end of this token
	Line  int  // Line number on which the token starts (1 indexed)
	Col   int  // Column at which the token starts (1 indexed)
}

// String implements [fmt.Stringer] for a [Token].
func (t Token) String() string {
	return fmt.Sprintf("<Token::%s start=%d, end=%d, line=%d>", t.Kind, t.Start, t.End, t.Line)
}

// Is reports whether the token is any of the provided [Kind]s.
func (t Token) Is(kinds ...Kind) bool {
	return slices.Contains(kinds, t.Kind)
}

// Keyword reports whether a string refers to a keyword, returning it's [Kind]
// and true if it is. Otherwise [Ident] and false are returned.
//
// Note that "class", "super" and "this" are reserved words even though the
// parser rejects the constructs they introduce.
func Keyword(text string) (kind Kind, ok bool) {
	switch text {
	case "and":
		return And, true
	case "class":
		return Class, true
	case "else":
		return Else, true
	case "false":
		return False, true
	case "for":
		return For, true
	case "fun":
		return Fun, true
	case "if":
		return If, true
	case "nil":
		return Nil, true
	case "or":
		return Or, true
	case "print":
		return Print, true
	case "return":
		return Return, true
	case "super":
		return Super, true
	case "this":
		return This, true
	case "true":
		return True, true
	case "var":
		return Var, true
	case "while":
		return While, true
	default:
		return Ident, false
	}
}
