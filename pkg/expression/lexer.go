// Package expression evaluates symbolic error_reporting expressions such as
// `E_ALL & ~E_NOTICE` or `E_ERROR | E_WARNING` against a registry version.
//
// Operators follow PHP precedence, tightest first:
//
//	~   bitwise not (unary)
//	&   bitwise and
//	^   bitwise xor
//	|   bitwise or
//
// Operands are constant names, E_ALL, integer literals (decimal, 0x hex,
// 0 octal, 0b binary) and parenthesized sub-expressions.
package expression

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var (
	// ErrUnexpectedToken is returned when the input does not follow the grammar
	ErrUnexpectedToken = errors.New("unexpected token in expression")

	// ErrUnbalancedParen is returned when parentheses do not pair up
	ErrUnbalancedParen = errors.New("unbalanced parenthesis in expression")

	// ErrUnknownConstant is returned for an identifier the registry does not know
	ErrUnknownConstant = errors.New("unknown constant in expression")

	// ErrEmpty is returned for blank input
	ErrEmpty = errors.New("empty expression")
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokNumber
	tokOr
	tokXor
	tokAnd
	tokNot
	tokLParen
	tokRParen
)

type token struct {
	kind tokenKind
	text string
	pos  int
}

func (t token) String() string {
	if t.kind == tokEOF {
		return "end of input"
	}
	return fmt.Sprintf("%q at %d", t.text, t.pos)
}

// tokenize splits input into tokens. Whitespace separates nothing but is
// otherwise ignored.
func tokenize(input string) ([]token, error) {
	var tokens []token
	runes := []rune(input)
	length := len(runes)

	for i := 0; i < length; i++ {
		ch := runes[i]

		if unicode.IsSpace(ch) {
			continue
		}

		switch ch {
		case '|':
			tokens = append(tokens, token{kind: tokOr, text: "|", pos: i})
			continue
		case '^':
			tokens = append(tokens, token{kind: tokXor, text: "^", pos: i})
			continue
		case '&':
			tokens = append(tokens, token{kind: tokAnd, text: "&", pos: i})
			continue
		case '~':
			tokens = append(tokens, token{kind: tokNot, text: "~", pos: i})
			continue
		case '(':
			tokens = append(tokens, token{kind: tokLParen, text: "(", pos: i})
			continue
		case ')':
			tokens = append(tokens, token{kind: tokRParen, text: ")", pos: i})
			continue
		}

		// Identifiers and numbers run until the next non-word rune
		if isWord(ch) {
			start := i
			var word strings.Builder
			for i < length && isWord(runes[i]) {
				word.WriteRune(runes[i])
				i++
			}
			i-- // the loop increment steps past the word

			kind := tokIdent
			if unicode.IsDigit(ch) {
				kind = tokNumber
			}
			tokens = append(tokens, token{kind: kind, text: word.String(), pos: start})
			continue
		}

		return nil, fmt.Errorf("%w: %q at %d", ErrUnexpectedToken, string(ch), i)
	}

	tokens = append(tokens, token{kind: tokEOF, pos: length})
	return tokens, nil
}

func isWord(ch rune) bool {
	return ch == '_' || unicode.IsLetter(ch) || unicode.IsDigit(ch)
}
