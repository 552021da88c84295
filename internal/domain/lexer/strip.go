// Package lexer removes JS/JSX comments from source text while leaving code
// and string/template literal contents untouched.
package lexer

import "strings"

type literal int

const (
	noLiteral literal = iota
	singleQuoted
	doubleQuoted
	templateLiteral
)

func delimiterOf(ch byte) literal {
	switch ch {
	case '\'':
		return singleQuoted
	case '"':
		return doubleQuoted
	case '`':
		return templateLiteral
	default:
		return noLiteral
	}
}

// StripComments returns src with line comments (// to end of line) and block
// comments (/* to the first */) removed. Comment markers inside quoted or
// template literals are kept. The newline ending a line comment is kept so
// line numbers do not shift.
//
// The scan never fails: unterminated literals run to the end of input and an
// unterminated block comment swallows the rest of the text.
func StripComments(src string) string {
	if src == "" {
		return src
	}

	var out strings.Builder
	out.Grow(len(src))

	mode := noLiteral

	for i := 0; i < len(src); {
		ch := src[i]

		if kind := delimiterOf(ch); kind != noLiteral {
			switch mode {
			case noLiteral:
				mode = kind
			case kind:
				if !escaped(src, i) {
					mode = noLiteral
				}
			default:
				// A different quote kind inside a literal is plain content.
			}

			out.WriteByte(ch)
			i++

			continue
		}

		if mode == noLiteral && ch == '/' && i+1 < len(src) {
			switch src[i+1] {
			case '/':
				i = skipLineComment(src, i+2)
				continue
			case '*':
				i = skipBlockComment(src, i+2)
				continue
			}
		}

		out.WriteByte(ch)
		i++
	}

	return out.String()
}

// escaped reports whether the byte at pos is preceded by an odd number of
// backslashes. The backward scan stops at the start of src.
func escaped(src string, pos int) bool {
	backslashes := 0
	for k := pos - 1; k >= 0 && src[k] == '\\'; k-- {
		backslashes++
	}

	return backslashes%2 == 1
}

// skipLineComment returns the index of the newline ending the comment, or
// len(src) when the comment runs to the end of input.
func skipLineComment(src string, from int) int {
	if idx := strings.IndexByte(src[from:], '\n'); idx >= 0 {
		return from + idx
	}

	return len(src)
}

// skipBlockComment returns the index just past the closing */, or len(src)
// when the comment is never closed.
func skipBlockComment(src string, from int) int {
	if idx := strings.Index(src[from:], "*/"); idx >= 0 {
		return from + idx + 2
	}

	return len(src)
}
