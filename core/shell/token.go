package shell

import (
	"errors"
	"fmt"
	"strings"
)

// ErrSyntax reports a malformed command line. The line is not executed and
// the interpreter continues.
var ErrSyntax = errors.New("syntax error")

type TokenKind int

const (
	// TokenWord is a command name, argument or redirect target.
	TokenWord TokenKind = iota
	// TokenPipe is the | operator.
	TokenPipe
	// TokenRedirect is one of > >> 2> 2>>.
	TokenRedirect
)

type RedirectStream int

const (
	RedirectStdout RedirectStream = iota
	RedirectStderr
)

type RedirectMode int

const (
	RedirectTruncate RedirectMode = iota
	RedirectAppend
)

// Token is a single lexeme of a command line. Stream and Mode are only
// meaningful for TokenRedirect, Text only for TokenWord.
type Token struct {
	Kind   TokenKind
	Text   string
	Stream RedirectStream
	Mode   RedirectMode
}

// Tokenize splits a raw command line into word and operator tokens.
//
// Single-quoted spans are literal. Inside double quotes a backslash escapes
// only " \ $ and newline. An unquoted backslash escapes the next character.
// The operators | > >> 2> and 2>> are recognized only when unquoted and
// unescaped; 2> and 2>> only when the digit starts a fresh token, so
// `echo 2>f` redirects stderr but `foo2>bar` keeps the 2 with the word.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token
	var cur strings.Builder
	inWord := false

	flush := func() {
		if inWord {
			tokens = append(tokens, Token{Kind: TokenWord, Text: cur.String()})
			cur.Reset()
			inWord = false
		}
	}

	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		switch r := rs[i]; r {
		case '\'':
			inWord = true
			j := i + 1
			for ; j < len(rs) && rs[j] != '\''; j++ {
				cur.WriteRune(rs[j])
			}
			if j == len(rs) {
				return nil, fmt.Errorf("%w: unterminated single quote", ErrSyntax)
			}
			i = j

		case '"':
			inWord = true
			closed := false
			j := i + 1
			for ; j < len(rs); j++ {
				c := rs[j]
				if c == '"' {
					closed = true
					break
				}
				if c == '\\' && j+1 < len(rs) {
					switch rs[j+1] {
					case '"', '\\', '$', '\n':
						cur.WriteRune(rs[j+1])
						j++
						continue
					}
				}
				cur.WriteRune(c)
			}
			if !closed {
				return nil, fmt.Errorf("%w: unterminated double quote", ErrSyntax)
			}
			i = j

		case '\\':
			if i+1 == len(rs) {
				return nil, fmt.Errorf("%w: unexpected end of line after \\", ErrSyntax)
			}
			inWord = true
			cur.WriteRune(rs[i+1])
			i++

		case ' ', '\t':
			flush()

		case '|':
			flush()
			tokens = append(tokens, Token{Kind: TokenPipe})

		case '>':
			flush()
			mode := RedirectTruncate
			if i+1 < len(rs) && rs[i+1] == '>' {
				mode = RedirectAppend
				i++
			}
			tokens = append(tokens, Token{Kind: TokenRedirect, Stream: RedirectStdout, Mode: mode})

		case '2':
			// A stderr redirect only when the 2 begins a fresh token.
			if !inWord && i+1 < len(rs) && rs[i+1] == '>' {
				i++
				mode := RedirectTruncate
				if i+1 < len(rs) && rs[i+1] == '>' {
					mode = RedirectAppend
					i++
				}
				tokens = append(tokens, Token{Kind: TokenRedirect, Stream: RedirectStderr, Mode: mode})
				continue
			}
			inWord = true
			cur.WriteRune(r)

		default:
			inWord = true
			cur.WriteRune(r)
		}
	}
	flush()

	return tokens, nil
}
