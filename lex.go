package pashmak

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// A token is a single lexical element.
type token struct {
	Kind  tokenKind
	Value string
	Err   error

	Line, Col int
}

type tokenKind int

const (
	badToken tokenKind = iota

	semiToken    // statement terminator ;
	wordToken    // keyword or alias name
	varToken     // $name, Value holds the name without the sigil
	regToken     // working register ^
	numberToken  // integer literal
	stringToken  // 'string', Value holds the decoded content
	opToken      // + - * / < > <= >= == !=
	openToken    // (
	closeToken   // )
	commentToken // # or // to end of line
)

// lexFn is a lexer state function. Each lexFn lexes a token, sends it on the
// supplied channel, and returns the next lexFn to use.
type lexFn func(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int)

// lex converts a source into a stream of tokens.
func lex(src *bufio.Reader, tokens chan<- token) {
	state := eatSpace
	line, col := 1, 1
	for state != nil {
		state, line, col = state(src, tokens, line, col)
	}
	close(tokens)
}

// accept appends the next run of characters in src which satisfy the predicate
// to b. Returns b after appending, the first rune which did not satisfy the
// predicate, and any error that occurred. If there was no such error, the
// last rune is unread.
func accept(src *bufio.Reader, predicate func(rune) bool, b []byte) ([]byte, rune, error) {
	r, _, err := src.ReadRune()
	for {
		if err != nil {
			return b, r, err
		}
		if !predicate(r) {
			break
		}
		b = append(b, string(r)...)
		r, _, err = src.ReadRune()
	}
	src.UnreadRune()
	return b, r, nil
}

// lexsend is a shortcut for sending a token with error checking. It returns
// eatSpace as the default lexing function.
func lexsend(err error, tokens chan<- token, good token) lexFn {
	if err != nil && err != io.EOF {
		good.Kind = badToken
		good.Err = err
	}
	tokens <- good
	if err != nil {
		return nil
	}
	return eatSpace
}

func isWordStart(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z' || r == '_' || r >= 0x80
}

func isWordPart(r rune) bool {
	return isWordStart(r) || '0' <= r && r <= '9'
}

// eatSpace consumes space and decides the next lexFn to use. Newlines are
// whitespace here; only the semicolon terminates statements.
func eatSpace(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if err != io.EOF {
				tokens <- token{Kind: badToken, Err: err, Line: line, Col: col}
			}
			return nil, line, col
		}
		if r == '\n' {
			line++
			col = 1
			continue
		}
		if strings.ContainsRune(" \r\f\t\v", r) {
			col++
			continue
		}
		src.UnreadRune()
		break
	}
	r, _, _ := src.ReadRune()
	src.UnreadRune()
	switch {
	case r == ';':
		src.ReadRune()
		tokens <- token{Kind: semiToken, Value: ";", Line: line, Col: col}
		return eatSpace, line, col + 1
	case isWordStart(r):
		return lexWord, line, col
	case r == '$':
		return lexVar, line, col
	case r == '^':
		src.ReadRune()
		tokens <- token{Kind: regToken, Value: "^", Line: line, Col: col}
		return eatSpace, line, col + 1
	case '0' <= r && r <= '9':
		return lexNumber, line, col
	case r == '\'':
		return lexString, line, col
	case r == '#':
		return lexHashComment, line, col
	case r == '/':
		return lexSlash, line, col
	case r == '+', r == '-', r == '*':
		src.ReadRune()
		tokens <- token{Kind: opToken, Value: string(r), Line: line, Col: col}
		return eatSpace, line, col + 1
	case r == '<', r == '>', r == '=', r == '!':
		return lexCompare, line, col
	case r == '(':
		src.ReadRune()
		tokens <- token{Kind: openToken, Value: "(", Line: line, Col: col}
		return eatSpace, line, col + 1
	case r == ')':
		src.ReadRune()
		tokens <- token{Kind: closeToken, Value: ")", Line: line, Col: col}
		return eatSpace, line, col + 1
	}
	src.ReadRune()
	tokens <- token{
		Kind:  badToken,
		Value: string(r),
		Err:   fmt.Errorf("invalid character %q", r),
		Line:  line,
		Col:   col,
	}
	return nil, line, col
}

// lexWord lexes a bare word: a keyword, conversion name, or alias name.
func lexWord(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, isWordPart, nil)
	ncol := col + len(b)
	return lexsend(err, tokens, token{Kind: wordToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexVar lexes a $-prefixed variable reference. The sigil is consumed but not
// kept in the token value.
func lexVar(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	src.ReadRune() // $
	b, _, err := accept(src, isWordPart, nil)
	ncol := col + len(b) + 1
	if len(b) == 0 {
		tokens <- token{
			Kind: badToken,
			Err:  fmt.Errorf("'$' must be followed by a variable name"),
			Line: line,
			Col:  col,
		}
		return nil, line, ncol
	}
	return lexsend(err, tokens, token{Kind: varToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexNumber lexes an integer literal.
func lexNumber(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, func(r rune) bool { return '0' <= r && r <= '9' }, nil)
	ncol := col + len(b)
	return lexsend(err, tokens, token{Kind: numberToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexString lexes a single-quoted string literal. Escape sequences are
// decoded here, so the token value is the string's content.
func lexString(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	src.ReadRune() // opening quote
	var b []byte
	nline := line
	ncol := col + 1
	for {
		r, _, err := src.ReadRune()
		if err != nil {
			if err == io.EOF {
				err = fmt.Errorf("unterminated string literal")
			}
			tokens <- token{Kind: badToken, Value: string(b), Err: err, Line: line, Col: col}
			return nil, nline, ncol
		}
		ncol++
		if r == '\n' {
			nline++
			ncol = 1
		}
		switch r {
		case '\'':
			return lexsend(nil, tokens, token{Kind: stringToken, Value: string(b), Line: line, Col: col}), nline, ncol
		case '\\':
			e, _, err := src.ReadRune()
			if err != nil {
				if err == io.EOF {
					err = fmt.Errorf("unterminated string literal")
				}
				tokens <- token{Kind: badToken, Value: string(b), Err: err, Line: line, Col: col}
				return nil, nline, ncol
			}
			ncol++
			switch e {
			case 'n':
				b = append(b, '\n')
			case 't':
				b = append(b, '\t')
			case '\\':
				b = append(b, '\\')
			case '\'':
				b = append(b, '\'')
			default:
				tokens <- token{
					Kind: badToken,
					Err:  fmt.Errorf("invalid escape sequence \\%c", e),
					Line: line,
					Col:  col,
				}
				return nil, nline, ncol
			}
		default:
			b = append(b, string(r)...)
		}
	}
}

// lexHashComment lexes a # comment.
func lexHashComment(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	b, _, err := accept(src, func(r rune) bool { return r != '\n' }, nil)
	ncol := col + len(b)
	return lexsend(err, tokens, token{Kind: commentToken, Value: string(b), Line: line, Col: col}), line, ncol
}

// lexSlash decides between a // comment and the division operator.
func lexSlash(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	src.ReadRune() // /
	r, _, err := src.ReadRune()
	if err == nil && r == '/' {
		b, _, err := accept(src, func(r rune) bool { return r != '\n' }, []byte("//"))
		ncol := col + len(b)
		return lexsend(err, tokens, token{Kind: commentToken, Value: string(b), Line: line, Col: col}), line, ncol
	}
	if err == nil {
		src.UnreadRune()
	}
	return lexsend(nil, tokens, token{Kind: opToken, Value: "/", Line: line, Col: col}), line, col + 1
}

// lexCompare lexes < > <= >= == !=. A lone = or ! is an error.
func lexCompare(src *bufio.Reader, tokens chan<- token, line, col int) (lexFn, int, int) {
	r, _, _ := src.ReadRune()
	e, _, err := src.ReadRune()
	if err == nil && e == '=' {
		return lexsend(nil, tokens, token{Kind: opToken, Value: string(r) + "=", Line: line, Col: col}), line, col + 2
	}
	if err == nil {
		src.UnreadRune()
	}
	if r == '=' || r == '!' {
		tokens <- token{
			Kind:  badToken,
			Value: string(r),
			Err:   fmt.Errorf("invalid operator %q", string(r)),
			Line:  line,
			Col:   col,
		}
		return nil, line, col + 1
	}
	return lexsend(nil, tokens, token{Kind: opToken, Value: string(r), Line: line, Col: col}), line, col + 1
}
