package pashmak

/*
This file turns the lexer's token stream into statements: one keyword plus
its raw argument tokens. Argument parsing proper happens in expr.go.
*/

import (
	"bufio"
	"io"
	"strings"
)

// stmtKind identifies what a statement does.
type stmtKind int

const (
	stmtNop stmtKind = iota

	stmtSet      // set $a $b ...
	stmtMem      // mem <expr>
	stmtCopy     // copy [$src] $dst
	stmtPrint    // print <expr>
	stmtRead     // read $var
	stmtOut      // out ^
	stmtCall     // call <name>
	stmtAlias    // alias <name>
	stmtEndalias // endalias
	stmtSection  // section <id>
	stmtGoto     // goto <id>
	stmtGotoif   // gotoif <id>
	stmtInclude  // include <expr>
	stmtFree     // free $a $b ...
	stmtIsset    // isset $var
	stmtTypeof   // typeof <expr>
)

// keywords maps statement keywords to their kinds. pass is the explicit
// no-op.
var keywords = map[string]stmtKind{
	"set":      stmtSet,
	"mem":      stmtMem,
	"copy":     stmtCopy,
	"print":    stmtPrint,
	"read":     stmtRead,
	"out":      stmtOut,
	"call":     stmtCall,
	"alias":    stmtAlias,
	"endalias": stmtEndalias,
	"section":  stmtSection,
	"goto":     stmtGoto,
	"gotoif":   stmtGotoif,
	"include":  stmtInclude,
	"free":     stmtFree,
	"isset":    stmtIsset,
	"typeof":   stmtTypeof,
	"pass":     stmtNop,
}

// A Statement is one executable unit: a keyword and its unparsed argument
// tokens, tagged with its source position.
type Statement struct {
	Kind    stmtKind
	Keyword string
	Args    []token

	File      string
	Line, Col int
}

// parse lexes src and groups the tokens into statements. The file name is
// recorded on every statement for error reporting.
func parse(src io.Reader, file string) ([]Statement, error) {
	tokens := make(chan token)
	go lex(bufio.NewReader(src), tokens)

	var stmts []Statement
	open := false
	var cur Statement
	for tok := range tokens {
		switch tok.Kind {
		case badToken:
			// Drain the channel so the lexer goroutine can exit.
			for range tokens {
			}
			return nil, raisef(SyntaxError, file, tok.Line, "%v", tok.Err)
		case commentToken:
			continue
		case semiToken:
			if open {
				stmts = append(stmts, cur)
				open = false
			}
			continue
		}
		if !open {
			if tok.Kind != wordToken {
				for range tokens {
				}
				return nil, raisef(SyntaxError, file, tok.Line, "statement must begin with a keyword, not %q", tok.Value)
			}
			kind, ok := keywords[tok.Value]
			if !ok {
				for range tokens {
				}
				return nil, raisef(SyntaxError, file, tok.Line, "unknown keyword %q", tok.Value)
			}
			cur = Statement{
				Kind:    kind,
				Keyword: tok.Value,
				File:    file,
				Line:    tok.Line,
				Col:     tok.Col,
			}
			open = true
			continue
		}
		cur.Args = append(cur.Args, tok)
	}
	if open {
		return nil, raisef(SyntaxError, file, cur.Line, "missing ';' after %q statement", cur.Keyword)
	}
	return stmts, nil
}

// parseString parses source held in a string.
func parseString(src, file string) ([]Statement, error) {
	return parse(strings.NewReader(src), file)
}
