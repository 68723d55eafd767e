package pashmak

import "fmt"

// ErrKind classifies interpreter errors.
type ErrKind int

const (
	// SyntaxError reports malformed source: an unknown keyword, a missing
	// statement terminator, a bad literal, or a misshapen statement.
	SyntaxError ErrKind = iota
	// NameError reports an undeclared variable, an unregistered alias, or
	// an unresolved section label.
	NameError
	// TypeError reports an operator applied to incompatible operands or a
	// failed conversion.
	TypeError
	// IncludeCycleError reports a file including itself, directly or
	// through other files.
	IncludeCycleError
	// IOError reports an unreadable include target or failed input.
	IOError
	// StackOverflow reports call nesting beyond the stack capacity.
	StackOverflow
)

func (k ErrKind) String() string {
	switch k {
	case SyntaxError:
		return "SyntaxError"
	case NameError:
		return "NameError"
	case TypeError:
		return "TypeError"
	case IncludeCycleError:
		return "IncludeCycleError"
	case IOError:
		return "IOError"
	case StackOverflow:
		return "StackOverflow"
	}
	panic("invalid ErrKind")
}

// Error is an interpreter error, carrying the originating statement's file
// and line.
type Error struct {
	Kind    ErrKind
	Message string
	File    string
	Line    int
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%v: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%v: %s (%s:%d)", e.Kind, e.Message, e.File, e.Line)
}

// raisef creates an Error at the given position.
func raisef(kind ErrKind, file string, line int, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), File: file, Line: line}
}

// raiseStmtf creates an Error at a statement's position.
func raiseStmtf(kind ErrKind, st Statement, format string, args ...interface{}) *Error {
	return raisef(kind, st.File, st.Line, format, args...)
}

// ErrorKind reports the ErrKind of err when it is an interpreter Error.
func ErrorKind(err error) (ErrKind, bool) {
	if e, ok := err.(*Error); ok {
		return e.Kind, true
	}
	return 0, false
}
