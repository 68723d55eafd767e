package pashmak

/*
Recursive descent over one statement's argument tokens. Precedence, lowest
first: comparison, additive, multiplicative, unary minus, primary.
*/

import "strconv"

// A scope provides the variable and register reads an expression needs. The
// interpreter is the usual scope; include expansion evaluates with a nil
// scope, making any state reference a static error.
type scope interface {
	lookup(name string) (Value, bool)
	register() Value
}

// evalExpr evaluates a statement's argument tokens as one expression.
func evalExpr(st Statement, toks []token, sc scope) (Value, error) {
	e := exprParser{toks: toks, st: st, sc: sc}
	v, err := e.comparison()
	if err != nil {
		return Value{}, err
	}
	if e.pos < len(e.toks) {
		return Value{}, e.syntaxf("unexpected %q after expression", e.toks[e.pos].Value)
	}
	return v, nil
}

type exprParser struct {
	toks []token
	pos  int
	st   Statement
	sc   scope
}

func (e *exprParser) syntaxf(format string, args ...interface{}) error {
	return raiseStmtf(SyntaxError, e.st, format, args...)
}

// annotate stamps the statement's position onto position-less errors coming
// out of the value operations.
func (e *exprParser) annotate(err error) error {
	if pe, ok := err.(*Error); ok && pe.File == "" {
		pe.File, pe.Line = e.st.File, e.st.Line
	}
	return err
}

func (e *exprParser) peek() (token, bool) {
	if e.pos >= len(e.toks) {
		return token{}, false
	}
	return e.toks[e.pos], true
}

func (e *exprParser) acceptOp(ops ...string) (string, bool) {
	tok, ok := e.peek()
	if !ok || tok.Kind != opToken {
		return "", false
	}
	for _, op := range ops {
		if tok.Value == op {
			e.pos++
			return op, true
		}
	}
	return "", false
}

func (e *exprParser) comparison() (Value, error) {
	v, err := e.additive()
	if err != nil {
		return Value{}, err
	}
	for {
		op, ok := e.acceptOp("<", ">", "<=", ">=", "==", "!=")
		if !ok {
			return v, nil
		}
		rhs, err := e.additive()
		if err != nil {
			return Value{}, err
		}
		v, err = valueCompare(op, v, rhs)
		if err != nil {
			return Value{}, e.annotate(err)
		}
	}
}

func (e *exprParser) additive() (Value, error) {
	v, err := e.multiplicative()
	if err != nil {
		return Value{}, err
	}
	for {
		op, ok := e.acceptOp("+", "-")
		if !ok {
			return v, nil
		}
		rhs, err := e.multiplicative()
		if err != nil {
			return Value{}, err
		}
		if op == "+" {
			v, err = valueAdd(v, rhs)
		} else {
			v, err = valueArith(op, v, rhs)
		}
		if err != nil {
			return Value{}, e.annotate(err)
		}
	}
}

func (e *exprParser) multiplicative() (Value, error) {
	v, err := e.unary()
	if err != nil {
		return Value{}, err
	}
	for {
		op, ok := e.acceptOp("*", "/")
		if !ok {
			return v, nil
		}
		rhs, err := e.unary()
		if err != nil {
			return Value{}, err
		}
		v, err = valueArith(op, v, rhs)
		if err != nil {
			return Value{}, e.annotate(err)
		}
	}
}

func (e *exprParser) unary() (Value, error) {
	if _, ok := e.acceptOp("-"); ok {
		v, err := e.unary()
		if err != nil {
			return Value{}, err
		}
		v, err = valueArith("-", NumberValue(0), v)
		if err != nil {
			return Value{}, e.annotate(err)
		}
		return v, nil
	}
	return e.primary()
}

func (e *exprParser) primary() (Value, error) {
	tok, ok := e.peek()
	if !ok {
		return Value{}, e.syntaxf("expected expression")
	}
	switch tok.Kind {
	case numberToken:
		e.pos++
		n, err := strconv.ParseInt(tok.Value, 10, 64)
		if err != nil {
			return Value{}, e.syntaxf("invalid number literal %q", tok.Value)
		}
		return NumberValue(n), nil
	case stringToken:
		e.pos++
		return StringValue(tok.Value), nil
	case varToken:
		e.pos++
		if e.sc == nil {
			return Value{}, e.syntaxf("include path must be constant; cannot reference $%s", tok.Value)
		}
		v, ok := e.sc.lookup(tok.Value)
		if !ok {
			return Value{}, raiseStmtf(NameError, e.st, "undeclared variable $%s", tok.Value)
		}
		return v, nil
	case regToken:
		e.pos++
		if e.sc == nil {
			return Value{}, e.syntaxf("include path must be constant; cannot reference ^")
		}
		return e.sc.register(), nil
	case wordToken:
		switch tok.Value {
		case "str", "int":
			return e.conversion(tok.Value)
		}
		return Value{}, e.syntaxf("unexpected word %q in expression", tok.Value)
	case openToken:
		e.pos++
		v, err := e.comparison()
		if err != nil {
			return Value{}, err
		}
		if tok, ok := e.peek(); !ok || tok.Kind != closeToken {
			return Value{}, e.syntaxf("missing ')'")
		}
		e.pos++
		return v, nil
	}
	return Value{}, e.syntaxf("unexpected %q in expression", tok.Value)
}

func (e *exprParser) conversion(name string) (Value, error) {
	e.pos++
	if tok, ok := e.peek(); !ok || tok.Kind != openToken {
		return Value{}, e.syntaxf("%s must be called as %s(...)", name, name)
	}
	e.pos++
	v, err := e.comparison()
	if err != nil {
		return Value{}, err
	}
	if tok, ok := e.peek(); !ok || tok.Kind != closeToken {
		return Value{}, e.syntaxf("missing ')' after %s(", name)
	}
	e.pos++
	if name == "str" {
		v, err = convString(v)
	} else {
		v, err = convInt(v)
	}
	if err != nil {
		return Value{}, e.annotate(err)
	}
	return v, nil
}
