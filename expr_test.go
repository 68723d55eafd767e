package pashmak

import "testing"

// evalSource parses src as one mem statement's argument and evaluates it in
// the given scope.
func evalSource(t *testing.T, src string, sc scope) (Value, error) {
	t.Helper()
	stmts, err := parseString("mem "+src+";", "expr_test")
	if err != nil {
		t.Fatalf("could not parse %q: %v", src, err)
	}
	return evalExpr(stmts[0], stmts[0].Args, sc)
}

func testScope() *Program {
	p := NewProgram()
	p.vars["n"] = NumberValue(10)
	p.vars["s"] = StringValue("hi")
	p.vars["unset"] = Absent
	p.reg = NumberValue(3)
	return p
}

func TestEvalExpr(t *testing.T) {
	cases := map[string]struct {
		src  string
		want Value
	}{
		"Number":          {"42", NumberValue(42)},
		"String":          {"'abc'", StringValue("abc")},
		"Variable":        {"$n", NumberValue(10)},
		"Register":        {"^", NumberValue(3)},
		"AbsentVariable":  {"$unset", Absent},
		"Precedence":      {"1 + 2 * 3", NumberValue(7)},
		"Parens":          {"(1 + 2) * 3", NumberValue(9)},
		"DivTruncates":    {"7 / 2", NumberValue(3)},
		"UnaryMinus":      {"-$n", NumberValue(-10)},
		"UnaryInExpr":     {"1 - -2", NumberValue(3)},
		"Concat":          {"$s + ' there'", StringValue("hi there")},
		"CompareLow":      {"1 + 1 == 2", BoolValue(true)},
		"CompareVars":     {"$n < 100", BoolValue(true)},
		"ConvStr":         {"str(1 + 2) + 'x'", StringValue("3x")},
		"ConvInt":         {"int('12') + 2", NumberValue(14)},
		"ConvNested":      {"int(str($n)) + 1", NumberValue(11)},
		"RegisterInExpr":  {"^ * 2", NumberValue(6)},
	}
	sc := testScope()
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			got, err := evalSource(t, c.src, sc)
			if err != nil {
				t.Fatalf("%q failed: %v", c.src, err)
			}
			if got != c.want {
				t.Errorf("%q: want %v, got %v", c.src, c.want, got)
			}
		})
	}
}

func TestEvalExprErrors(t *testing.T) {
	cases := map[string]struct {
		src  string
		kind ErrKind
	}{
		"Undeclared":    {"$nope", NameError},
		"MixedAdd":      {"1 + 'a'", TypeError},
		"SubStrings":    {"'a' - 'b'", TypeError},
		"DivZero":       {"1 / 0", TypeError},
		"BadInt":        {"int('x')", TypeError},
		"MissingClose":  {"(1 + 2", SyntaxError},
		"TrailingJunk":  {"1 2", SyntaxError},
		"EmptyExpr":     {"()", SyntaxError},
		"BareWord":      {"hello", SyntaxError},
		"ConvNoParens":  {"str 1", SyntaxError},
		"UnaryString":   {"-'a'", TypeError},
	}
	sc := testScope()
	for name, c := range cases {
		c := c
		t.Run(name, func(t *testing.T) {
			_, err := evalSource(t, c.src, sc)
			if err == nil {
				t.Fatalf("%q succeeded", c.src)
			}
			if kindOf(t, err) != c.kind {
				t.Errorf("%q: want %v, got %v", c.src, c.kind, err)
			}
		})
	}
}

// TestEvalConstantContext checks that include path expressions reject state
// references but allow literal arithmetic.
func TestEvalConstantContext(t *testing.T) {
	if v, err := evalSource(t, "'lib/' + 'a' + '.pashm'", nil); err != nil || v != StringValue("lib/a.pashm") {
		t.Errorf("constant concat: got %v (%v)", v, err)
	}
	if _, err := evalSource(t, "$base + '.pashm'", nil); err == nil {
		t.Error("variable reference in constant context succeeded")
	} else if kindOf(t, err) != SyntaxError {
		t.Errorf("want a SyntaxError, got %v", err)
	}
	if _, err := evalSource(t, "^", nil); err == nil {
		t.Error("register reference in constant context succeeded")
	}
}

func TestEvalErrorPosition(t *testing.T) {
	stmts, err := parseString("pass;\nmem 1 + 'a';", "pos_test")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = evalExpr(stmts[1], stmts[1].Args, testScope())
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("not an interpreter error: %v", err)
	}
	if e.File != "pos_test" || e.Line != 2 {
		t.Errorf("wrong position: %s:%d", e.File, e.Line)
	}
}
