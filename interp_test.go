package pashmak

import (
	"bytes"
	"strings"
	"testing"
)

// runSource loads src as the whole program and runs it against the given
// stdin, returning everything written to the output.
func runSource(t *testing.T, src, stdin string) (*Program, string, error) {
	t.Helper()
	out := &bytes.Buffer{}
	p := NewProgram(
		WithLoader(MapLoader{}),
		WithInput(strings.NewReader(stdin)),
		WithOutput(out),
	)
	if err := p.LoadString(src, "test.pashm"); err != nil {
		return p, out.String(), err
	}
	err := p.Run()
	return p, out.String(), err
}

func TestSetDeclaresAbsent(t *testing.T) {
	p, _, err := runSource(t, "set $a $b;", "")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	for _, name := range []string{"a", "b"} {
		v, ok := p.Var(name)
		if !ok {
			t.Errorf("$%s is not declared", name)
		}
		if v != Absent {
			t.Errorf("$%s: want absent, got %v", name, v)
		}
	}
	if _, ok := p.Var("c"); ok {
		t.Error("$c is declared")
	}
}

func TestMemAndCopy(t *testing.T) {
	p, _, err := runSource(t, "set $a;\nmem 2 + 3;\ncopy $a;", "")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if v, _ := p.Var("a"); v != NumberValue(5) {
		t.Errorf("$a: want 5, got %v", v)
	}
	if p.Register() != NumberValue(5) {
		t.Errorf("register: want 5, got %v", p.Register())
	}
}

// TestCopyTwoArgs checks that copy $src $dst moves the source's value and
// leaves the source unchanged.
func TestCopyTwoArgs(t *testing.T) {
	p, _, err := runSource(t, "set $a $b;\nmem 7;\ncopy $a;\ncopy $a $b;", "")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if v, _ := p.Var("a"); v != NumberValue(7) {
		t.Errorf("$a: want 7, got %v", v)
	}
	if v, _ := p.Var("b"); v != NumberValue(7) {
		t.Errorf("$b: want 7, got %v", v)
	}
}

func TestPrintAndOut(t *testing.T) {
	_, out, err := runSource(t, "mem 6 * 7;\nout ^;\nprint ' and ';\nout;\nprint '\\n';", "")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "42 and 42\n" {
		t.Errorf("wrong output %q", out)
	}
}

func TestReadStoresString(t *testing.T) {
	p, out, err := runSource(t, "set $x;\nread $x;\nmem $x + '!';\nout ^;", "hello\n")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "hello!" {
		t.Errorf("wrong output %q", out)
	}
	if v, _ := p.Var("x"); v != StringValue("hello") {
		t.Errorf("$x: want 'hello', got %v", v)
	}
}

func TestReadStripsCarriageReturn(t *testing.T) {
	p, _, err := runSource(t, "set $x;\nread $x;", "dos line\r\n")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if v, _ := p.Var("x"); v != StringValue("dos line") {
		t.Errorf("$x: want 'dos line', got %v", v)
	}
}

func TestReadWithoutInput(t *testing.T) {
	_, _, err := runSource(t, "set $x;\nread $x;", "")
	if err == nil {
		t.Fatal("read with empty input succeeded")
	}
	if kindOf(t, err) != IOError {
		t.Errorf("want an IOError, got %v", err)
	}
}

func TestFreeIssetTypeof(t *testing.T) {
	src := `
set $a;
isset $a;
out ^;
print ' ';
free $a;
isset $a;
out ^;
print ' ';
typeof 1 + 1;
out ^;
print ' ';
typeof 'x';
out ^;
`
	_, out, err := runSource(t, src, "")
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if out != "true false number string" {
		t.Errorf("wrong output %q", out)
	}
}

func TestRuntimeNameErrors(t *testing.T) {
	cases := map[string]string{
		"MemUndeclared":      "mem $a;",
		"CopyToUndeclared":   "mem 1;\ncopy $a;",
		"CopyFromUndeclared": "set $b;\ncopy $a $b;",
		"ReadUndeclared":     "read $a;",
		"FreeUndeclared":     "free $a;",
		"FreeTwice":          "set $a;\nfree $a;\nfree $a;",
	}
	for name, src := range cases {
		src := src
		t.Run(name, func(t *testing.T) {
			_, _, err := runSource(t, src, "x\n")
			if err == nil {
				t.Fatalf("%q succeeded", src)
			}
			if kindOf(t, err) != NameError {
				t.Errorf("want a NameError, got %v", err)
			}
		})
	}
}

// TestErrorKeepsOutput checks that output produced before a runtime error
// is not rolled back.
func TestErrorKeepsOutput(t *testing.T) {
	_, out, err := runSource(t, "print 'before';\nmem $nope;", "")
	if err == nil {
		t.Fatal("run succeeded")
	}
	if out != "before" {
		t.Errorf("want output %q, got %q", "before", out)
	}
}

func TestRuntimeErrorPosition(t *testing.T) {
	_, _, err := runSource(t, "pass;\npass;\nmem 1 + 'x';", "")
	e, ok := err.(*Error)
	if !ok {
		t.Fatalf("not an interpreter error: %v", err)
	}
	if e.Kind != TypeError || e.File != "test.pashm" || e.Line != 3 {
		t.Errorf("wrong error %v", err)
	}
}

func TestStatementShapeErrors(t *testing.T) {
	cases := map[string]string{
		"SetNoArgs":      "set;",
		"SetNonVariable": "set 1;",
		"CopyThreeArgs":  "set $a $b $c;\ncopy $a $b $c;",
		"ReadTwoVars":    "set $a $b;\nread $a $b;",
		"CallNoName":     "call;",
		"IssetTwoVars":   "set $a $b;\nisset $a $b;",
	}
	for name, src := range cases {
		src := src
		t.Run(name, func(t *testing.T) {
			_, _, err := runSource(t, src, "")
			if err == nil {
				t.Fatalf("%q succeeded", src)
			}
			if kindOf(t, err) != SyntaxError {
				t.Errorf("want a SyntaxError, got %v", err)
			}
		})
	}
}
