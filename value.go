package pashmak

import "strconv"

// A Value is one dynamically typed scripting value: a number, a string, a
// boolean, or the absent value a variable holds between set and its first
// assignment.
type Value struct {
	kind valueKind
	num  int64
	str  string
	b    bool
}

type valueKind int

const (
	absentKind valueKind = iota
	numberKind
	stringKind
	booleanKind
)

func (k valueKind) String() string {
	switch k {
	case absentKind:
		return "absent"
	case numberKind:
		return "number"
	case stringKind:
		return "string"
	case booleanKind:
		return "boolean"
	}
	panic("invalid valueKind")
}

// NumberValue returns a Value holding a number.
func NumberValue(n int64) Value { return Value{kind: numberKind, num: n} }

// StringValue returns a Value holding a string.
func StringValue(s string) Value { return Value{kind: stringKind, str: s} }

// BoolValue returns a Value holding a boolean.
func BoolValue(b bool) Value { return Value{kind: booleanKind, b: b} }

// Absent is the value of a declared but never assigned variable. It is the
// zero Value.
var Absent = Value{}

// TypeName returns the name of the value's kind, as reported by typeof.
func (v Value) TypeName() string { return v.kind.String() }

// Format renders the value the way print and str() do.
func (v Value) Format() string {
	switch v.kind {
	case absentKind:
		return "absent"
	case numberKind:
		return strconv.FormatInt(v.num, 10)
	case stringKind:
		return v.str
	case booleanKind:
		if v.b {
			return "true"
		}
		return "false"
	}
	panic("invalid valueKind")
}

// Truthy reports the value's truth for gotoif: nonzero numbers, non-empty
// strings, and true are truthy; absent is not.
func (v Value) Truthy() bool {
	switch v.kind {
	case absentKind:
		return false
	case numberKind:
		return v.num != 0
	case stringKind:
		return v.str != ""
	case booleanKind:
		return v.b
	}
	panic("invalid valueKind")
}

// typeErrorf builds a TypeError with no position; the evaluator fills the
// position in before returning it.
func typeErrorf(format string, args ...interface{}) *Error {
	return raisef(TypeError, "", 0, format, args...)
}

// valueAdd implements +: numeric addition or string concatenation. Mixing
// kinds is a TypeError.
func valueAdd(a, b Value) (Value, error) {
	switch {
	case a.kind == numberKind && b.kind == numberKind:
		return NumberValue(a.num + b.num), nil
	case a.kind == stringKind && b.kind == stringKind:
		return StringValue(a.str + b.str), nil
	}
	return Value{}, typeErrorf("cannot add %s to %s", b.kind, a.kind)
}

// valueArith implements - * / on numbers.
func valueArith(op string, a, b Value) (Value, error) {
	if a.kind != numberKind || b.kind != numberKind {
		return Value{}, typeErrorf("operator %q needs numbers, not %s and %s", op, a.kind, b.kind)
	}
	switch op {
	case "-":
		return NumberValue(a.num - b.num), nil
	case "*":
		return NumberValue(a.num * b.num), nil
	case "/":
		if b.num == 0 {
			return Value{}, typeErrorf("division by zero")
		}
		return NumberValue(a.num / b.num), nil
	}
	panic("invalid arithmetic operator " + op)
}

// numeric reports the value's numeric interpretation for comparison: numbers
// themselves and strings that look like integer literals.
func (v Value) numeric() (int64, bool) {
	switch v.kind {
	case numberKind:
		return v.num, true
	case stringKind:
		n, err := strconv.ParseInt(v.str, 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// valueCompare implements < > <= >= == !=. When both sides look numeric the
// comparison is numeric; otherwise the rendered strings are compared.
func valueCompare(op string, a, b Value) (Value, error) {
	var c int
	an, aok := a.numeric()
	bn, bok := b.numeric()
	if aok && bok {
		switch {
		case an < bn:
			c = -1
		case an > bn:
			c = 1
		}
	} else {
		as, bs := a.Format(), b.Format()
		switch {
		case as < bs:
			c = -1
		case as > bs:
			c = 1
		}
	}
	switch op {
	case "<":
		return BoolValue(c < 0), nil
	case ">":
		return BoolValue(c > 0), nil
	case "<=":
		return BoolValue(c <= 0), nil
	case ">=":
		return BoolValue(c >= 0), nil
	case "==":
		return BoolValue(c == 0), nil
	case "!=":
		return BoolValue(c != 0), nil
	}
	panic("invalid comparison operator " + op)
}

// convString implements str(): any value renders to its string form.
func convString(v Value) (Value, error) {
	return StringValue(v.Format()), nil
}

// convInt implements int(): numbers pass through, booleans map to 1 and 0,
// and strings must parse as integers.
func convInt(v Value) (Value, error) {
	switch v.kind {
	case numberKind:
		return v, nil
	case booleanKind:
		if v.b {
			return NumberValue(1), nil
		}
		return NumberValue(0), nil
	case stringKind:
		n, err := strconv.ParseInt(v.str, 10, 64)
		if err != nil {
			return Value{}, typeErrorf("int() cannot convert %q", v.str)
		}
		return NumberValue(n), nil
	}
	return Value{}, typeErrorf("int() cannot convert %s", v.kind)
}
