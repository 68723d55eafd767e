package pashmak

import (
	"io"
	"strings"
)

// A frame is one call-stack entry: the body being executed, its label
// table, and its local instruction pointer. The bottom frame is the
// top-level stream; every call pushes another. Popping a frame resumes the
// caller where its ip already points, just past the call.
type frame struct {
	alias  string
	body   []Statement
	labels labelTable
	ip     int
}

// Run executes the prepared top-level stream from offset 0 and returns when
// the instruction pointer passes its end with an empty call stack. The
// first error aborts the run; output already written and variables already
// mutated stay as they are.
func (p *Program) Run() error {
	frames := []frame{{body: p.top, labels: p.labels}}
	for len(frames) > 0 {
		fr := &frames[len(frames)-1]
		if fr.ip >= len(fr.body) {
			frames = frames[:len(frames)-1]
			continue
		}
		st := fr.body[fr.ip]
		fr.ip++
		var err error
		switch st.Kind {
		case stmtNop, stmtSection:
			// Sections were resolved statically; at run time they only
			// occupy an offset.
		case stmtSet:
			err = p.runSet(st)
		case stmtMem:
			err = p.runMem(st)
		case stmtCopy:
			err = p.runCopy(st)
		case stmtPrint:
			err = p.runPrint(st)
		case stmtRead:
			err = p.runRead(st)
		case stmtOut:
			err = p.runOut(st)
		case stmtFree:
			err = p.runFree(st)
		case stmtIsset:
			err = p.runIsset(st)
		case stmtTypeof:
			err = p.runTypeof(st)
		case stmtCall:
			var al *Alias
			al, err = p.findAlias(st)
			if err != nil {
				break
			}
			if len(frames) >= p.stackSize {
				err = raiseStmtf(StackOverflow, st, "call stack exceeds %d frames", p.stackSize)
				break
			}
			frames = append(frames, frame{alias: al.Name, body: al.Body, labels: al.Labels})
		case stmtGoto:
			fr.ip = p.jumpTarget(st, fr)
		case stmtGotoif:
			if p.reg.Truthy() {
				fr.ip = p.jumpTarget(st, fr)
			}
		default:
			// include, alias, and endalias cannot survive preparation.
			panic("pashmak: statement " + st.Keyword + " reached the interpreter")
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// jumpTarget returns the offset of the statement following the target
// section. Targets were verified during label resolution.
func (p *Program) jumpTarget(st Statement, fr *frame) int {
	id, err := sectionID(st)
	if err != nil {
		panic("pashmak: unresolved jump survived label resolution")
	}
	return fr.labels[id] + 1
}

// findAlias resolves a call statement against the registry.
func (p *Program) findAlias(st Statement) (*Alias, error) {
	if len(st.Args) != 1 || st.Args[0].Kind != wordToken {
		return nil, raiseStmtf(SyntaxError, st, "call expects one alias name")
	}
	al, ok := p.aliases[st.Args[0].Value]
	if !ok {
		return nil, raiseStmtf(NameError, st, "alias %q is not defined", st.Args[0].Value)
	}
	return al, nil
}

// argVars checks that a statement's arguments are all variable references
// and returns their names.
func argVars(st Statement, min int) ([]string, error) {
	if len(st.Args) < min {
		return nil, raiseStmtf(SyntaxError, st, "%s expects at least %d variable(s)", st.Keyword, min)
	}
	names := make([]string, len(st.Args))
	for i, tok := range st.Args {
		if tok.Kind != varToken {
			return nil, raiseStmtf(SyntaxError, st, "%s expects variable references, not %q", st.Keyword, tok.Value)
		}
		names[i] = tok.Value
	}
	return names, nil
}

// declared returns a variable's value or a NameError.
func (p *Program) declared(st Statement, name string) (Value, error) {
	v, ok := p.vars[name]
	if !ok {
		return Value{}, raiseStmtf(NameError, st, "undeclared variable $%s", name)
	}
	return v, nil
}

// runSet declares each named variable with the absent value.
func (p *Program) runSet(st Statement) error {
	names, err := argVars(st, 1)
	if err != nil {
		return err
	}
	for _, name := range names {
		p.vars[name] = Absent
	}
	return nil
}

// runMem evaluates the argument into the working register.
func (p *Program) runMem(st Statement) error {
	v, err := evalExpr(st, st.Args, p)
	if err != nil {
		return err
	}
	p.reg = v
	return nil
}

// runCopy moves the register into a variable (one argument) or one
// variable's value into another (two arguments, source unchanged).
func (p *Program) runCopy(st Statement) error {
	names, err := argVars(st, 1)
	if err != nil {
		return err
	}
	switch len(names) {
	case 1:
		if _, err := p.declared(st, names[0]); err != nil {
			return err
		}
		p.vars[names[0]] = p.reg
	case 2:
		src, err := p.declared(st, names[0])
		if err != nil {
			return err
		}
		if _, err := p.declared(st, names[1]); err != nil {
			return err
		}
		p.vars[names[1]] = src
	default:
		return raiseStmtf(SyntaxError, st, "copy expects one or two variables")
	}
	return nil
}

// runPrint evaluates the argument and writes it, with no implicit newline.
func (p *Program) runPrint(st Statement) error {
	v, err := evalExpr(st, st.Args, p)
	if err != nil {
		return err
	}
	return p.write(st, v)
}

// runOut writes the working register. An explicit argument, conventionally
// ^, is evaluated and written instead.
func (p *Program) runOut(st Statement) error {
	v := p.reg
	if len(st.Args) > 0 {
		var err error
		v, err = evalExpr(st, st.Args, p)
		if err != nil {
			return err
		}
	}
	return p.write(st, v)
}

// runRead blocks for one input line and stores it, without its line ending,
// as a String.
func (p *Program) runRead(st Statement) error {
	names, err := argVars(st, 1)
	if err != nil {
		return err
	}
	if len(names) != 1 {
		return raiseStmtf(SyntaxError, st, "read expects one variable")
	}
	if _, err := p.declared(st, names[0]); err != nil {
		return err
	}
	line, err := p.input.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return raiseStmtf(IOError, st, "cannot read input: %v", err)
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	p.vars[names[0]] = StringValue(line)
	return nil
}

// runFree undeclares each named variable.
func (p *Program) runFree(st Statement) error {
	names, err := argVars(st, 1)
	if err != nil {
		return err
	}
	for _, name := range names {
		if _, err := p.declared(st, name); err != nil {
			return err
		}
		delete(p.vars, name)
	}
	return nil
}

// runIsset stores whether the named variable is declared into the register.
func (p *Program) runIsset(st Statement) error {
	names, err := argVars(st, 1)
	if err != nil {
		return err
	}
	if len(names) != 1 {
		return raiseStmtf(SyntaxError, st, "isset expects one variable")
	}
	_, ok := p.vars[names[0]]
	p.reg = BoolValue(ok)
	return nil
}

// runTypeof stores the kind name of the argument's value into the register.
func (p *Program) runTypeof(st Statement) error {
	v, err := evalExpr(st, st.Args, p)
	if err != nil {
		return err
	}
	p.reg = StringValue(v.TypeName())
	return nil
}

func (p *Program) write(st Statement, v Value) error {
	if _, err := io.WriteString(p.output, v.Format()); err != nil {
		return raiseStmtf(IOError, st, "cannot write output: %v", err)
	}
	return nil
}
