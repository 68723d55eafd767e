package pashmak

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
)

// DefaultStackSize is the call-stack capacity a Program starts with.
const DefaultStackSize = 1000

// A Program holds everything one script run owns: the global symbol table,
// the working register, the alias registry, and the prepared top-level
// statement stream. A Program is not safe for concurrent use; exactly one
// statement executes at a time.
type Program struct {
	vars    map[string]Value
	reg     Value
	aliases map[string]*Alias

	top    []Statement
	labels labelTable

	loader    Loader
	input     *bufio.Reader
	output    io.Writer
	stackSize int
}

// An Option configures a Program.
type Option func(*Program)

// WithLoader sets the script source loader. The default reads the
// filesystem.
func WithLoader(l Loader) Option {
	return func(p *Program) { p.loader = l }
}

// WithInput sets the reader serving read statements. The default is stdin.
func WithInput(r io.Reader) Option {
	return func(p *Program) { p.input = bufio.NewReader(r) }
}

// WithOutput sets the writer receiving print and out. The default is stdout.
func WithOutput(w io.Writer) Option {
	return func(p *Program) { p.output = w }
}

// WithStackSize sets the call-stack capacity. Calls nested deeper than this
// fail with StackOverflow.
func WithStackSize(n int) Option {
	return func(p *Program) { p.stackSize = n }
}

// NewProgram creates an empty program connected to the process streams.
func NewProgram(opts ...Option) *Program {
	p := &Program{
		vars:      map[string]Value{},
		aliases:   map[string]*Alias{},
		loader:    FileLoader{},
		input:     bufio.NewReader(os.Stdin),
		output:    os.Stdout,
		stackSize: DefaultStackSize,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// LoadFile loads, expands, and resolves the given script file. The file's
// directory anchors relative include paths.
func (p *Program) LoadFile(path string) error {
	path = filepath.Clean(path)
	rc, err := p.loader.Load(path)
	if err != nil {
		return raisef(IOError, "", 0, "cannot open %q: %v", path, err)
	}
	stmts, err := parse(rc, path)
	rc.Close()
	if err != nil {
		return err
	}
	return p.prepare(stmts, filepath.Dir(path), map[string]bool{path: true})
}

// LoadString loads source held in a string, labeled with the given name in
// error messages. Relative include paths resolve against the current
// directory.
func (p *Program) LoadString(src, name string) error {
	stmts, err := parseString(src, name)
	if err != nil {
		return err
	}
	return p.prepare(stmts, ".", map[string]bool{})
}

// prepare runs the static phases on a freshly parsed top-level stream:
// include expansion, alias extraction, and label resolution. Nothing
// executes until all three succeed.
func (p *Program) prepare(stmts []Statement, dir string, inProgress map[string]bool) error {
	stmts, err := expandIncludes(stmts, dir, p.loader, inProgress)
	if err != nil {
		return err
	}
	top, aliases, err := extractAliases(stmts)
	if err != nil {
		return err
	}
	labels, err := resolveLabels(top)
	if err != nil {
		return err
	}
	p.top = top
	p.aliases = aliases
	p.labels = labels
	return nil
}

// lookup implements scope.
func (p *Program) lookup(name string) (Value, bool) {
	v, ok := p.vars[name]
	return v, ok
}

// register implements scope.
func (p *Program) register() Value { return p.reg }

// Register returns the working register's current value.
func (p *Program) Register() Value { return p.reg }

// Var returns the named variable's value and whether it is declared.
func (p *Program) Var(name string) (Value, bool) {
	return p.lookup(name)
}
