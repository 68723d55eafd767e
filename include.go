package pashmak

import (
	"path/filepath"
	"strings"
)

/*
Include expansion runs before alias extraction and label resolution, so
included aliases and sections behave as if written inline. Expansion is
purely textual: the include statement is replaced by the target's statements.
The result contains no include statements, which makes re-expansion a no-op.
*/

// expandIncludes splices every include statement's target into the stream,
// recursively. dir is the directory relative paths resolve against.
// inProgress is the set of paths on the current expansion chain; reaching
// one of them again is a cycle. A path may be included twice along separate
// branches, so entries are removed once their subtree is fully expanded.
func expandIncludes(stmts []Statement, dir string, loader Loader, inProgress map[string]bool) ([]Statement, error) {
	out := make([]Statement, 0, len(stmts))
	for _, st := range stmts {
		if st.Kind != stmtInclude {
			out = append(out, st)
			continue
		}
		v, err := evalExpr(st, st.Args, nil)
		if err != nil {
			return nil, err
		}
		if v.kind != stringKind {
			return nil, raiseStmtf(TypeError, st, "include path must be a string, not %s", v.kind)
		}
		sub, err := expandTarget(st, v.str, dir, loader, inProgress)
		if err != nil {
			return nil, err
		}
		out = append(out, sub...)
	}
	return out, nil
}

// expandTarget loads, parses, and recursively expands one include target.
func expandTarget(st Statement, path, dir string, loader Loader, inProgress map[string]bool) ([]Statement, error) {
	if strings.HasPrefix(path, "@") {
		return expandModule(st, path, dir, loader, inProgress)
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	path = filepath.Clean(path)
	if inProgress[path] {
		return nil, raiseStmtf(IncludeCycleError, st, "include cycle through %q", path)
	}
	rc, err := loader.Load(path)
	if err != nil {
		return nil, raiseStmtf(IOError, st, "cannot include %q: %v", path, err)
	}
	stmts, err := parse(rc, path)
	rc.Close()
	if err != nil {
		return nil, err
	}
	inProgress[path] = true
	sub, err := expandIncludes(stmts, filepath.Dir(path), loader, inProgress)
	delete(inProgress, path)
	return sub, err
}

// expandModule resolves an @name include against the embedded library.
func expandModule(st Statement, name, dir string, loader Loader, inProgress map[string]bool) ([]Statement, error) {
	src, ok := modules[strings.TrimPrefix(name, "@")]
	if !ok {
		return nil, raiseStmtf(IOError, st, "cannot include %q: no such module", name)
	}
	if inProgress[name] {
		return nil, raiseStmtf(IncludeCycleError, st, "include cycle through %q", name)
	}
	stmts, err := parseString(src, name)
	if err != nil {
		return nil, err
	}
	inProgress[name] = true
	sub, err := expandIncludes(stmts, dir, loader, inProgress)
	delete(inProgress, name)
	return sub, err
}
