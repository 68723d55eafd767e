package pashmak

// An Alias is a named callable statement block. Its body executes only on
// call, with its own label table; it has no parameters and no return value.
type Alias struct {
	Name   string
	Body   []Statement
	Labels labelTable
}

// extractAliases splits the include-expanded top-level stream into the
// statements that actually execute at the top level and the registry of
// alias definitions. Alias bodies never run at their definition site.
func extractAliases(stmts []Statement) ([]Statement, map[string]*Alias, error) {
	top := make([]Statement, 0, len(stmts))
	aliases := map[string]*Alias{}
	var cur *Alias
	var opened Statement
	for _, st := range stmts {
		switch st.Kind {
		case stmtAlias:
			if cur != nil {
				return nil, nil, raiseStmtf(SyntaxError, st, "alias blocks cannot nest")
			}
			if len(st.Args) != 1 || st.Args[0].Kind != wordToken {
				return nil, nil, raiseStmtf(SyntaxError, st, "alias expects one name")
			}
			name := st.Args[0].Value
			if _, ok := keywords[name]; ok {
				return nil, nil, raiseStmtf(SyntaxError, st, "alias name %q is a keyword", name)
			}
			if _, ok := aliases[name]; ok {
				return nil, nil, raiseStmtf(SyntaxError, st, "alias %q is already defined", name)
			}
			cur = &Alias{Name: name}
			opened = st
		case stmtEndalias:
			if cur == nil {
				return nil, nil, raiseStmtf(SyntaxError, st, "endalias without an open alias")
			}
			labels, err := resolveLabels(cur.Body)
			if err != nil {
				return nil, nil, err
			}
			cur.Labels = labels
			aliases[cur.Name] = cur
			cur = nil
		default:
			if cur != nil {
				cur.Body = append(cur.Body, st)
			} else {
				top = append(top, st)
			}
		}
	}
	if cur != nil {
		return nil, nil, raiseStmtf(SyntaxError, opened, "alias %q is missing its endalias", cur.Name)
	}
	return top, aliases, nil
}
