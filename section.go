package pashmak

import "strconv"

// A labelTable maps section ids to their statement offsets within one body.
// Jumping to a label resumes at the statement following the section.
type labelTable map[string]int

// resolveLabels builds the label table for one body and verifies every goto
// and gotoif target against it, so that no jump can fail once the body runs.
func resolveLabels(stmts []Statement) (labelTable, error) {
	labels := labelTable{}
	for i, st := range stmts {
		if st.Kind != stmtSection {
			continue
		}
		id, err := sectionID(st)
		if err != nil {
			return nil, err
		}
		if _, ok := labels[id]; ok {
			return nil, raiseStmtf(SyntaxError, st, "duplicate section %s", id)
		}
		labels[id] = i
	}
	for _, st := range stmts {
		if st.Kind != stmtGoto && st.Kind != stmtGotoif {
			continue
		}
		id, err := sectionID(st)
		if err != nil {
			return nil, err
		}
		if _, ok := labels[id]; !ok {
			return nil, raiseStmtf(NameError, st, "section %s is not defined in this body", id)
		}
	}
	return labels, nil
}

// sectionID extracts and normalizes the integer id of a section, goto, or
// gotoif statement, so that 7 and 007 name the same label.
func sectionID(st Statement) (string, error) {
	if len(st.Args) != 1 || st.Args[0].Kind != numberToken {
		return "", raiseStmtf(SyntaxError, st, "%s expects one integer section id", st.Keyword)
	}
	n, err := strconv.ParseInt(st.Args[0].Value, 10, 64)
	if err != nil {
		return "", raiseStmtf(SyntaxError, st, "invalid section id %q", st.Args[0].Value)
	}
	return strconv.FormatInt(n, 10), nil
}
