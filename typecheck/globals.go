package typecheck

import "github.com/cottand/elab/term"

// RuntimeClause is one compiled rewrite rule of a defined function: the
// argument patterns, the set of names the patterns bind, and the right
// hand side those names are substituted into.
type RuntimeClause struct {
	PatVars []term.Name
	Args    []term.Term
	RHS     term.Term
}

func (c RuntimeClause) bindsPattern(n term.Name) bool {
	for _, pv := range c.PatVars {
		if pv.Eq(n) {
			return true
		}
	}
	return false
}

// Globals is the view of the declaration store the checker needs:
// unambiguous type lookup, runtime clauses for delta reduction, and
// constructor discrimination for pattern matching.
type Globals interface {
	TypeOfName(n term.Name) (term.Term, bool)
	ClausesOf(n term.Name) ([]RuntimeClause, bool)
	IsConstructorName(n term.Name) bool
}
