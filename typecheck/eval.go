package typecheck

import (
	"github.com/cottand/elab/term"
)

const evalFuel = 10000

// Whnf reduces t to weak head normal form: beta redexes, let bindings
// and delta unfolding of defined functions at the head, nothing under
// binders or in arguments. Fuel-bounded, so a non-terminating
// definition degrades to returning the partially reduced term.
func Whnf(g Globals, t term.Term) term.Term {
	for fuel := evalFuel; fuel > 0; fuel-- {
		head, args := term.Unapply(t)
		switch head := head.(type) {
		case term.Bind:
			switch {
			case head.Binder.Kind == term.BindLam && len(args) > 0:
				t = term.Apply(term.Subst(head.Name, args[0], head.Body), args[1:]...)
			case head.Binder.Kind == term.BindLet:
				t = term.Apply(term.Subst(head.Name, head.Binder.Val, head.Body), args...)
			default:
				return t
			}
		case term.Var:
			clauses, ok := g.ClausesOf(head.Name)
			if !ok {
				return t
			}
			reduced, ok := reduceClauses(g, clauses, args)
			if !ok {
				return t
			}
			t = reduced
		default:
			return t
		}
	}
	return t
}

// Normalise fully normalises t, including under binders.
func Normalise(g Globals, env term.Env, t term.Term) term.Term {
	t = Whnf(g, t)
	switch t := t.(type) {
	case term.App:
		head, args := term.Unapply(t)
		for i, a := range args {
			args[i] = Normalise(g, env, a)
		}
		if bind, ok := head.(term.Bind); ok {
			head = Normalise(g, env, bind)
		}
		return term.Apply(head, args...)
	case term.Bind:
		binder := t.Binder
		if binder.Ty != nil {
			binder.Ty = Normalise(g, env, binder.Ty)
		}
		if binder.Val != nil {
			binder.Val = Normalise(g, env, binder.Val)
		}
		body := Normalise(g, env.Extend(t.Name, binder), t.Body)
		return term.Bind{Name: t.Name, Binder: binder, Body: body}
	default:
		return t
	}
}

func reduceClauses(g Globals, clauses []RuntimeClause, args []term.Term) (term.Term, bool) {
	for _, clause := range clauses {
		if len(args) < len(clause.Args) {
			continue
		}
		binds := make(map[string]term.Term)
		matched := true
		for i, pat := range clause.Args {
			if !matchPattern(g, clause, pat, Whnf(g, args[i]), binds) {
				matched = false
				break
			}
		}
		if !matched {
			continue
		}
		// pattern variables are machine names, so all bindings go in
		// at once and binders in the right hand side cannot shadow them
		rhs := term.Graft(binds, clause.RHS)
		return term.Apply(rhs, args[len(clause.Args):]...), true
	}
	return nil, false
}

// matchPattern is first-order matching of a clause pattern against a
// weak-head-normal argument. Pattern variables bind; everything else
// must agree rigidly.
func matchPattern(g Globals, clause RuntimeClause, pat, arg term.Term, binds map[string]term.Term) bool {
	if v, ok := pat.(term.Var); ok && clause.bindsPattern(v.Name) {
		if prev, ok := binds[v.Name.Key()]; ok {
			return term.AlphaEq(prev, arg)
		}
		binds[v.Name.Key()] = arg
		return true
	}
	switch pat := pat.(type) {
	case term.Var:
		argVar, ok := arg.(term.Var)
		return ok && pat.Name.Eq(argVar.Name)
	case term.Constant:
		argConst, ok := arg.(term.Constant)
		return ok && pat.Kind == argConst.Kind && pat.Value == argConst.Value
	case term.App:
		patHead, patArgs := term.Unapply(pat)
		argHead, argArgs := term.Unapply(arg)
		if len(patArgs) != len(argArgs) {
			return false
		}
		if !matchPattern(g, clause, patHead, Whnf(g, argHead), binds) {
			return false
		}
		for i := range patArgs {
			if !matchPattern(g, clause, patArgs[i], Whnf(g, argArgs[i]), binds) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
