package elab

import (
	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
	set "github.com/hashicorp/go-set/v3"
)

// Apply fills the focused hole with op applied to one fresh hole per
// entry of argSpec. Arguments marked true are attempted immediately by
// unifying op's return type against the goal; the rest stay open. It
// returns all len(argSpec) argument names, in order, even those the
// unifier already disposed of, so callers must tolerate names that are
// no longer in the queue.
func (e *Elab) Apply(op term.Raw, argSpec []bool) ([]term.Name, error) {
	return e.applyWith(op, argSpec, false)
}

// MatchApply is Apply deciding solvability by one-directional pattern
// matching instead of full unification. Weaker, for callers where
// unification would over-commit metavariables.
func (e *Elab) MatchApply(op term.Raw, argSpec []bool) ([]term.Name, error) {
	return e.applyWith(op, argSpec, true)
}

func (e *Elab) applyWith(op term.Raw, argSpec []bool, useMatch bool) ([]term.Name, error) {
	h, err := e.ps.focused()
	if err != nil {
		return nil, err
	}
	env := e.fillEnv(h)
	opT, opTy, err := typecheck.Check(e.globals, env, op)
	if err != nil {
		return nil, err
	}

	// peel one Pi per requested argument, naming each domain with a
	// fresh metavariable so later domains and the return type can
	// mention earlier arguments
	names := make([]term.Name, 0, len(argSpec))
	domains := make([]term.Term, 0, len(argSpec))
	ret := opTy
	for range argSpec {
		pi, ok := typecheck.Whnf(e.globals, ret).(term.Bind)
		if !ok || pi.Binder.Kind != term.BindPi {
			return nil, elaberr.New(elaberr.NewNotFunctionType{Ty: ret})
		}
		n := e.ps.fresh("a")
		names = append(names, n)
		domains = append(domains, pi.Binder.Ty)
		ret = term.Subst(pi.Name, term.Var{Name: n}, pi.Body)
	}

	metas := set.New[string](len(names))
	for _, n := range names {
		metas.Insert(n.Key())
	}
	var sub map[string]term.Term
	if useMatch {
		sub, err = typecheck.Match(e.globals, metas, ret, h.Goal)
	} else {
		sub, err = typecheck.Unify(e.globals, metas, ret, h.Goal)
	}
	if err != nil {
		return nil, err
	}
	if err := typecheck.Converts(e.globals, env, term.SubstAll(sub, ret), h.Goal); err != nil {
		return nil, err
	}

	h.Guess = term.Apply(opT, varsOf(names)...)
	h.State = Guessed
	e.ps.setHole(h)

	at := 1
	for i, n := range names {
		arg := Hole{Name: n, Goal: term.SubstAll(sub, domains[i]), Env: h.Env}
		val, solved := sub[n.Key()]
		if solved && argSpec[i] {
			e.ps.setHole(arg)
			e.ps.recordSolved(n, val)
			continue
		}
		if solved {
			arg.State = Guessed
			arg.Guess = val
		}
		e.ps.setHole(arg)
		e.ps.insertQueueAt(at, n)
		at++
	}
	e.logger.Debug("apply", "op", opT, "args", len(names), "solved", len(sub))
	return names, nil
}

// RewriteWith rewrites the focused goal along eq, a proof of Eq A l r:
// occurrences of l in the goal are abstracted into a motive, the hole
// guesses an application of replace, and focus moves to the rewritten
// goal (with l replaced by r). Fails when the goal contains no
// occurrence of l.
func (e *Elab) RewriteWith(eq term.Raw) error {
	h, err := e.requireBinding()
	if err != nil {
		return err
	}
	env := e.fillEnv(h)
	eqT, eqTy, err := typecheck.Check(e.globals, env, eq)
	if err != nil {
		return err
	}
	head, args := term.Unapply(typecheck.Whnf(e.globals, eqTy))
	hv, ok := head.(term.Var)
	if !ok || !hv.Name.Eq(defs.EqName) || len(args) != 3 {
		return elaberr.New(elaberr.NewBadForm{Hole: h.Name, Want: "a hole rewritable by an equality proof"})
	}
	a, l, r := args[0], args[1], args[2]
	if !term.Occurs(l, h.Goal) {
		return elaberr.New(elaberr.NewNoRewrite{Needle: l, Goal: h.Goal})
	}

	mv := e.ps.fresh("rw")
	motive := term.Lam(mv, a, term.ReplaceAll(l, term.Var{Name: mv}, h.Goal))
	body := Hole{
		Name:    e.ps.fresh("h"),
		Goal:    term.ReplaceAll(l, r, h.Goal),
		Env:     h.Env,
		Binding: true,
	}
	guess := term.Apply(term.Var{Name: defs.ReplaceName}, a, l, r, eqT, motive, term.Var{Name: body.Name})
	e.guessBinder(h, guess, body)
	return nil
}

func varsOf(names []term.Name) []term.Term {
	out := make([]term.Term, len(names))
	for i, n := range names {
		out[i] = term.Var{Name: n}
	}
	return out
}
