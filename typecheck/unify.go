package typecheck

import (
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	set "github.com/hashicorp/go-set/v3"
)

// Unify solves a ~ b by binding the metavariables in metas (keyed by
// Name.Key) on either side. First-order: metavariables stand for whole
// subterms, never for applied functions.
func Unify(g Globals, metas *set.Set[string], a, b term.Term) (map[string]term.Term, error) {
	u := &unifier{g: g, metas: metas, sub: make(map[string]term.Term), symmetric: true}
	if err := u.unify(a, b); err != nil {
		return nil, err
	}
	return u.sub, nil
}

// Match is the one-directional variant of Unify: only metavariables on
// the pattern side bind. Weaker on purpose, for callers where full
// unification would over-commit metavariables.
func Match(g Globals, metas *set.Set[string], pattern, target term.Term) (map[string]term.Term, error) {
	u := &unifier{g: g, metas: metas, sub: make(map[string]term.Term), symmetric: false}
	if err := u.unify(pattern, target); err != nil {
		return nil, err
	}
	return u.sub, nil
}

type unifier struct {
	g         Globals
	metas     *set.Set[string]
	sub       map[string]term.Term
	symmetric bool
	depth     int
}

func (u *unifier) isMeta(t term.Term) (term.Name, bool) {
	v, ok := t.(term.Var)
	if !ok || !u.metas.Contains(v.Name.Key()) {
		return term.Name{}, false
	}
	return v.Name, true
}

func (u *unifier) bind(n term.Name, t term.Term) error {
	if v, ok := t.(term.Var); ok && v.Name.Eq(n) {
		return nil
	}
	if term.FreeIn(n, t) {
		return elaberr.New(elaberr.NewNotConvertible{Fst: term.Var{Name: n}, Snd: t})
	}
	u.sub[n.Key()] = t
	return nil
}

func (u *unifier) unify(a, b term.Term) error {
	a = Whnf(u.g, term.SubstAll(u.sub, a))
	b = Whnf(u.g, term.SubstAll(u.sub, b))

	if n, ok := u.isMeta(a); ok {
		return u.bind(n, b)
	}
	if u.symmetric {
		if n, ok := u.isMeta(b); ok {
			return u.bind(n, a)
		}
	}
	if term.AlphaEq(a, b) {
		return nil
	}

	switch a := a.(type) {
	case term.App:
		bApp, ok := b.(term.App)
		if !ok {
			break
		}
		aHead, aArgs := term.Unapply(a)
		bHead, bArgs := term.Unapply(bApp)
		if len(aArgs) != len(bArgs) {
			break
		}
		if err := u.unify(aHead, bHead); err != nil {
			return err
		}
		for i := range aArgs {
			if err := u.unify(aArgs[i], bArgs[i]); err != nil {
				return err
			}
		}
		return nil
	case term.Bind:
		bBind, ok := b.(term.Bind)
		if !ok || a.Binder.Kind != bBind.Binder.Kind {
			break
		}
		if err := u.unify(a.Binder.Ty, bBind.Binder.Ty); err != nil {
			return err
		}
		if a.Binder.HasValue() {
			if err := u.unify(a.Binder.Val, bBind.Binder.Val); err != nil {
				return err
			}
		}
		u.depth++
		fresh := term.Var{Name: term.MachineName("uv", u.depth)}
		return u.unify(
			term.Subst(a.Name, fresh, a.Body),
			term.Subst(bBind.Name, fresh, bBind.Body),
		)
	}
	return elaberr.New(elaberr.NewNotConvertible{Fst: a, Snd: b})
}
