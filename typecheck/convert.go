package typecheck

import (
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/util"
	set "github.com/hashicorp/go-set/v3"
)

// convPair holds a pair of terms being compared.
type convPair struct {
	lhs term.Term
	rhs term.Term
}

func (p *convPair) Hash() uint64 {
	return 31*term.Hash(p.lhs) ^ term.Hash(p.rhs)
}

// convSolver holds the state for a single Converts call.
type convSolver struct {
	g     Globals
	cache *set.HashSet[*convPair, uint64]
	fuel  int
	depth int
	path  *util.Stack[*convPair] // for tracking recursion depth and path
}

const (
	defaultStartingFuel = 10000
	defaultDepthLimit   = 250
)

// Converts checks that a and b are convertible (equal up to reduction
// and alpha renaming). Convertibility is a success/failure effect:
// there is no boolean result, only nil or a structured failure.
func Converts(g Globals, env term.Env, a, b term.Term) error {
	cs := &convSolver{
		g:     g,
		cache: set.NewHashSet[*convPair, uint64](0),
		fuel:  defaultStartingFuel,
		path:  &util.Stack[*convPair]{},
	}
	return cs.converts(a, b)
}

func (cs *convSolver) converts(a, b term.Term) error {
	if term.AlphaEq(a, b) {
		return nil
	}
	cs.fuel--
	if cs.fuel <= 0 || cs.path.Len() > defaultDepthLimit {
		return elaberr.New(elaberr.NewNotConvertible{Fst: a, Snd: b})
	}
	pair := &convPair{lhs: a, rhs: b}
	if cs.cache.Contains(pair) {
		return nil
	}
	cs.cache.Insert(pair)
	cs.path.Push(pair)
	defer cs.path.Pop()

	a, b = Whnf(cs.g, a), Whnf(cs.g, b)
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
		if err := cs.converts(aHead, bHead); err != nil {
			break
		}
		for i := range aArgs {
			if err := cs.converts(aArgs[i], bArgs[i]); err != nil {
				return err
			}
		}
		return nil
	case term.Bind:
		bBind, ok := b.(term.Bind)
		if !ok || a.Binder.Kind != bBind.Binder.Kind {
			break
		}
		if err := cs.converts(a.Binder.Ty, bBind.Binder.Ty); err != nil {
			return err
		}
		if a.Binder.HasValue() {
			if err := cs.converts(a.Binder.Val, bBind.Binder.Val); err != nil {
				return err
			}
		}
		cs.depth++
		fresh := term.Var{Name: term.MachineName("cv", cs.depth)}
		return cs.converts(
			term.Subst(a.Name, fresh, a.Body),
			term.Subst(bBind.Name, fresh, bBind.Body),
		)
	}
	return elaberr.New(elaberr.NewNotConvertible{Fst: a, Snd: b})
}
