package elab

import (
	"testing"

	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// showContext is natContext plus an interface Show : Type -> Type and
// (optionally) an instance for Nat.
func showContext(t *testing.T, withInstance bool) *defs.Context {
	t.Helper()
	c := natContext(t)
	show := term.NewName("Show")
	require.NoError(t, c.DeclareInterface(defs.TyDecl{
		Name: show,
		Args: []defs.Arg{{Name: term.NewName("A"), Ty: term.TType{}}},
		Ret:  term.TType{},
	}))
	if withInstance {
		showNat := term.NewName("showNat")
		require.NoError(t, c.DeclareType(defs.TyDecl{
			Name: showNat,
			Ret:  term.Apply(term.Var{Name: show}, natT),
		}))
		require.NoError(t, c.AddInstance(show, showNat))
	}
	return c
}

func showGoal() term.Raw {
	return term.RApply(rv("Show"), natR)
}

func TestSearchZeroDepthExhausts(t *testing.T) {
	e, err := New(showContext(t, true), showGoal())
	require.NoError(t, err)
	// out of budget is always exhaustion, never a type error
	got := e.SearchWith(0)
	assert.True(t, elaberr.Is(got, elaberr.SearchExhausted), "got %v", got)
}

func TestSearchFindsInstance(t *testing.T) {
	tt, _, err := Elaborate(showContext(t, true), showGoal(), func(e *Elab) error {
		return e.Search()
	})
	require.NoError(t, err)
	assert.True(t, term.AlphaEq(term.Var{Name: term.NewName("showNat")}, tt), "got %s", tt)
}

func TestSearchNoInstanceExhausts(t *testing.T) {
	e, err := New(showContext(t, false), showGoal())
	require.NoError(t, err)
	got := e.Search()
	assert.True(t, elaberr.Is(got, elaberr.SearchExhausted), "got %v", got)
}

func TestSearchFindsConstructor(t *testing.T) {
	_, _, err := Elaborate(natContext(t), natR, func(e *Elab) error {
		return e.Search()
	})
	assert.NoError(t, err)
}

func TestSearchRecursesIntoArguments(t *testing.T) {
	// solving S ?k forces a recursive search for the Nat argument
	tt, _, err := Elaborate(natContext(t), natR, func(e *Elab) error {
		return e.Search(sName)
	})
	require.NoError(t, err)
	assert.NotNil(t, tt)
}

func TestSearchHints(t *testing.T) {
	c := showContext(t, false)
	// declared but never registered as an instance: only reachable as
	// a hint
	hint := term.NewName("showNatByHand")
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: hint,
		Ret:  term.Apply(term.Var{Name: term.NewName("Show")}, natT),
	}))

	e, err := New(c, showGoal())
	require.NoError(t, err)
	require.True(t, elaberr.Is(e.Search(), elaberr.SearchExhausted))

	e2, err := New(c, showGoal())
	require.NoError(t, err)
	assert.NoError(t, e2.Search(hint))
}

func TestResolveTCExcludesSelf(t *testing.T) {
	c := showContext(t, true)
	e, err := New(c, showGoal())
	require.NoError(t, err)
	// excluding the only instance leaves nothing to try
	got := e.ResolveTC(term.NewName("showNat"))
	assert.True(t, elaberr.Is(got, elaberr.SearchExhausted), "got %v", got)

	e2, err := New(c, showGoal())
	require.NoError(t, err)
	assert.NoError(t, e2.ResolveTC(term.NewName("unrelated")))
}

func TestResolveTCExcludesPartiallyQualified(t *testing.T) {
	c := showContext(t, false)
	show := term.NewName("Show")
	// the instance lives in a namespace, but scripts refer to it by
	// its short name; exclusion has to honour the same partial
	// qualification rules as lookup
	showNat := term.NewName("showNat", "data")
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: showNat,
		Ret:  term.Apply(term.Var{Name: show}, natT),
	}))
	require.NoError(t, c.AddInstance(show, showNat))

	e, err := New(c, showGoal())
	require.NoError(t, err)
	got := e.ResolveTC(term.NewName("showNat"))
	assert.True(t, elaberr.Is(got, elaberr.SearchExhausted), "got %v", got)
}
