package elab

import (
	"testing"

	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// plusContext is natContext plus an undefined plus : Nat -> Nat -> Nat.
func plusContext(t *testing.T) *defs.Context {
	t.Helper()
	c := natContext(t)
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: term.NewName("plus"),
		Args: []defs.Arg{
			{Name: term.NewName("a"), Ty: natT},
			{Name: term.NewName("b"), Ty: natT},
		},
		Ret: natT,
	}))
	return c
}

func TestApplyReturnsAllArgNames(t *testing.T) {
	c := plusContext(t)
	e, err := New(c, natR)
	require.NoError(t, err)
	names, err := e.Apply(rv("plus"), []bool{false, false})
	require.NoError(t, err)
	assert.Len(t, names, 2)

	// matchApply keeps exactly the same count for the same inputs
	e2, err := New(c, natR)
	require.NoError(t, err)
	matched, err := e2.MatchApply(rv("plus"), []bool{false, false})
	require.NoError(t, err)
	assert.Len(t, matched, len(names))
}

func TestApplyLeavesArgHolesOpen(t *testing.T) {
	e, err := New(plusContext(t), natR)
	require.NoError(t, err)
	names, err := e.Apply(rv("plus"), []bool{false, false})
	require.NoError(t, err)

	holes := e.GetHoles()
	require.Len(t, holes, 3)
	assert.Equal(t, names[0], holes[1])
	assert.Equal(t, names[1], holes[2])
	for _, n := range names {
		h, ok := e.ps.hole(n)
		require.True(t, ok)
		assert.True(t, term.AlphaEq(natT, h.Goal))
	}
}

func TestApplySolvesByUnification(t *testing.T) {
	goal := term.RApply(term.RVar{Name: defs.EqName}, natR, rv("Z"), rv("Z"))
	tt, _, err := Elaborate(natContext(t), goal, func(e *Elab) error {
		names, err := e.Apply(term.RVar{Name: defs.ReflName}, []bool{true, true})
		if err != nil {
			return err
		}
		// both arguments were picked up by unification; their names
		// are stale by now and that must be fine
		for _, n := range names {
			if e.ps.inQueue(n) {
				return e.Fail(elaberr.Text{Msg: "argument hole unexpectedly open"})
			}
		}
		return e.Solve()
	})
	require.NoError(t, err)
	want := term.Apply(term.Var{Name: defs.ReflName}, natT, term.Var{Name: zName})
	assert.True(t, term.AlphaEq(want, tt), "got %s", tt)
}

func TestApplyNonFunction(t *testing.T) {
	e, err := New(natContext(t), natR)
	require.NoError(t, err)
	_, err = e.Apply(rv("Z"), []bool{false})
	assert.True(t, elaberr.Is(err, elaberr.NotFunctionType), "got %v", err)
}

// eqContext postulates n, m : Nat and p : Eq Nat n m.
func eqContext(t *testing.T) *defs.Context {
	t.Helper()
	c := natContext(t)
	for _, postulate := range []string{"n", "m"} {
		require.NoError(t, c.DeclareType(defs.TyDecl{Name: term.NewName(postulate), Ret: natT}))
	}
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: term.NewName("p"),
		Ret:  term.Apply(term.Var{Name: defs.EqName}, natT, term.Var{Name: term.NewName("n")}, term.Var{Name: term.NewName("m")}),
	}))
	return c
}

func TestRewriteScenario(t *testing.T) {
	// goal Eq Nat n n, rewritten along p : Eq Nat n m to Eq Nat m m,
	// which Refl closes
	c := eqContext(t)
	goal := term.RApply(term.RVar{Name: defs.EqName}, natR, rv("n"), rv("n"))
	tt, ty, err := Elaborate(c, goal, func(e *Elab) error {
		if err := e.Attack(); err != nil {
			return err
		}
		if err := e.RewriteWith(rv("p")); err != nil {
			return err
		}
		if _, err := e.Apply(term.RVar{Name: defs.ReflName}, []bool{true, true}); err != nil {
			return err
		}
		return e.Solve()
	})
	require.NoError(t, err)
	assert.True(t, term.Occurs(term.Var{Name: defs.ReplaceName}, tt), "got %s", tt)
	wantTy := term.Apply(term.Var{Name: defs.EqName}, natT, term.Var{Name: term.NewName("n")}, term.Var{Name: term.NewName("n")})
	assert.NoError(t, typecheck.Converts(c, term.NewEnv(), wantTy, ty), "type was %s", ty)
}

func TestRewriteMovesFocusToRewrittenGoal(t *testing.T) {
	goal := term.RApply(term.RVar{Name: defs.EqName}, natR, rv("n"), rv("n"))
	e, err := New(eqContext(t), goal)
	require.NoError(t, err)
	require.NoError(t, e.Attack())
	require.NoError(t, e.RewriteWith(rv("p")))

	got, err := e.GetGoal()
	require.NoError(t, err)
	m := term.Var{Name: term.NewName("m")}
	want := term.Apply(term.Var{Name: defs.EqName}, natT, m, m)
	assert.True(t, term.AlphaEq(want, got), "got %s", got)
}

func TestRewriteNoOccurrence(t *testing.T) {
	goal := term.RApply(term.RVar{Name: defs.EqName}, natR, rv("Z"), rv("Z"))
	e, err := New(eqContext(t), goal)
	require.NoError(t, err)
	require.NoError(t, e.Attack())
	err = e.RewriteWith(rv("p"))
	assert.True(t, elaberr.Is(err, elaberr.NoRewrite), "got %v", err)
}

func TestRewriteRequiresEqualityProof(t *testing.T) {
	e, err := New(eqContext(t), natR)
	require.NoError(t, err)
	require.NoError(t, e.Attack())
	err = e.RewriteWith(rv("Z"))
	assert.True(t, elaberr.Is(err, elaberr.BadForm), "got %v", err)
}
