package typecheck_test

import (
	"testing"

	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// predContext is natContext plus pred : Nat -> Nat defined by clauses.
func predContext(t *testing.T) *defs.Context {
	t.Helper()
	c := natContext(t)
	pred := term.NewName("pred")
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: pred,
		Args: []defs.Arg{{Name: term.NewName("n"), Ty: natT}},
		Ret:  natT,
	}))
	require.NoError(t, c.DefineFunction(defs.FunDefn{
		Name: pred,
		Clauses: []defs.Clause{
			{LHS: term.RApply(rv("pred"), rv("Z")), RHS: rv("Z")},
			{LHS: term.RApply(rv("pred"), term.RApply(rv("S"), rv("k"))), RHS: rv("k")},
		},
	}))
	return c
}

func TestWhnfBeta(t *testing.T) {
	c := natContext(t)
	x := term.NewName("x")
	redex := term.App{Fn: term.Lam(x, natT, term.Var{Name: x}), Arg: term.Var{Name: zName}}
	got := typecheck.Whnf(c, redex)
	assert.True(t, term.AlphaEq(term.Var{Name: zName}, got), "got %s", got)
}

func TestWhnfClauses(t *testing.T) {
	c := predContext(t)
	predV := term.Var{Name: term.NewName("pred")}
	sz := term.App{Fn: term.Var{Name: sName}, Arg: term.Var{Name: zName}}

	got := typecheck.Whnf(c, term.App{Fn: predV, Arg: sz})
	assert.True(t, term.AlphaEq(term.Var{Name: zName}, got), "pred (S Z) reduced to %s", got)

	got = typecheck.Whnf(c, term.App{Fn: predV, Arg: term.Var{Name: zName}})
	assert.True(t, term.AlphaEq(term.Var{Name: zName}, got), "pred Z reduced to %s", got)
}

// plusContext is natContext plus plus : Nat -> Nat -> Nat defined by
// structural recursion on its first argument.
func plusContext(t *testing.T) *defs.Context {
	t.Helper()
	c := natContext(t)
	plus := term.NewName("plus")
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: plus,
		Args: []defs.Arg{
			{Name: term.NewName("a"), Ty: natT},
			{Name: term.NewName("b"), Ty: natT},
		},
		Ret: natT,
	}))
	require.NoError(t, c.DefineFunction(defs.FunDefn{
		Name: plus,
		Clauses: []defs.Clause{
			{
				LHS: term.RApply(rv("plus"), rv("Z"), rv("b")),
				RHS: rv("b"),
			},
			{
				LHS: term.RApply(rv("plus"), term.RApply(rv("S"), rv("a")), rv("b")),
				RHS: term.RApply(rv("S"), term.RApply(rv("plus"), rv("a"), rv("b"))),
			},
		},
	}))
	return c
}

func TestWhnfClauseVarsDoNotCapture(t *testing.T) {
	c := plusContext(t)
	plusV := term.Var{Name: term.NewName("plus")}
	b := term.Var{Name: term.NewName("b")}
	// the free variable b shares its name with the second clause's
	// pattern variable. plus (S b) Z steps to the stuck S (plus b Z);
	// the matched arguments must not leak into each other's bindings,
	// which would collapse it to S Z.
	sb := term.App{Fn: term.Var{Name: sName}, Arg: b}
	got := typecheck.Normalise(c, term.NewEnv(), term.Apply(plusV, sb, term.Var{Name: zName}))
	want := term.App{Fn: term.Var{Name: sName}, Arg: term.Apply(plusV, b, term.Var{Name: zName})}
	assert.True(t, term.AlphaEq(want, got), "got %s", got)
}

func TestWhnfStuckApplication(t *testing.T) {
	c := predContext(t)
	// no clause matches a variable argument, the term stays stuck
	stuck := term.App{Fn: term.Var{Name: term.NewName("pred")}, Arg: term.Var{Name: term.NewName("n")}}
	got := typecheck.Whnf(c, stuck)
	assert.True(t, term.AlphaEq(stuck, got), "got %s", got)
}

func TestNormaliseUnderBinder(t *testing.T) {
	c := natContext(t)
	x, y := term.NewName("x"), term.NewName("y")
	inner := term.App{Fn: term.Lam(y, natT, term.Var{Name: y}), Arg: term.Var{Name: x}}
	got := typecheck.Normalise(c, term.NewEnv(), term.Lam(x, natT, inner))
	assert.True(t, term.AlphaEq(term.Lam(x, natT, term.Var{Name: x}), got), "got %s", got)
}
