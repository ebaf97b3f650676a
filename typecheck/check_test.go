package typecheck_test

import (
	"testing"

	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	natName = term.NewName("Nat")
	natT    = term.Var{Name: natName}
	natR    = term.RVar{Name: natName}
	zName   = term.NewName("Z")
	sName   = term.NewName("S")
)

func rv(s string) term.RVar { return term.RVar{Name: term.NewName(s)} }

func natContext(t *testing.T) *defs.Context {
	t.Helper()
	c := defs.NewContext()
	err := c.DeclareDatatype(defs.Datatype{
		Name: natName,
		Ret:  term.TType{},
		Cons: []defs.Constructor{
			{Name: zName, Ret: natT},
			{Name: sName, Args: []defs.Arg{{Name: term.NewName("k"), Ty: natT}}, Ret: natT},
		},
	})
	require.NoError(t, err)
	return c
}

func TestCheckConstructorApplication(t *testing.T) {
	c := natContext(t)
	tt, ty, err := typecheck.Check(c, term.NewEnv(), term.RApply(rv("S"), rv("Z")))
	require.NoError(t, err)
	assert.True(t, term.AlphaEq(natT, typecheck.Whnf(c, ty)), "type was %s", ty)
	assert.True(t, term.AlphaEq(term.App{Fn: term.Var{Name: sName}, Arg: term.Var{Name: zName}}, tt))
}

func TestCheckLambda(t *testing.T) {
	c := natContext(t)
	x := term.NewName("x")
	_, ty, err := typecheck.Check(c, term.NewEnv(), term.RLam(x, natR, rv("x")))
	require.NoError(t, err)
	assert.True(t, term.AlphaEq(term.Pi(x, natT, natT), ty), "type was %s", ty)
}

func TestCheckDependentPi(t *testing.T) {
	c := natContext(t)
	a := term.NewName("A")
	raw := term.RPi(a, term.RType{}, term.RPi(term.NewName("x"), rv("A"), rv("A")))
	ty, err := typecheck.CheckIsType(c, term.NewEnv(), raw)
	require.NoError(t, err)
	assert.NotNil(t, ty)
}

func TestCheckUndefinedVariable(t *testing.T) {
	c := natContext(t)
	_, _, err := typecheck.Check(c, term.NewEnv(), rv("nope"))
	assert.True(t, elaberr.Is(err, elaberr.NotDefined), "got %v", err)
}

func TestCheckArgumentMismatch(t *testing.T) {
	c := natContext(t)
	x := term.NewName("x")
	// S expects a Nat, not a function
	_, _, err := typecheck.Check(c, term.NewEnv(), term.RApply(rv("S"), term.RLam(x, natR, rv("x"))))
	assert.True(t, elaberr.Is(err, elaberr.TypeFailure), "got %v", err)
}

func TestCheckAppOfNonFunction(t *testing.T) {
	c := natContext(t)
	_, _, err := typecheck.Check(c, term.NewEnv(), term.RApply(rv("Z"), rv("Z")))
	assert.True(t, elaberr.Is(err, elaberr.NotFunctionType), "got %v", err)
}

func TestCheckLet(t *testing.T) {
	c := natContext(t)
	n := term.NewName("n")
	raw := term.RBind{
		Name:   n,
		Binder: term.RawBinder{Kind: term.BindLet, Ty: natR, Val: rv("Z")},
		Body:   term.RApply(rv("S"), rv("n")),
	}
	_, ty, err := typecheck.Check(c, term.NewEnv(), raw)
	require.NoError(t, err)
	assert.True(t, term.AlphaEq(natT, typecheck.Whnf(c, ty)), "type was %s", ty)
}
