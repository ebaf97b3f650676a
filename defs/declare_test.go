package defs_test

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
)

func rv(s string) term.RVar { return term.RVar{Name: term.NewName(s)} }

func natContext(t *testing.T) *defs.Context {
	t.Helper()
	c := defs.NewContext()
	err := c.DeclareDatatype(defs.Datatype{
		Name: natName,
		Ret:  term.TType{},
		Cons: []defs.Constructor{
			{Name: term.NewName("Z"), Ret: natT},
			{Name: term.NewName("S"), Args: []defs.Arg{{Name: term.NewName("k"), Ty: natT}}, Ret: natT},
		},
	})
	require.NoError(t, err)
	return c
}

func TestDeclareLookupRoundTrip(t *testing.T) {
	c := natContext(t)
	d := defs.TyDecl{
		Name: term.NewName("plus"),
		Args: []defs.Arg{
			{Name: term.NewName("a"), Ty: natT},
			{Name: term.NewName("b"), Ty: natT},
		},
		Ret: natT,
	}
	require.NoError(t, c.DeclareType(d))

	got, err := c.LookupTyExact(d.Name)
	require.NoError(t, err)
	assert.True(t, got.Name.Eq(d.Name))
	assert.True(t, term.AlphaEq(d.Ret, got.Ret))
	assert.True(t, term.AlphaEq(d.Type(), got.Type()))
}

func TestLookupTyExactZeroMatches(t *testing.T) {
	c := natContext(t)
	_, err := c.LookupTyExact(term.NewName("missing"))
	assert.True(t, elaberr.Is(err, elaberr.NotDefined), "got %v", err)
	assert.Contains(t, err.Error(), "not defined")
}

func TestLookupTyExactAmbiguous(t *testing.T) {
	c := natContext(t)
	mk := func(space string) defs.TyDecl {
		return defs.TyDecl{Name: term.NewName("succ", space), Ret: natT}
	}
	require.NoError(t, c.DeclareType(mk("a")))
	require.NoError(t, c.DeclareType(mk("b")))

	assert.Len(t, c.LookupTy(term.NewName("succ")), 2)
	_, err := c.LookupTyExact(term.NewName("succ"))
	assert.True(t, elaberr.Is(err, elaberr.Ambiguous), "got %v", err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestDeclareTypeDuplicate(t *testing.T) {
	c := natContext(t)
	d := defs.TyDecl{Name: term.NewName("x"), Ret: natT}
	require.NoError(t, c.DeclareType(d))

	// identical re-declaration is a no-op
	assert.NoError(t, c.DeclareType(d))

	incompatible := defs.TyDecl{Name: term.NewName("x"), Ret: term.TType{}}
	err := c.DeclareType(incompatible)
	assert.True(t, elaberr.Is(err, elaberr.DuplicateDecl), "got %v", err)
}

func TestDefineFunction(t *testing.T) {
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

	clauses, ok := c.ClausesOf(pred)
	require.True(t, ok)
	assert.Len(t, clauses, 2)

	got, err := c.LookupFunDefnExact(pred)
	require.NoError(t, err)
	assert.Len(t, got.Clauses, 2)
}

func TestDefineFunctionUndeclared(t *testing.T) {
	c := natContext(t)
	err := c.DefineFunction(defs.FunDefn{
		Name:    term.NewName("ghost"),
		Clauses: []defs.Clause{{LHS: rv("ghost"), RHS: rv("Z")}},
	})
	assert.True(t, elaberr.Is(err, elaberr.NotDefined), "got %v", err)
}

func TestDefineFunctionBadRHS(t *testing.T) {
	c := natContext(t)
	f := term.NewName("f")
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: f,
		Args: []defs.Arg{{Name: term.NewName("n"), Ty: natT}},
		Ret:  natT,
	}))
	err := c.DefineFunction(defs.FunDefn{
		Name:    f,
		Clauses: []defs.Clause{{LHS: term.RApply(rv("f"), rv("n")), RHS: term.RType{}}},
	})
	assert.Error(t, err)
}

func TestImpossibleClauses(t *testing.T) {
	c := natContext(t)
	f := term.NewName("f")
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: f,
		Args: []defs.Arg{{Name: term.NewName("n"), Ty: natT}},
		Ret:  natT,
	}))

	// Z applied to an argument cannot check, so the clause is
	// genuinely impossible
	err := c.DefineFunction(defs.FunDefn{
		Name:    f,
		Clauses: []defs.Clause{{LHS: term.RApply(rv("f"), term.RApply(rv("Z"), rv("Z"))), Impossible: true}},
	})
	assert.NoError(t, err)

	// a perfectly possible left-hand side may not claim impossibility
	g := term.NewName("g")
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: g,
		Args: []defs.Arg{{Name: term.NewName("n"), Ty: natT}},
		Ret:  natT,
	}))
	err = c.DefineFunction(defs.FunDefn{
		Name:    g,
		Clauses: []defs.Clause{{LHS: term.RApply(rv("g"), rv("Z")), Impossible: true}},
	})
	assert.True(t, elaberr.Is(err, elaberr.BadClause), "got %v", err)
}

func TestInstances(t *testing.T) {
	c := natContext(t)
	show := term.NewName("Show")
	require.NoError(t, c.DeclareInterface(defs.TyDecl{
		Name: show,
		Args: []defs.Arg{{Name: term.NewName("A"), Ty: term.TType{}}},
		Ret:  term.TType{},
	}))
	assert.True(t, c.IsTCName(show))
	assert.False(t, c.IsTCName(natName))

	showNat := term.NewName("showNat")
	require.NoError(t, c.DeclareType(defs.TyDecl{
		Name: showNat,
		Ret:  term.Apply(term.Var{Name: show}, natT),
	}))
	require.NoError(t, c.AddInstance(show, showNat))
	// registering twice keeps a single candidate
	require.NoError(t, c.AddInstance(show, showNat))

	assert.Equal(t, []term.Name{showNat}, c.Instances(show))
}

func TestAddInstanceUnknownNames(t *testing.T) {
	c := natContext(t)
	err := c.AddInstance(term.NewName("NoSuchIface"), term.NewName("Z"))
	assert.True(t, elaberr.Is(err, elaberr.NotDefined), "got %v", err)
}

func TestSnapshotRestore(t *testing.T) {
	c := natContext(t)
	snap := c.Snapshot()

	require.NoError(t, c.DeclareType(defs.TyDecl{Name: term.NewName("tmp"), Ret: natT}))
	_, err := c.LookupTyExact(term.NewName("tmp"))
	require.NoError(t, err)

	c.Restore(snap)
	_, err = c.LookupTyExact(term.NewName("tmp"))
	assert.True(t, elaberr.Is(err, elaberr.NotDefined), "got %v", err)
}

func TestPreludeSeeded(t *testing.T) {
	c := defs.NewContext()
	eq, err := c.LookupDatatypeExact(defs.EqName)
	require.NoError(t, err)
	require.Len(t, eq.Cons, 1)
	assert.True(t, eq.Cons[0].Name.Eq(defs.ReflName))

	_, err = c.LookupTyExact(defs.ReplaceName)
	assert.NoError(t, err)

	// the prelude makes the context a usable Globals for the checker
	var _ typecheck.Globals = c
}
