package typecheck_test

import (
	"testing"

	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
	set "github.com/hashicorp/go-set/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func metasOf(names ...string) *set.Set[string] {
	s := set.New[string](len(names))
	for _, n := range names {
		s.Insert(n)
	}
	return s
}

func TestUnifyBindsMeta(t *testing.T) {
	c := natContext(t)
	m := term.Var{Name: term.NewName("m")}
	z := term.Var{Name: zName}
	s := term.Var{Name: sName}

	sub, err := typecheck.Unify(c, metasOf("m"), term.App{Fn: s, Arg: m}, term.App{Fn: s, Arg: z})
	require.NoError(t, err)
	assert.True(t, term.AlphaEq(z, sub["m"]))
}

func TestUnifyIsSymmetric(t *testing.T) {
	c := natContext(t)
	m := term.Var{Name: term.NewName("m")}
	z := term.Var{Name: zName}

	sub, err := typecheck.Unify(c, metasOf("m"), z, m)
	require.NoError(t, err)
	assert.True(t, term.AlphaEq(z, sub["m"]))
}

func TestMatchIsOneDirectional(t *testing.T) {
	c := natContext(t)
	m := term.Var{Name: term.NewName("m")}
	z := term.Var{Name: zName}

	sub, err := typecheck.Match(c, metasOf("m"), m, z)
	require.NoError(t, err)
	assert.True(t, term.AlphaEq(z, sub["m"]))

	// the target side never binds
	_, err = typecheck.Match(c, metasOf("m"), z, m)
	assert.Error(t, err)
}

func TestUnifyOccursCheck(t *testing.T) {
	c := natContext(t)
	m := term.Var{Name: term.NewName("m")}
	s := term.Var{Name: sName}

	_, err := typecheck.Unify(c, metasOf("m"), m, term.App{Fn: s, Arg: m})
	assert.Error(t, err)
}

func TestUnifyReducesBeforeComparing(t *testing.T) {
	c := natContext(t)
	x := term.NewName("x")
	m := term.Var{Name: term.NewName("m")}
	z := term.Var{Name: zName}
	redex := term.App{Fn: term.Lam(x, natT, term.Var{Name: x}), Arg: z}

	sub, err := typecheck.Unify(c, metasOf("m"), m, redex)
	require.NoError(t, err)
	assert.True(t, term.AlphaEq(z, sub["m"]))
}
