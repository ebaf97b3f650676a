package defs

import (
	"github.com/cottand/elab/term"
)

var (
	// EqName is propositional equality, seeded into every Context.
	EqName = term.NewName("Eq")
	// ReflName is Eq's only constructor.
	ReflName = term.NewName("Refl")
	// ReplaceName is the primitive rewriteWith elaborates through:
	// replace : (A : Type) -> (x : A) -> (y : A) ->
	//           Eq A x y -> (P : A -> Type) -> P y -> P x
	ReplaceName = term.NewName("replace")
)

func seedPrelude(c *Context) {
	a := term.NewName("A")
	x := term.NewName("x")
	y := term.NewName("y")
	p := term.NewName("P")

	varA := term.Var{Name: a}
	varX := term.Var{Name: x}
	varY := term.Var{Name: y}

	eq := Datatype{
		Name: EqName,
		Args: []TyConArg{
			{Arg: Arg{Name: a, Ty: term.TType{}, Erasure: Erased}, Param: true},
			{Arg: Arg{Name: x, Ty: varA}},
			{Arg: Arg{Name: y, Ty: varA}},
		},
		Ret: term.TType{},
		Cons: []Constructor{{
			Name: ReflName,
			Args: []Arg{
				{Name: a, Ty: term.TType{}, Plicity: Implicit, Erasure: Erased},
				{Name: x, Ty: varA, Plicity: Implicit},
			},
			Ret: term.Apply(term.Var{Name: EqName}, varA, varX, varX),
		}},
	}
	replace := TyDecl{
		Name: ReplaceName,
		Args: []Arg{
			{Name: a, Ty: term.TType{}, Plicity: Implicit, Erasure: Erased},
			{Name: x, Ty: varA, Plicity: Implicit},
			{Name: y, Ty: varA, Plicity: Implicit},
			{Name: term.NewName("prf"), Ty: term.Apply(term.Var{Name: EqName}, varA, varX, varY)},
			{Name: p, Ty: term.Pi(term.NewName("v"), varA, term.TType{}), Erasure: Erased},
			{Name: term.NewName("val"), Ty: term.App{Fn: term.Var{Name: p}, Arg: varY}},
		},
		Ret: term.App{Fn: term.Var{Name: p}, Arg: varX},
	}

	// the prelude cannot fail to declare into an empty context
	if err := c.DeclareDatatype(eq); err != nil {
		panic(err)
	}
	if err := c.DeclareType(replace); err != nil {
		panic(err)
	}
}
