package defs

import (
	"github.com/cottand/elab/term"
)

// Plicity says how an argument is supplied at call sites. The engine
// preserves these tags; it never infers them.
type Plicity uint8

const (
	Explicit Plicity = iota
	Implicit
	ConstraintArg
)

func (p Plicity) String() string {
	switch p {
	case Explicit:
		return "explicit"
	case Implicit:
		return "implicit"
	case ConstraintArg:
		return "constraint"
	default:
		return "invalid"
	}
}

// Erasure marks arguments that carry no runtime content. Downstream
// consumers (code generation) read it; the engine only carries it.
type Erasure uint8

const (
	NotErased Erasure = iota
	Erased
)

// Arg is one typed argument of a declaration. Its type is in scope of
// all earlier arguments.
type Arg struct {
	Name    term.Name
	Ty      term.Term
	Plicity Plicity
	Erasure Erasure
}

// TyDecl is a top-level type signature.
type TyDecl struct {
	Name term.Name
	Args []Arg
	Ret  term.Term
}

// Type folds the argument telescope into a Pi tower over the return
// type.
func (d TyDecl) Type() term.Term {
	ty := d.Ret
	for i := len(d.Args) - 1; i >= 0; i-- {
		arg := d.Args[i]
		kind := term.BindPi
		if arg.Plicity == ConstraintArg {
			kind = term.BindConstraint
		}
		ty = term.Bind{
			Name:   arg.Name,
			Binder: term.Binder{Kind: kind, Ty: arg.Ty},
			Body:   ty,
		}
	}
	return ty
}

func (d TyDecl) eq(other TyDecl) bool {
	if !d.Name.Eq(other.Name) || len(d.Args) != len(other.Args) {
		return false
	}
	return term.AlphaEq(d.Type(), other.Type())
}

// TyConArg is a type-constructor argument: Param arguments are uniform
// across all data constructors, the rest are indices and may vary.
type TyConArg struct {
	Arg
	Param bool
}

// Constructor is one data constructor of a Datatype.
type Constructor struct {
	Name term.Name
	Args []Arg
	Ret  term.Term
}

func (c Constructor) decl() TyDecl {
	return TyDecl{Name: c.Name, Args: c.Args, Ret: c.Ret}
}

// Datatype declares a type constructor and its data constructors.
type Datatype struct {
	Name term.Name
	Args []TyConArg
	Ret  term.Term
	Cons []Constructor
}

func (d Datatype) decl() TyDecl {
	args := make([]Arg, len(d.Args))
	for i, a := range d.Args {
		args[i] = a.Arg
	}
	return TyDecl{Name: d.Name, Args: args, Ret: d.Ret}
}

// Clause is one defining equation of a function: a left-hand side
// pattern term and either a right-hand side or the assertion that no
// well-typed right-hand side can exist.
type Clause struct {
	LHS        term.Raw
	RHS        term.Raw
	Impossible bool
}

// FunDefn attaches clauses to a previously declared name.
type FunDefn struct {
	Name    term.Name
	Clauses []Clause
}
