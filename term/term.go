package term

// when adding term forms here, you should add them to the switch cases in:
// - term:subst.go
// - term:show.go
// - typecheck:check.go and typecheck:eval.go

import (
	"go/token"
)

// Term is a checked (elaborated) term. Raw terms become Terms only by
// going through the type checker.
type Term interface {
	termNode()
	String() string
}

// BinderKind classifies what a context entry (or an in-term binding)
// means for the bound name.
type BinderKind uint8

const (
	_ BinderKind = iota
	BindLam
	BindPi
	BindLet
	BindPVar
	BindPVTy
	BindGuess
	BindHole
	BindGHole
	BindConstraint
	BindGConstraint
)

func (k BinderKind) String() string {
	switch k {
	case BindLam:
		return "lambda"
	case BindPi:
		return "pi"
	case BindLet:
		return "let"
	case BindPVar:
		return "patvar"
	case BindPVTy:
		return "patty"
	case BindGuess:
		return "guess"
	case BindHole:
		return "hole"
	case BindGHole:
		return "unification-hole"
	case BindConstraint:
		return "constraint"
	case BindGConstraint:
		return "unification-constraint"
	default:
		return "invalid"
	}
}

// Binder carries the type of a bound name and, for Let and Guess
// binders, its value.
type Binder struct {
	Kind BinderKind
	Ty   Term
	Val  Term
}

// HasValue reports whether this binder kind carries a value.
func (b Binder) HasValue() bool {
	return b.Kind == BindLet || b.Kind == BindGuess
}

type Var struct {
	Name Name
}

type App struct {
	Fn  Term
	Arg Term
}

type Bind struct {
	Name   Name
	Binder Binder
	Body   Term
}

// Constant is a literal of basic type.
type Constant struct {
	Kind  token.Token // token.INT, token.FLOAT, token.CHAR, or token.STRING
	Value string      // literal string; e.g. 42, 3.14, 'a', "foo"
}

// TType is the sort of types. The calculus is type-in-type.
type TType struct{}

func (Var) termNode()      {}
func (App) termNode()      {}
func (Bind) termNode()     {}
func (Constant) termNode() {}
func (TType) termNode()    {}

// Apply folds f into a left-nested application spine over args.
func Apply(f Term, args ...Term) Term {
	for _, a := range args {
		f = App{Fn: f, Arg: a}
	}
	return f
}

// Unapply unfolds an application spine back into its head and arguments.
func Unapply(t Term) (head Term, args []Term) {
	for {
		app, ok := t.(App)
		if !ok {
			return t, args
		}
		args = append([]Term{app.Arg}, args...)
		t = app.Fn
	}
}

// Pi builds the dependent function type (n : ty) -> body.
func Pi(n Name, ty, body Term) Term {
	return Bind{Name: n, Binder: Binder{Kind: BindPi, Ty: ty}, Body: body}
}

// Lam builds the abstraction \n : ty => body.
func Lam(n Name, ty, body Term) Term {
	return Bind{Name: n, Binder: Binder{Kind: BindLam, Ty: ty}, Body: body}
}
