package term

import "go/token"

// Raw is an unchecked term as produced by tactic scripts. It mirrors
// Term, but nothing about it is trusted until the type checker has
// turned it into a Term.
type Raw interface {
	rawNode()
	String() string
}

type RVar struct {
	Name Name
}

type RApp struct {
	Fn  Raw
	Arg Raw
}

type RawBinder struct {
	Kind BinderKind
	Ty   Raw
	Val  Raw
}

type RBind struct {
	Name   Name
	Binder RawBinder
	Body   Raw
}

type RConstant struct {
	Kind  token.Token
	Value string
}

type RType struct{}

func (RVar) rawNode()      {}
func (RApp) rawNode()      {}
func (RBind) rawNode()     {}
func (RConstant) rawNode() {}
func (RType) rawNode()     {}

// RApply folds f into a left-nested raw application spine.
func RApply(f Raw, args ...Raw) Raw {
	for _, a := range args {
		f = RApp{Fn: f, Arg: a}
	}
	return f
}

// RPi builds the raw dependent function type (n : ty) -> body.
func RPi(n Name, ty, body Raw) Raw {
	return RBind{Name: n, Binder: RawBinder{Kind: BindPi, Ty: ty}, Body: body}
}

// RLam builds the raw abstraction \n : ty => body.
func RLam(n Name, ty, body Raw) Raw {
	return RBind{Name: n, Binder: RawBinder{Kind: BindLam, Ty: ty}, Body: body}
}

// Forget erases the checking of a Term, giving back the Raw it would
// have been written as. Useful for re-checking terms assembled out of
// already-checked pieces.
func Forget(t Term) Raw {
	switch t := t.(type) {
	case Var:
		return RVar{Name: t.Name}
	case App:
		return RApp{Fn: Forget(t.Fn), Arg: Forget(t.Arg)}
	case Bind:
		b := RawBinder{Kind: t.Binder.Kind}
		if t.Binder.Ty != nil {
			b.Ty = Forget(t.Binder.Ty)
		}
		if t.Binder.Val != nil {
			b.Val = Forget(t.Binder.Val)
		}
		return RBind{Name: t.Name, Binder: b, Body: Forget(t.Body)}
	case Constant:
		return RConstant{Kind: t.Kind, Value: t.Value}
	case TType:
		return RType{}
	default:
		panic("Forget: unknown term form")
	}
}
