package typecheck

import (
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"go/token"
)

// Check elaborates a raw term in the given local context, returning the
// checked term together with its type. The calculus is a small
// dependent core (type-in-type): Pi, Lam, Let, App, Var, Constant,
// TType, plus the binder forms produced by the tactic layer.
func Check(g Globals, env term.Env, r term.Raw) (term.Term, term.Term, error) {
	switch r := r.(type) {
	case term.RType:
		return term.TType{}, term.TType{}, nil

	case term.RConstant:
		return term.Constant{Kind: r.Kind, Value: r.Value}, constantType(r.Kind), nil

	case term.RVar:
		if binder, ok := env.Lookup(r.Name); ok {
			return term.Var{Name: r.Name}, binder.Ty, nil
		}
		if ty, ok := g.TypeOfName(r.Name); ok {
			return term.Var{Name: r.Name}, ty, nil
		}
		return nil, nil, elaberr.New(elaberr.NewNotDefined{Name: r.Name})

	case term.RApp:
		fnT, fnTy, err := Check(g, env, r.Fn)
		if err != nil {
			return nil, nil, err
		}
		pi, ok := Whnf(g, fnTy).(term.Bind)
		if !ok || !isFunctionBinder(pi.Binder.Kind) {
			return nil, nil, elaberr.New(elaberr.NewNotFunctionType{Ty: fnTy})
		}
		argT, argTy, err := Check(g, env, r.Arg)
		if err != nil {
			return nil, nil, err
		}
		if err := Converts(g, env, argTy, pi.Binder.Ty); err != nil {
			return nil, nil, elaberr.New(elaberr.NewTypeFailure{Expected: pi.Binder.Ty, Actual: argTy})
		}
		return term.App{Fn: fnT, Arg: argT}, term.Subst(pi.Name, argT, pi.Body), nil

	case term.RBind:
		return checkBind(g, env, r)

	default:
		panic("Check: unknown raw term form")
	}
}

// CheckIsType checks that r is a well-formed type.
func CheckIsType(g Globals, env term.Env, r term.Raw) (term.Term, error) {
	tt, ty, err := Check(g, env, r)
	if err != nil {
		return nil, err
	}
	if _, ok := Whnf(g, ty).(term.TType); !ok {
		return nil, elaberr.New(elaberr.NewTypeFailure{Expected: term.TType{}, Actual: ty})
	}
	return tt, nil
}

func checkBind(g Globals, env term.Env, r term.RBind) (term.Term, term.Term, error) {
	kind := r.Binder.Kind
	ty, err := CheckIsType(g, env, r.Binder.Ty)
	if err != nil {
		return nil, nil, err
	}
	binder := term.Binder{Kind: kind, Ty: ty}

	if binder.HasValue() {
		val, valTy, err := Check(g, env, r.Binder.Val)
		if err != nil {
			return nil, nil, err
		}
		if err := Converts(g, env, valTy, ty); err != nil {
			return nil, nil, elaberr.New(elaberr.NewTypeFailure{Expected: ty, Actual: valTy})
		}
		binder.Val = val
	}

	body, bodyTy, err := Check(g, env.Extend(r.Name, binder), r.Body)
	if err != nil {
		return nil, nil, err
	}
	bound := term.Bind{Name: r.Name, Binder: binder, Body: body}

	switch kind {
	case term.BindLam:
		return bound, term.Bind{Name: r.Name, Binder: term.Binder{Kind: term.BindPi, Ty: ty}, Body: bodyTy}, nil
	case term.BindPi, term.BindConstraint, term.BindGConstraint:
		if _, ok := Whnf(g, bodyTy).(term.TType); !ok {
			return nil, nil, elaberr.New(elaberr.NewTypeFailure{Expected: term.TType{}, Actual: bodyTy})
		}
		return bound, term.TType{}, nil
	case term.BindLet:
		return bound, term.Subst(r.Name, binder.Val, bodyTy), nil
	default:
		// Hole, GHole, Guess, PVar, PVTy: the binding is transparent
		// for typing; the body's type is the term's type.
		return bound, bodyTy, nil
	}
}

func isFunctionBinder(k term.BinderKind) bool {
	return k == term.BindPi || k == term.BindConstraint || k == term.BindGConstraint
}

func constantType(kind token.Token) term.Term {
	switch kind {
	case token.STRING:
		return term.Var{Name: term.NewName("String")}
	case token.INT:
		return term.Var{Name: term.NewName("Int")}
	case token.FLOAT:
		return term.Var{Name: term.NewName("Float")}
	case token.CHAR:
		return term.Var{Name: term.NewName("Char")}
	default:
		panic("constantType: unsupported literal kind " + kind.String())
	}
}
