package cmd

import (
	"reflect"

	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/elab"
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/traefik/yaegi/interp"
)

// Symbols exposes the engine's public surface to interpreted tactic
// scripts. Hand-built rather than extracted: scripts only need the
// term constructors, the declaration types, and the Elab handle.
var Symbols = interp.Exports{
	"github.com/cottand/elab/term/term": {
		"Name":        reflect.ValueOf((*term.Name)(nil)),
		"NewName":     reflect.ValueOf(term.NewName),
		"MachineName": reflect.ValueOf(term.MachineName),

		"Raw":       reflect.ValueOf((*term.Raw)(nil)),
		"RVar":      reflect.ValueOf((*term.RVar)(nil)),
		"RApp":      reflect.ValueOf((*term.RApp)(nil)),
		"RBind":     reflect.ValueOf((*term.RBind)(nil)),
		"RawBinder": reflect.ValueOf((*term.RawBinder)(nil)),
		"RConstant": reflect.ValueOf((*term.RConstant)(nil)),
		"RType":     reflect.ValueOf((*term.RType)(nil)),
		"RApply":    reflect.ValueOf(term.RApply),
		"RPi":       reflect.ValueOf(term.RPi),
		"RLam":      reflect.ValueOf(term.RLam),

		"Term":     reflect.ValueOf((*term.Term)(nil)),
		"Var":      reflect.ValueOf((*term.Var)(nil)),
		"App":      reflect.ValueOf((*term.App)(nil)),
		"Bind":     reflect.ValueOf((*term.Bind)(nil)),
		"Binder":   reflect.ValueOf((*term.Binder)(nil)),
		"Constant": reflect.ValueOf((*term.Constant)(nil)),
		"TType":    reflect.ValueOf((*term.TType)(nil)),
		"Apply":    reflect.ValueOf(term.Apply),
		"Pi":       reflect.ValueOf(term.Pi),
		"Lam":      reflect.ValueOf(term.Lam),
		"Forget":   reflect.ValueOf(term.Forget),

		"BinderKind": reflect.ValueOf((*term.BinderKind)(nil)),
		"BindLam":    reflect.ValueOf(term.BindLam),
		"BindPi":     reflect.ValueOf(term.BindPi),
		"BindLet":    reflect.ValueOf(term.BindLet),
		"BindPVar":   reflect.ValueOf(term.BindPVar),

		"Env":    reflect.ValueOf((*term.Env)(nil)),
		"NewEnv": reflect.ValueOf(term.NewEnv),
	},
	"github.com/cottand/elab/defs/defs": {
		"Context":     reflect.ValueOf((*defs.Context)(nil)),
		"NewContext":  reflect.ValueOf(defs.NewContext),
		"TyDecl":      reflect.ValueOf((*defs.TyDecl)(nil)),
		"Arg":         reflect.ValueOf((*defs.Arg)(nil)),
		"TyConArg":    reflect.ValueOf((*defs.TyConArg)(nil)),
		"Datatype":    reflect.ValueOf((*defs.Datatype)(nil)),
		"Constructor": reflect.ValueOf((*defs.Constructor)(nil)),
		"Clause":      reflect.ValueOf((*defs.Clause)(nil)),
		"FunDefn":     reflect.ValueOf((*defs.FunDefn)(nil)),

		"Explicit":      reflect.ValueOf(defs.Explicit),
		"Implicit":      reflect.ValueOf(defs.Implicit),
		"ConstraintArg": reflect.ValueOf(defs.ConstraintArg),
		"NotErased":     reflect.ValueOf(defs.NotErased),
		"Erased":        reflect.ValueOf(defs.Erased),

		"EqName":      reflect.ValueOf(defs.EqName),
		"ReflName":    reflect.ValueOf(defs.ReflName),
		"ReplaceName": reflect.ValueOf(defs.ReplaceName),
	},
	"github.com/cottand/elab/elab/elab": {
		"Elab":                  reflect.ValueOf((*elab.Elab)(nil)),
		"Tactic":                reflect.ValueOf((*elab.Tactic)(nil)),
		"Option":                reflect.ValueOf((*elab.Option)(nil)),
		"New":                   reflect.ValueOf(elab.New),
		"Elaborate":             reflect.ValueOf(elab.Elaborate),
		"WithPersistentGlobals": reflect.ValueOf(elab.WithPersistentGlobals),
		"WithSourceLocation":    reflect.ValueOf(elab.WithSourceLocation),
		"SourceLoc":             reflect.ValueOf((*elab.SourceLoc)(nil)),
		"DefaultSearchDepth":    reflect.ValueOf(elab.DefaultSearchDepth),
	},
	"github.com/cottand/elab/elaberr/elaberr": {
		"Part":       reflect.ValueOf((*elaberr.Part)(nil)),
		"Text":       reflect.ValueOf((*elaberr.Text)(nil)),
		"QuotedName": reflect.ValueOf((*elaberr.QuotedName)(nil)),
		"QuotedTerm": reflect.ValueOf((*elaberr.QuotedTerm)(nil)),
		"Is":         reflect.ValueOf(elaberr.Is),
	},
}
