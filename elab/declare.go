package elab

import (
	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/util"
)

// The declaration surface delegates to the shared global context.
// Whether these mutations survive a failed Try branch depends on the
// rollback policy the Elab was built with.

func (e *Elab) DeclareType(decl defs.TyDecl) error {
	return e.globals.DeclareType(decl)
}

func (e *Elab) DeclareDatatype(dt defs.Datatype) error {
	return e.globals.DeclareDatatype(dt)
}

func (e *Elab) DeclareInterface(decl defs.TyDecl) error {
	return e.globals.DeclareInterface(decl)
}

func (e *Elab) DefineFunction(defn defs.FunDefn) error {
	return e.globals.DefineFunction(defn)
}

func (e *Elab) AddInstance(interfaceName, implName term.Name) error {
	return e.globals.AddInstance(interfaceName, implName)
}

func (e *Elab) IsTCName(n term.Name) bool {
	return e.globals.IsTCName(n)
}

func (e *Elab) LookupTy(n term.Name) []defs.TyDecl {
	return e.globals.LookupTy(n)
}

func (e *Elab) LookupTyExact(n term.Name) (defs.TyDecl, error) {
	return e.globals.LookupTyExact(n)
}

func (e *Elab) LookupDatatype(n term.Name) []defs.Datatype {
	return e.globals.LookupDatatype(n)
}

func (e *Elab) LookupDatatypeExact(n term.Name) (defs.Datatype, error) {
	return e.globals.LookupDatatypeExact(n)
}

func (e *Elab) LookupFunDefn(n term.Name) []defs.FunDefn {
	return e.globals.LookupFunDefn(n)
}

func (e *Elab) LookupFunDefnExact(n term.Name) (defs.FunDefn, error) {
	return e.globals.LookupFunDefnExact(n)
}

func (e *Elab) LookupArgs(n term.Name) []util.Pair[term.Name, []defs.Arg] {
	return e.globals.LookupArgs(n)
}

func (e *Elab) LookupArgsExact(n term.Name) ([]defs.Arg, error) {
	return e.globals.LookupArgsExact(n)
}
