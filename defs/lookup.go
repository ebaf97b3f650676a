package defs

import (
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/util"
)

// LookupTy returns every declared signature matching n, including data
// and type constructors.
func (c *Context) LookupTy(n term.Name) []TyDecl {
	decls, _ := c.types.Get(n.Id)
	var out []TyDecl
	for _, d := range decls {
		if n.Matches(d.Name) {
			out = append(out, d)
		}
	}
	return out
}

// LookupTyExact is LookupTy restricted to a single match, with distinct
// failures for "not defined" and "ambiguous".
func (c *Context) LookupTyExact(n term.Name) (TyDecl, error) {
	matches := c.LookupTy(n)
	switch len(matches) {
	case 0:
		return TyDecl{}, elaberr.New(elaberr.NewNotDefined{Name: n})
	case 1:
		return matches[0], nil
	default:
		return TyDecl{}, elaberr.New(elaberr.NewAmbiguous{Name: n, Count: len(matches)})
	}
}

func (c *Context) LookupDatatype(n term.Name) []Datatype {
	dts, _ := c.datatypes.Get(n.Id)
	var out []Datatype
	for _, d := range dts {
		if n.Matches(d.Name) {
			out = append(out, d)
		}
	}
	return out
}

func (c *Context) LookupDatatypeExact(n term.Name) (Datatype, error) {
	matches := c.LookupDatatype(n)
	switch len(matches) {
	case 0:
		return Datatype{}, elaberr.New(elaberr.NewNotDefined{Name: n})
	case 1:
		return matches[0], nil
	default:
		return Datatype{}, elaberr.New(elaberr.NewAmbiguous{Name: n, Count: len(matches)})
	}
}

func (c *Context) LookupFunDefn(n term.Name) []FunDefn {
	entries, _ := c.funs.Get(n.Id)
	var out []FunDefn
	for _, e := range entries {
		if n.Matches(e.defn.Name) {
			out = append(out, e.defn)
		}
	}
	return out
}

func (c *Context) LookupFunDefnExact(n term.Name) (FunDefn, error) {
	matches := c.LookupFunDefn(n)
	switch len(matches) {
	case 0:
		return FunDefn{}, elaberr.New(elaberr.NewNotDefined{Name: n})
	case 1:
		return matches[0], nil
	default:
		return FunDefn{}, elaberr.New(elaberr.NewAmbiguous{Name: n, Count: len(matches)})
	}
}

// LookupArgs returns, per matching overloading, its fully-qualified
// name and argument spec.
func (c *Context) LookupArgs(n term.Name) []util.Pair[term.Name, []Arg] {
	var out []util.Pair[term.Name, []Arg]
	for _, d := range c.LookupTy(n) {
		out = append(out, util.NewPair(d.Name, d.Args))
	}
	return out
}

func (c *Context) LookupArgsExact(n term.Name) ([]Arg, error) {
	decl, err := c.LookupTyExact(n)
	if err != nil {
		return nil, err
	}
	return decl.Args, nil
}

// IsTCName reports whether n names a registered interface.
func (c *Context) IsTCName(n term.Name) bool {
	if c.tcNames.Contains(n.Key()) {
		return true
	}
	found := 0
	for _, d := range c.LookupTy(n) {
		if c.tcNames.Contains(d.Name.Key()) {
			found++
		}
	}
	return found == 1
}

// Instances returns the implementations registered for an interface.
func (c *Context) Instances(iface term.Name) []term.Name {
	impls, _ := c.instances.Get(iface.Key())
	out := make([]term.Name, len(impls))
	copy(out, impls)
	return out
}
