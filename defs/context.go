package defs

import (
	"github.com/benbjohnson/immutable"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
	set "github.com/hashicorp/go-set/v3"
)

// Context is the global declaration store: a multi-mapping from names
// to overload sets. Lookup by a partially-qualified name returns every
// matching overloading; callers disambiguate or fail.
//
// All declaration maps are persistent, so Snapshot and Restore are
// cheap struct copies. Whether the tactic layer actually rolls the
// Context back on backtracking is that layer's policy, not ours.
type Context struct {
	// keyed by base identifier; each entry is the overload set
	types     *immutable.Map[string, []TyDecl]
	datatypes *immutable.Map[string, []Datatype]
	funs      *immutable.Map[string, []funEntry]
	// keyed by the interface's fully-qualified name
	instances *immutable.Map[string, []term.Name]

	tcNames      *set.Set[string]
	constructors *set.Set[string]
}

type funEntry struct {
	defn     FunDefn
	compiled []typecheck.RuntimeClause
}

var _ typecheck.Globals = (*Context)(nil)

// NewContext returns a store seeded with the primitives the engine
// itself elaborates through: propositional equality and the rewriting
// primitive.
func NewContext() *Context {
	ctx := &Context{
		types:        immutable.NewMap[string, []TyDecl](nil),
		datatypes:    immutable.NewMap[string, []Datatype](nil),
		funs:         immutable.NewMap[string, []funEntry](nil),
		instances:    immutable.NewMap[string, []term.Name](nil),
		tcNames:      set.New[string](0),
		constructors: set.New[string](0),
	}
	seedPrelude(ctx)
	return ctx
}

// Snapshot captures the whole store. Restoring it discards every
// declaration made since.
type Snapshot struct {
	types     *immutable.Map[string, []TyDecl]
	datatypes *immutable.Map[string, []Datatype]
	funs      *immutable.Map[string, []funEntry]
	instances *immutable.Map[string, []term.Name]

	tcNames      *set.Set[string]
	constructors *set.Set[string]
}

func (c *Context) Snapshot() Snapshot {
	return Snapshot{
		types:        c.types,
		datatypes:    c.datatypes,
		funs:         c.funs,
		instances:    c.instances,
		tcNames:      c.tcNames.Copy(),
		constructors: c.constructors.Copy(),
	}
}

func (c *Context) Restore(s Snapshot) {
	c.types = s.types
	c.datatypes = s.datatypes
	c.funs = s.funs
	c.instances = s.instances
	c.tcNames = s.tcNames
	c.constructors = s.constructors
}

// TypeOfName implements typecheck.Globals: the type of n when n
// resolves to exactly one declaration.
func (c *Context) TypeOfName(n term.Name) (term.Term, bool) {
	matches := c.LookupTy(n)
	if len(matches) != 1 {
		return nil, false
	}
	return matches[0].Type(), true
}

// ClausesOf implements typecheck.Globals: the runtime clauses of n when
// n resolves to exactly one defined function.
func (c *Context) ClausesOf(n term.Name) ([]typecheck.RuntimeClause, bool) {
	entries, ok := c.funs.Get(n.Id)
	if !ok {
		return nil, false
	}
	var found *funEntry
	for i := range entries {
		if n.Matches(entries[i].defn.Name) {
			if found != nil {
				return nil, false
			}
			found = &entries[i]
		}
	}
	if found == nil {
		return nil, false
	}
	return found.compiled, true
}

// IsConstructorName implements typecheck.Globals.
func (c *Context) IsConstructorName(n term.Name) bool {
	return c.constructors.Contains(n.Key())
}
