package defs

import (
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
)

// DeclareType inserts a signature. Re-declaring an identical signature
// is a no-op; any differing re-declaration of the same fully-qualified
// name fails.
func (c *Context) DeclareType(decl TyDecl) error {
	existing, _ := c.types.Get(decl.Name.Id)
	for _, d := range existing {
		if d.Name.Eq(decl.Name) {
			if d.eq(decl) {
				return nil
			}
			return elaberr.New(elaberr.NewDuplicateDecl{Name: decl.Name})
		}
	}
	c.types = c.types.Set(decl.Name.Id, append(existing, decl))
	return nil
}

// DeclareDatatype registers a datatype along with signatures for its
// type constructor and every data constructor.
func (c *Context) DeclareDatatype(dt Datatype) error {
	existing, _ := c.datatypes.Get(dt.Name.Id)
	for _, d := range existing {
		if d.Name.Eq(dt.Name) {
			return elaberr.New(elaberr.NewDuplicateDecl{Name: dt.Name})
		}
	}
	if err := c.DeclareType(dt.decl()); err != nil {
		return err
	}
	for _, con := range dt.Cons {
		if err := c.DeclareType(con.decl()); err != nil {
			return err
		}
		c.constructors.Insert(con.Name.Key())
	}
	c.datatypes = c.datatypes.Set(dt.Name.Id, append(existing, dt))
	return nil
}

// DeclareInterface declares decl and marks its name as an interface
// (typeclass), making it a candidate head for resolveTC and search.
func (c *Context) DeclareInterface(decl TyDecl) error {
	if err := c.DeclareType(decl); err != nil {
		return err
	}
	c.tcNames.Insert(decl.Name.Key())
	return nil
}

// AddInstance registers implName as a candidate during resolution of
// interfaceName.
func (c *Context) AddInstance(interfaceName, implName term.Name) error {
	iface, err := c.LookupTyExact(interfaceName)
	if err != nil {
		return err
	}
	if _, err := c.LookupTyExact(implName); err != nil {
		return err
	}
	key := iface.Name.Key()
	existing, _ := c.instances.Get(key)
	for _, impl := range existing {
		if impl.Eq(implName) {
			return nil
		}
	}
	c.instances = c.instances.Set(key, append(existing, implName))
	return nil
}

// DefineFunction attaches clauses to a previously declared name. Every
// normal clause is checked against the declared type; impossible
// clauses are accepted only when the checker rejects their left-hand
// side.
func (c *Context) DefineFunction(defn FunDefn) error {
	decl, err := c.LookupTyExact(defn.Name)
	if err != nil {
		return err
	}
	entries, _ := c.funs.Get(decl.Name.Id)
	for _, e := range entries {
		if e.defn.Name.Eq(decl.Name) {
			return elaberr.New(elaberr.NewDuplicateDecl{Name: decl.Name})
		}
	}
	var compiled []typecheck.RuntimeClause
	for _, clause := range defn.Clauses {
		runtime, err := c.checkClause(decl, clause)
		if err != nil {
			return err
		}
		if clause.Impossible {
			continue
		}
		compiled = append(compiled, *runtime)
	}
	defn.Name = decl.Name
	c.funs = c.funs.Set(decl.Name.Id, append(entries, funEntry{defn: defn, compiled: compiled}))
	return nil
}

func (c *Context) checkClause(decl TyDecl, clause Clause) (*typecheck.RuntimeClause, error) {
	pats, err := clauseSpine(decl, clause.LHS)
	if err != nil {
		return nil, err
	}

	var binds []patBind
	patTerms := make([]term.Term, len(pats))
	lhsErr := error(nil)
	ret := decl.Ret
	for i, pat := range pats {
		expected := decl.Args[i].Ty
		for j := 0; j < i; j++ {
			expected = term.Subst(decl.Args[j].Name, patTerms[j], expected)
		}
		patTerms[i], lhsErr = c.checkPattern(expected, pat, &binds)
		if lhsErr != nil {
			break
		}
		ret = term.Subst(decl.Args[i].Name, patTerms[i], ret)
	}

	if clause.Impossible {
		if lhsErr == nil {
			return nil, elaberr.New(elaberr.NewBadClause{
				Name: decl.Name,
				Why:  "clause is marked impossible but its left-hand side is well typed",
			})
		}
		return nil, nil
	}
	if lhsErr != nil {
		return nil, lhsErr
	}

	env := term.NewEnv()
	for _, b := range binds {
		env = env.Extend(b.name, term.Binder{Kind: term.BindPVar, Ty: b.ty})
	}
	rhs, rhsTy, err := typecheck.Check(c, env, clause.RHS)
	if err != nil {
		return nil, err
	}
	if err := typecheck.Converts(c, env, rhsTy, ret); err != nil {
		return nil, elaberr.New(elaberr.NewTypeFailure{Expected: ret, Actual: rhsTy})
	}

	// compiled clauses carry machine names for their pattern
	// variables: reduction substitutes all bindings into the right
	// hand side in one pass, and a matched argument can never collide
	// with another pattern variable's name
	patVars := make([]term.Name, 0, len(binds))
	seen := make(map[string]bool, len(binds))
	for _, b := range binds {
		if seen[b.name.Key()] {
			continue
		}
		seen[b.name.Key()] = true
		fresh := term.MachineName("pv", len(patVars)+1)
		patVars = append(patVars, fresh)
		for i := range patTerms {
			patTerms[i] = term.Subst(b.name, term.Var{Name: fresh}, patTerms[i])
		}
		rhs = term.Subst(b.name, term.Var{Name: fresh}, rhs)
	}
	return &typecheck.RuntimeClause{PatVars: patVars, Args: patTerms, RHS: rhs}, nil
}

// clauseSpine peels the clause head off the left-hand side and returns
// the argument patterns, one per declared argument.
func clauseSpine(decl TyDecl, lhs term.Raw) ([]term.Raw, error) {
	var pats []term.Raw
	for {
		app, ok := lhs.(term.RApp)
		if !ok {
			break
		}
		pats = append([]term.Raw{app.Arg}, pats...)
		lhs = app.Fn
	}
	head, ok := lhs.(term.RVar)
	if !ok || !head.Name.Matches(decl.Name) {
		return nil, elaberr.New(elaberr.NewBadClause{
			Name: decl.Name,
			Why:  "left-hand side head is not the declared name",
		})
	}
	if len(pats) != len(decl.Args) {
		return nil, elaberr.New(elaberr.NewBadClause{
			Name: decl.Name,
			Why:  "left-hand side does not match the declared arity",
		})
	}
	return pats, nil
}

type patBind struct {
	name term.Name
	ty   term.Term
}

// checkPattern checks one argument pattern against its expected type,
// collecting pattern-variable bindings in order of first occurrence.
func (c *Context) checkPattern(expected term.Term, pat term.Raw, binds *[]patBind) (term.Term, error) {
	switch pat := pat.(type) {
	case term.RVar:
		if c.IsConstructorName(pat.Name) {
			decl, err := c.LookupTyExact(pat.Name)
			if err != nil {
				return nil, err
			}
			if len(decl.Args) != 0 {
				return nil, elaberr.New(elaberr.NewBadClause{
					Name: pat.Name,
					Why:  "constructor pattern is missing its arguments",
				})
			}
			if err := typecheck.Converts(c, term.NewEnv(), decl.Ret, expected); err != nil {
				return nil, err
			}
			return term.Var{Name: pat.Name}, nil
		}
		for _, b := range *binds {
			if b.name.Eq(pat.Name) {
				if err := typecheck.Converts(c, term.NewEnv(), b.ty, expected); err != nil {
					return nil, err
				}
				return term.Var{Name: pat.Name}, nil
			}
		}
		*binds = append(*binds, patBind{name: pat.Name, ty: expected})
		return term.Var{Name: pat.Name}, nil

	case term.RApp:
		var args []term.Raw
		var spine term.Raw = pat
		for {
			app, ok := spine.(term.RApp)
			if !ok {
				break
			}
			args = append([]term.Raw{app.Arg}, args...)
			spine = app.Fn
		}
		head, ok := spine.(term.RVar)
		if !ok || !c.IsConstructorName(head.Name) {
			return nil, elaberr.New(elaberr.NewBadClause{
				Name: head.Name,
				Why:  "pattern head is not a constructor",
			})
		}
		decl, err := c.LookupTyExact(head.Name)
		if err != nil {
			return nil, err
		}
		if len(args) != len(decl.Args) {
			return nil, elaberr.New(elaberr.NewBadClause{
				Name: head.Name,
				Why:  "constructor pattern has the wrong number of arguments",
			})
		}
		argTerms := make([]term.Term, len(args))
		for i, argPat := range args {
			argExpected := decl.Args[i].Ty
			for j := 0; j < i; j++ {
				argExpected = term.Subst(decl.Args[j].Name, argTerms[j], argExpected)
			}
			argTerms[i], err = c.checkPattern(argExpected, argPat, binds)
			if err != nil {
				return nil, err
			}
		}
		ret := decl.Ret
		for i := range args {
			ret = term.Subst(decl.Args[i].Name, argTerms[i], ret)
		}
		if err := typecheck.Converts(c, term.NewEnv(), ret, expected); err != nil {
			return nil, err
		}
		return term.Apply(term.Var{Name: head.Name}, argTerms...), nil

	case term.RConstant:
		tt, ty, err := typecheck.Check(c, term.NewEnv(), pat)
		if err != nil {
			return nil, err
		}
		if err := typecheck.Converts(c, term.NewEnv(), ty, expected); err != nil {
			return nil, err
		}
		return tt, nil

	default:
		return nil, elaberr.New(elaberr.NewBadClause{
			Name: term.NewName("_"),
			Why:  "unsupported pattern form",
		})
	}
}
