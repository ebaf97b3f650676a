package term

// FreeIn reports whether n occurs free in t.
func FreeIn(n Name, t Term) bool {
	switch t := t.(type) {
	case Var:
		return t.Name.Eq(n)
	case App:
		return FreeIn(n, t.Fn) || FreeIn(n, t.Arg)
	case Bind:
		if t.Binder.Ty != nil && FreeIn(n, t.Binder.Ty) {
			return true
		}
		if t.Binder.Val != nil && FreeIn(n, t.Binder.Val) {
			return true
		}
		if t.Name.Eq(n) {
			return false
		}
		return FreeIn(n, t.Body)
	default:
		return false
	}
}

// AnyVar reports whether any variable occurrence in t satisfies pred,
// bound or free.
func AnyVar(t Term, pred func(Name) bool) bool {
	switch t := t.(type) {
	case Var:
		return pred(t.Name)
	case App:
		return AnyVar(t.Fn, pred) || AnyVar(t.Arg, pred)
	case Bind:
		if t.Binder.Ty != nil && AnyVar(t.Binder.Ty, pred) {
			return true
		}
		if t.Binder.Val != nil && AnyVar(t.Binder.Val, pred) {
			return true
		}
		return AnyVar(t.Body, pred)
	default:
		return false
	}
}

func freshVariant(n Name, clashes func(Name) bool) Name {
	for clashes(n) {
		n = Name{Space: n.Space, Id: n.Id + "'"}
	}
	return n
}

// Subst replaces free occurrences of n in t with v, renaming binders
// where they would capture free variables of v.
func Subst(n Name, v Term, t Term) Term {
	switch t := t.(type) {
	case Var:
		if t.Name.Eq(n) {
			return v
		}
		return t
	case App:
		return App{Fn: Subst(n, v, t.Fn), Arg: Subst(n, v, t.Arg)}
	case Bind:
		binder := t.Binder
		if binder.Ty != nil {
			binder.Ty = Subst(n, v, binder.Ty)
		}
		if binder.Val != nil {
			binder.Val = Subst(n, v, binder.Val)
		}
		if t.Name.Eq(n) {
			// shadowed below here
			return Bind{Name: t.Name, Binder: binder, Body: t.Body}
		}
		bound, body := t.Name, t.Body
		if FreeIn(bound, v) {
			renamed := freshVariant(bound, func(candidate Name) bool {
				return FreeIn(candidate, v) || FreeIn(candidate, body) || candidate.Eq(n)
			})
			body = Subst(bound, Var{Name: renamed}, body)
			bound = renamed
		}
		return Bind{Name: bound, Binder: binder, Body: Subst(n, v, body)}
	default:
		return t
	}
}

// SubstAll applies every substitution in sub (keyed by Name.Key) once.
// Callers that need transitively-closed substitutions iterate to a
// fixpoint themselves.
func SubstAll(sub map[string]Term, t Term) Term {
	for key, v := range sub {
		t = Subst(nameFromKey(key), v, t)
	}
	return t
}

// Graft substitutes every binding of sub (keyed by Name.Key) into t
// simultaneously, in a single traversal and without renaming binders.
// Keys must be machine-generated names: no binder in t can shadow one,
// and a binder in t capturing a substituted value is exactly the
// intent (a hole under a binder is solved by a term mentioning that
// binder).
func Graft(sub map[string]Term, t Term) Term {
	if len(sub) == 0 {
		return t
	}
	switch t := t.(type) {
	case Var:
		if v, ok := sub[t.Name.Key()]; ok {
			return v
		}
		return t
	case App:
		return App{Fn: Graft(sub, t.Fn), Arg: Graft(sub, t.Arg)}
	case Bind:
		binder := t.Binder
		if binder.Ty != nil {
			binder.Ty = Graft(sub, binder.Ty)
		}
		if binder.Val != nil {
			binder.Val = Graft(sub, binder.Val)
		}
		return Bind{Name: t.Name, Binder: binder, Body: Graft(sub, t.Body)}
	default:
		return t
	}
}

// nameFromKey inverts Name.Key. Machine names never contain dots, so
// splitting on the final dots is exact for the names we generate.
func nameFromKey(key string) Name {
	var space []string
	id := key
	for i := len(key) - 1; i >= 0; i-- {
		if key[i] == '.' {
			id = key[i+1:]
			space = splitDots(key[:i])
			break
		}
	}
	return Name{Space: space, Id: id}
}

func splitDots(s string) []string {
	var out []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	return append(out, s[start:])
}

// AlphaEq compares two terms up to renaming of bound variables.
func AlphaEq(a, b Term) bool {
	return alphaEq(a, b, nil, nil, 0)
}

func alphaEq(a, b Term, la, lb map[string]int, depth int) bool {
	switch a := a.(type) {
	case Var:
		vb, ok := b.(Var)
		if !ok {
			return false
		}
		ia, boundA := la[a.Name.Key()]
		ib, boundB := lb[vb.Name.Key()]
		if boundA != boundB {
			return false
		}
		if boundA {
			return ia == ib
		}
		return a.Name.Eq(vb.Name)
	case App:
		ab, ok := b.(App)
		return ok && alphaEq(a.Fn, ab.Fn, la, lb, depth) && alphaEq(a.Arg, ab.Arg, la, lb, depth)
	case Bind:
		bb, ok := b.(Bind)
		if !ok || a.Binder.Kind != bb.Binder.Kind {
			return false
		}
		if (a.Binder.Ty == nil) != (bb.Binder.Ty == nil) ||
			(a.Binder.Val == nil) != (bb.Binder.Val == nil) {
			return false
		}
		if a.Binder.Ty != nil && !alphaEq(a.Binder.Ty, bb.Binder.Ty, la, lb, depth) {
			return false
		}
		if a.Binder.Val != nil && !alphaEq(a.Binder.Val, bb.Binder.Val, la, lb, depth) {
			return false
		}
		la2 := extendRenaming(la, a.Name, depth)
		lb2 := extendRenaming(lb, bb.Name, depth)
		return alphaEq(a.Body, bb.Body, la2, lb2, depth+1)
	case Constant:
		cb, ok := b.(Constant)
		return ok && a.Kind == cb.Kind && a.Value == cb.Value
	case TType:
		_, ok := b.(TType)
		return ok
	default:
		return false
	}
}

func extendRenaming(m map[string]int, n Name, depth int) map[string]int {
	out := make(map[string]int, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[n.Key()] = depth
	return out
}

// Occurs reports whether needle appears in t as a subterm, up to alpha
// equivalence.
func Occurs(needle, t Term) bool {
	if AlphaEq(needle, t) {
		return true
	}
	switch t := t.(type) {
	case App:
		return Occurs(needle, t.Fn) || Occurs(needle, t.Arg)
	case Bind:
		if t.Binder.Ty != nil && Occurs(needle, t.Binder.Ty) {
			return true
		}
		if t.Binder.Val != nil && Occurs(needle, t.Binder.Val) {
			return true
		}
		return Occurs(needle, t.Body)
	default:
		return false
	}
}

// ReplaceAll substitutes with for every alpha-equivalent occurrence of
// needle in t. It does not descend into occurrences it has replaced.
func ReplaceAll(needle, with, t Term) Term {
	if AlphaEq(needle, t) {
		return with
	}
	switch t := t.(type) {
	case App:
		return App{Fn: ReplaceAll(needle, with, t.Fn), Arg: ReplaceAll(needle, with, t.Arg)}
	case Bind:
		binder := t.Binder
		if binder.Ty != nil {
			binder.Ty = ReplaceAll(needle, with, binder.Ty)
		}
		if binder.Val != nil {
			binder.Val = ReplaceAll(needle, with, binder.Val)
		}
		return Bind{Name: t.Name, Binder: binder, Body: ReplaceAll(needle, with, t.Body)}
	default:
		return t
	}
}
