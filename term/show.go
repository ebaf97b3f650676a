package term

import (
	"fmt"
	"hash/fnv"
	"strings"
)

func (v Var) String() string { return v.Name.String() }

func (a App) String() string {
	head, args := Unapply(a)
	parts := make([]string, 0, len(args)+1)
	parts = append(parts, atom(head))
	for _, arg := range args {
		parts = append(parts, atom(arg))
	}
	return strings.Join(parts, " ")
}

func (b Bind) String() string {
	switch b.Binder.Kind {
	case BindLam:
		return fmt.Sprintf("\\%s : %s => %s", b.Name, b.Binder.Ty, b.Body)
	case BindPi:
		return fmt.Sprintf("(%s : %s) -> %s", b.Name, b.Binder.Ty, b.Body)
	case BindLet:
		return fmt.Sprintf("let %s : %s = %s in %s", b.Name, b.Binder.Ty, b.Binder.Val, b.Body)
	case BindGuess:
		return fmt.Sprintf("?%s : %s ~= %s in %s", b.Name, b.Binder.Ty, b.Binder.Val, b.Body)
	case BindHole, BindGHole:
		return fmt.Sprintf("?%s : %s . %s", b.Name, b.Binder.Ty, b.Body)
	case BindPVar:
		return fmt.Sprintf("pat %s : %s . %s", b.Name, b.Binder.Ty, b.Body)
	case BindPVTy:
		return fmt.Sprintf("patTy %s : %s . %s", b.Name, b.Binder.Ty, b.Body)
	default:
		return fmt.Sprintf("%s %s : %s . %s", b.Binder.Kind, b.Name, b.Binder.Ty, b.Body)
	}
}

func (c Constant) String() string { return c.Value }

func (TType) String() string { return "Type" }

func atom(t Term) string {
	switch t.(type) {
	case Var, Constant, TType:
		return t.String()
	default:
		return "(" + t.String() + ")"
	}
}

func (v RVar) String() string { return v.Name.String() }

func (a RApp) String() string {
	fn := Raw(a)
	var args []string
	for {
		app, ok := fn.(RApp)
		if !ok {
			break
		}
		args = append([]string{rawAtom(app.Arg)}, args...)
		fn = app.Fn
	}
	return strings.Join(append([]string{rawAtom(fn)}, args...), " ")
}

func (b RBind) String() string {
	switch b.Binder.Kind {
	case BindLam:
		return fmt.Sprintf("\\%s : %s => %s", b.Name, b.Binder.Ty, b.Body)
	case BindPi:
		return fmt.Sprintf("(%s : %s) -> %s", b.Name, b.Binder.Ty, b.Body)
	case BindLet:
		return fmt.Sprintf("let %s : %s = %s in %s", b.Name, b.Binder.Ty, b.Binder.Val, b.Body)
	default:
		return fmt.Sprintf("%s %s : %s . %s", b.Binder.Kind, b.Name, b.Binder.Ty, b.Body)
	}
}

func (c RConstant) String() string { return c.Value }

func (RType) String() string { return "Type" }

func rawAtom(r Raw) string {
	switch r.(type) {
	case RVar, RConstant, RType:
		return r.String()
	default:
		return "(" + r.String() + ")"
	}
}

// Hash returns a structural hash of t. Alpha-equivalent terms may hash
// differently; it is a cache key, not an identity.
func Hash(t Term) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(t.String()))
	return h.Sum64()
}

// EnvString renders a local context outermost-first, one binding per
// comma-separated entry.
func EnvString(env Env) string {
	var sb strings.Builder
	for i, entry := range env.Entries() {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(entry.Name.String())
		sb.WriteString(" : ")
		if entry.Binder.Ty != nil {
			sb.WriteString(entry.Binder.Ty.String())
		} else {
			sb.WriteString("_")
		}
	}
	return sb.String()
}
