package term

// EnvEntry binds a name in a local context.
type EnvEntry struct {
	Name   Name
	Binder Binder
}

// Env is an ordered local context. Later entries may refer to earlier
// ones, so order is scoping: entries never contain forward references.
// Extension copies, so an Env held by a snapshot stays valid however the
// extended copy is used afterwards.
type Env struct {
	entries []EnvEntry
}

func NewEnv(entries ...EnvEntry) Env {
	return Env{entries: entries}
}

func (e Env) Extend(n Name, b Binder) Env {
	entries := make([]EnvEntry, len(e.entries), len(e.entries)+1)
	copy(entries, e.entries)
	return Env{entries: append(entries, EnvEntry{Name: n, Binder: b})}
}

// Lookup finds the innermost binding of n.
func (e Env) Lookup(n Name) (Binder, bool) {
	for i := len(e.entries) - 1; i >= 0; i-- {
		if e.entries[i].Name.Eq(n) {
			return e.entries[i].Binder, true
		}
	}
	return Binder{}, false
}

func (e Env) Bound(n Name) bool {
	_, ok := e.Lookup(n)
	return ok
}

func (e Env) Len() int { return len(e.entries) }

func (e Env) At(i int) EnvEntry { return e.entries[i] }

// Entries returns the context outermost-first.
func (e Env) Entries() []EnvEntry {
	out := make([]EnvEntry, len(e.entries))
	copy(out, e.entries)
	return out
}
