package elab

import (
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
)

// DefaultSearchDepth bounds Search when no explicit budget is given.
const DefaultSearchDepth = 100

// Search attempts to solve the focused goal by bounded depth-first
// search over registered instances, constructors of the goal's head
// datatype, and the named hints. Running out of budget is a normal,
// recoverable failure.
func (e *Elab) Search(hints ...term.Name) error {
	return e.SearchWith(DefaultSearchDepth, hints...)
}

// SearchWith is Search with an explicit depth budget.
func (e *Elab) SearchWith(depth int, hints ...term.Name) error {
	s := &searcher{e: e, hints: hints}
	return s.solveFocused(depth)
}

// ResolveTC attempts interface-dictionary resolution for the focused
// goal. fn is excluded from consideration, so a function can resolve
// its own constraints during its own elaboration without looping. fn
// may be partially qualified, just like the name in a script.
func (e *Elab) ResolveTC(fn term.Name) error {
	s := &searcher{e: e, exclude: []term.Name{fn}}
	return s.solveFocused(DefaultSearchDepth)
}

type searcher struct {
	e       *Elab
	hints   []term.Name
	exclude []term.Name
}

func (s *searcher) excluded(n term.Name) bool {
	for _, ex := range s.exclude {
		if ex.Matches(n) {
			return true
		}
	}
	return false
}

func (s *searcher) solveFocused(depth int) error {
	h, err := s.e.ps.focused()
	if err != nil {
		return err
	}
	// the budget check comes before any candidate is tried, so an
	// exhausted search always reports exhaustion rather than whatever
	// error the first candidate would have produced
	if depth <= 0 {
		return elaberr.New(elaberr.NewSearchExhausted{Goal: h.Goal})
	}
	logger := s.e.logger.With("section", "search")
	for _, cand := range s.candidates(h) {
		snap := s.e.snapshot()
		err := s.attempt(cand, depth)
		if err == nil {
			logger.Debug("candidate accepted", "candidate", cand.String(), "goal", h.Goal)
			return nil
		}
		logger.Debug("candidate rejected", "candidate", cand.String(), "err", err)
		s.e.restore(snap)
	}
	return elaberr.New(elaberr.NewSearchExhausted{Goal: h.Goal})
}

// attempt applies cand at full arity to the focused hole and then
// recursively searches for each argument hole the unifier left open.
func (s *searcher) attempt(cand term.Name, depth int) error {
	decl, err := s.e.globals.LookupTyExact(cand)
	if err != nil {
		return err
	}
	spec := make([]bool, arity(s.e, decl.Type()))
	for i := range spec {
		spec[i] = true
	}
	names, err := s.e.Apply(term.RVar{Name: cand}, spec)
	if err != nil {
		return err
	}
	if err := s.e.Solve(); err != nil {
		return err
	}
	for _, n := range names {
		if !s.e.ps.inQueue(n) {
			continue
		}
		if err := s.e.Focus(n); err != nil {
			return err
		}
		if err := s.solveFocused(depth - 1); err != nil {
			return err
		}
	}
	return nil
}

// candidates lists the names worth trying against h's goal: the
// caller's hints first, then instances when the goal is headed by an
// interface, then the constructors when it is headed by a datatype.
func (s *searcher) candidates(h Hole) []term.Name {
	var out []term.Name
	add := func(n term.Name) {
		if !s.excluded(n) {
			out = append(out, n)
		}
	}
	for _, n := range s.hints {
		add(n)
	}
	head, _ := term.Unapply(typecheck.Whnf(s.e.globals, h.Goal))
	hv, ok := head.(term.Var)
	if !ok {
		return out
	}
	if s.e.globals.IsTCName(hv.Name) {
		for _, n := range s.e.globals.Instances(hv.Name) {
			add(n)
		}
	}
	if dt, err := s.e.globals.LookupDatatypeExact(hv.Name); err == nil {
		for _, c := range dt.Cons {
			add(c.Name)
		}
	}
	return out
}

func arity(e *Elab, ty term.Term) int {
	n := 0
	for {
		pi, ok := typecheck.Whnf(e.globals, ty).(term.Bind)
		if !ok || pi.Binder.Kind != term.BindPi {
			return n
		}
		n++
		ty = pi.Body
	}
}
