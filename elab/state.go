package elab

import (
	"fmt"
	"github.com/benbjohnson/immutable"
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"strings"
)

// SolState is the solution state of a hole.
type SolState uint8

const (
	Open SolState = iota
	Guessed
	Solved
)

func (s SolState) String() string {
	switch s {
	case Open:
		return "open"
	case Guessed:
		return "guessed"
	case Solved:
		return "solved"
	default:
		return "invalid"
	}
}

// Hole is a named, typed placeholder for a not-yet-constructed
// subterm. Hole values are immutable: tactics build an updated copy and
// store it back, which is what makes proof-state snapshots cheap.
type Hole struct {
	Name term.Name
	Goal term.Term
	Env  term.Env

	State SolState
	// Guess holds the pending solution while State is Guessed, and the
	// final value once Solved.
	Guess term.Term
	// Binding marks holes whose solution may be grown binder by binder
	// (the form attack establishes and the intro family requires).
	Binding bool
}

// ProofState is the mutable aggregate a tactic script works on: the
// hole queue (head = focus), the hole records, recorded solutions, and
// the term under construction, in which holes appear by name.
type ProofState struct {
	queue  []term.Name
	holes  *immutable.Map[string, Hole]
	solved *immutable.Map[string, term.Term]
	// solvedOrder lists solved holes oldest first, so contexts built
	// from them never contain forward references
	solvedOrder []term.Name

	root term.Name
	goal term.Term
	next int
}

func newProofState(goalTy term.Term) *ProofState {
	ps := &ProofState{
		holes:  immutable.NewMap[string, Hole](nil),
		solved: immutable.NewMap[string, term.Term](nil),
	}
	root := ps.fresh("goal")
	ps.root = root
	ps.holes = ps.holes.Set(root.Key(), Hole{Name: root, Goal: goalTy, Env: term.NewEnv()})
	ps.queue = []term.Name{root}
	ps.goal = term.Var{Name: root}
	return ps
}

func (ps *ProofState) fresh(base string) term.Name {
	ps.next++
	return term.MachineName(base, ps.next)
}

func (ps *ProofState) focused() (Hole, error) {
	if len(ps.queue) == 0 {
		return Hole{}, elaberr.New(elaberr.NewNoFocus{})
	}
	h, ok := ps.holes.Get(ps.queue[0].Key())
	if !ok {
		panic("proof state invariant broken: focused name has no hole record")
	}
	return h, nil
}

func (ps *ProofState) hole(n term.Name) (Hole, bool) {
	return ps.holes.Get(n.Key())
}

func (ps *ProofState) setHole(h Hole) {
	ps.holes = ps.holes.Set(h.Name.Key(), h)
}

func (ps *ProofState) queueIndex(n term.Name) int {
	for i, qn := range ps.queue {
		if qn.Eq(n) {
			return i
		}
	}
	return -1
}

func (ps *ProofState) inQueue(n term.Name) bool {
	return ps.queueIndex(n) >= 0
}

// prependQueue makes n the new focus.
func (ps *ProofState) prependQueue(n term.Name) {
	ps.queue = append([]term.Name{n}, ps.queue...)
}

// insertQueueAt places n at index i, shifting the rest back.
func (ps *ProofState) insertQueueAt(i int, n term.Name) {
	if i >= len(ps.queue) {
		ps.queue = append(ps.queue, n)
		return
	}
	queue := make([]term.Name, 0, len(ps.queue)+1)
	queue = append(queue, ps.queue[:i]...)
	queue = append(queue, n)
	queue = append(queue, ps.queue[i:]...)
	ps.queue = queue
}

func (ps *ProofState) removeFromQueue(n term.Name) {
	i := ps.queueIndex(n)
	if i < 0 {
		return
	}
	ps.queue = append(ps.queue[:i:i], ps.queue[i+1:]...)
}

// recordSolved promotes val to n's final value: the hole leaves the
// queue and the solution becomes substitutable.
func (ps *ProofState) recordSolved(n term.Name, val term.Term) {
	h, ok := ps.hole(n)
	if ok {
		h.State = Solved
		h.Guess = val
		ps.setHole(h)
	}
	ps.solved = ps.solved.Set(n.Key(), val)
	ps.solvedOrder = append(ps.solvedOrder, n)
	ps.removeFromQueue(n)
}

// resolve grafts recorded solutions into t until none remain. Hole
// names are machine-generated, so grafting is what we want: a solution
// mentioning a binder the hole sits under must be captured by it, not
// have the binder renamed away from it.
func (ps *ProofState) resolve(t term.Term) term.Term {
	if ps.solved.Len() == 0 {
		return t
	}
	sub := make(map[string]term.Term, ps.solved.Len())
	itr := ps.solved.Iterator()
	for !itr.Done() {
		k, v, _ := itr.Next()
		sub[k] = v
	}
	for range ps.solvedOrder {
		next := term.Graft(sub, t)
		if term.AlphaEq(next, t) {
			return next
		}
		t = next
	}
	return t
}

// mentionsOpenHole reports whether t refers to any hole still in the
// queue.
func (ps *ProofState) mentionsOpenHole(t term.Term) bool {
	return term.AnyVar(t, ps.inQueue)
}

type proofSnapshot struct {
	queue       []term.Name
	holes       *immutable.Map[string, Hole]
	solved      *immutable.Map[string, term.Term]
	solvedOrder []term.Name
	goal        term.Term
	next        int
}

func (ps *ProofState) snapshot() proofSnapshot {
	queue := make([]term.Name, len(ps.queue))
	copy(queue, ps.queue)
	solvedOrder := make([]term.Name, len(ps.solvedOrder))
	copy(solvedOrder, ps.solvedOrder)
	return proofSnapshot{
		queue:       queue,
		holes:       ps.holes,
		solved:      ps.solved,
		solvedOrder: solvedOrder,
		goal:        ps.goal,
		next:        ps.next,
	}
}

func (ps *ProofState) restore(s proofSnapshot) {
	ps.queue = s.queue
	ps.holes = s.holes
	ps.solved = s.solved
	ps.solvedOrder = s.solvedOrder
	ps.goal = s.goal
	ps.next = s.next
}

// dump renders the whole state for debug halts.
func (ps *ProofState) dump() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "goal term: %s\n", ps.goal)
	fmt.Fprintf(&sb, "queue (%d):\n", len(ps.queue))
	for i, n := range ps.queue {
		h, ok := ps.hole(n)
		if !ok {
			continue
		}
		focus := " "
		if i == 0 {
			focus = "*"
		}
		fmt.Fprintf(&sb, " %s %s : %s [%s]", focus, h.Name, h.Goal, h.State)
		if h.State == Guessed {
			fmt.Fprintf(&sb, " ~= %s", h.Guess)
		}
		if h.Env.Len() > 0 {
			fmt.Fprintf(&sb, " in [%s]", term.EnvString(h.Env))
		}
		sb.WriteString("\n")
	}
	fmt.Fprintf(&sb, "solved (%d):\n", len(ps.solvedOrder))
	for _, n := range ps.solvedOrder {
		if val, ok := ps.solved.Get(n.Key()); ok {
			fmt.Fprintf(&sb, "   %s := %s\n", n, val)
		}
	}
	return sb.String()
}
