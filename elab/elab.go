package elab

import (
	"fmt"
	"github.com/cottand/elab/defs"
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/internal/log"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
	"go/token"
	"log/slog"
)

// Tactic is one step of an elaboration script. Tactics compose by
// ordinary sequencing: each one reads and mutates the Elab it is given
// and short-circuits by returning an error.
type Tactic func(*Elab) error

// Elab is a handle on one elaboration attempt: a proof state plus the
// shared global context. Strictly sequential; there is exactly one
// focus at a time and no tactic ever blocks.
type Elab struct {
	ps      *ProofState
	globals *defs.Context

	// persistentGlobals makes Try leave declarations alone on
	// rollback: declareType and friends become permanent side effects.
	// The default is transactional, where declarations made by a
	// failed branch are discarded with the rest of its mutations.
	persistentGlobals bool

	loc    SourceLoc
	logger *slog.Logger
}

// SourceLoc is call-site provenance, embeddable into generated terms.
type SourceLoc struct {
	File string
	Line int
	Col  int
}

func (l SourceLoc) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Col)
}

type Option func(*Elab)

// WithPersistentGlobals switches global-context mutations to permanent
// side effects that survive Try rollback.
func WithPersistentGlobals() Option {
	return func(e *Elab) { e.persistentGlobals = true }
}

// WithSourceLocation sets the provenance reported by SourceLocation.
func WithSourceLocation(loc SourceLoc) Option {
	return func(e *Elab) { e.loc = loc }
}

// New starts an elaboration of a term of type goalTy. The initial
// proof state holds a single open hole whose goal is goalTy.
func New(globals *defs.Context, goalTy term.Raw, opts ...Option) (*Elab, error) {
	ty, err := typecheck.CheckIsType(globals, term.NewEnv(), goalTy)
	if err != nil {
		return nil, err
	}
	e := &Elab{
		ps:      newProofState(ty),
		globals: globals,
		logger:  slog.New(term.TermSlogHandler(log.DefaultLogger.Handler())).With("section", "tactics"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

func (e *Elab) Globals() *defs.Context { return e.globals }

type snapshot struct {
	ps          proofSnapshot
	globals     defs.Snapshot
	withGlobals bool
}

func (e *Elab) snapshot() snapshot {
	s := snapshot{ps: e.ps.snapshot()}
	if !e.persistentGlobals {
		s.globals = e.globals.Snapshot()
		s.withGlobals = true
	}
	return s
}

func (e *Elab) restore(s snapshot) {
	e.ps.restore(s.ps)
	if s.withGlobals {
		e.globals.Restore(s.globals)
	}
}

// Try runs a; if it fails, every one of a's mutations is discarded and
// b runs from a state indistinguishable from one where a was never
// attempted. Left-biased: b does not run when a succeeds.
func (e *Elab) Try(a, b Tactic) error {
	snap := e.snapshot()
	err := a(e)
	if err == nil {
		return nil
	}
	e.logger.Debug("alternation: first branch failed, rolling back", "err", err)
	e.restore(snap)
	return b(e)
}

// Fail aborts the current tactic sequence with a structured message.
func (e *Elab) Fail(parts ...elaberr.Part) error {
	return elaberr.New(elaberr.NewUserFail{Message: parts})
}

// Debug aborts carrying a dump of the full proof state. For tooling:
// user-facing scripts must never leave this unhandled.
func (e *Elab) Debug() error {
	return elaberr.New(elaberr.NewDebugHalt{Dump: e.ps.dump()})
}

// DebugMessage is Debug with an extra message attached to the dump.
func (e *Elab) DebugMessage(parts ...elaberr.Part) error {
	return elaberr.New(elaberr.NewDebugHalt{Message: parts, Dump: e.ps.dump()})
}

// SetSourceLocation records the call-site provenance for subsequent
// SourceLocation calls.
func (e *Elab) SetSourceLocation(loc SourceLoc) { e.loc = loc }

// SourceLocation returns the current provenance.
func (e *Elab) SourceLocation() SourceLoc { return e.loc }

// SourceLocationTerm renders the provenance as a term, for embedding
// into generated code.
func (e *Elab) SourceLocationTerm() term.Term {
	return term.Constant{Kind: token.STRING, Value: fmt.Sprintf("%q", e.loc.String())}
}

// Elaborate runs script against a fresh proof state for goalTy and
// returns the fully elaborated term and its type.
func Elaborate(globals *defs.Context, goalTy term.Raw, script Tactic, opts ...Option) (term.Term, term.Term, error) {
	e, err := New(globals, goalTy, opts...)
	if err != nil {
		return nil, nil, err
	}
	return e.run(script)
}

// RunElab spawns an isolated nested proof state whose sole goal is
// goalTy, sharing this elaboration's global context, and runs script to
// completion inside it. Unsolved holes left by the script fail the
// call; the nested state is never returned.
func (e *Elab) RunElab(goalTy term.Raw, script Tactic) (term.Term, term.Term, error) {
	ty, err := typecheck.CheckIsType(e.globals, term.NewEnv(), goalTy)
	if err != nil {
		return nil, nil, err
	}
	nested := &Elab{
		ps:                newProofState(ty),
		globals:           e.globals,
		persistentGlobals: e.persistentGlobals,
		loc:               e.loc,
		logger:            e.logger,
	}
	return nested.run(script)
}

func (e *Elab) run(script Tactic) (term.Term, term.Term, error) {
	if err := script(e); err != nil {
		return nil, nil, err
	}
	if len(e.ps.queue) > 0 {
		holes := make([]term.Name, len(e.ps.queue))
		copy(holes, e.ps.queue)
		return nil, nil, elaberr.New(elaberr.NewIncomplete{Holes: holes})
	}
	sol, ok := e.ps.solved.Get(e.ps.root.Key())
	if !ok {
		return nil, nil, elaberr.New(elaberr.NewIncomplete{Holes: []term.Name{e.ps.root}})
	}
	final := e.ps.resolve(sol)
	// the script only ever produced checked pieces, but re-checking the
	// assembled term keeps the engine honest about its own output
	tt, ty, err := typecheck.Check(e.globals, term.NewEnv(), term.Forget(final))
	if err != nil {
		return nil, nil, err
	}
	e.logger.Debug("elaboration finished", "term", tt, "type", ty)
	return tt, ty, nil
}
