package elab

import (
	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/cottand/elab/typecheck"
)

// Attack prepares the focused hole for incremental construction: it
// creates a fresh hole of binding form wired so that the old hole's
// body is exactly an application of the new one. The intro family
// requires the form attack establishes.
func (e *Elab) Attack() error {
	h, err := e.ps.focused()
	if err != nil {
		return err
	}
	if h.Binding {
		return elaberr.New(elaberr.NewBadForm{Hole: h.Name, Want: "in non-binding form"})
	}
	if h.State != Open {
		return elaberr.New(elaberr.NewBadForm{Hole: h.Name, Want: "open"})
	}
	body := Hole{
		Name:    e.ps.fresh("h"),
		Goal:    h.Goal,
		Env:     h.Env,
		Binding: true,
	}
	h.State = Guessed
	h.Guess = term.Var{Name: body.Name}
	e.ps.setHole(h)
	e.ps.setHole(body)
	e.ps.prependQueue(body.Name)
	e.logger.Debug("attack", "hole", h.Name.String(), "body", body.Name.String())
	return nil
}

// Claim introduces a new open hole named n of the given type, placed
// directly behind the focus so the focus does not move.
func (e *Elab) Claim(n term.Name, ty term.Raw) error {
	h, err := e.ps.focused()
	if err != nil {
		return err
	}
	if _, exists := e.ps.hole(n); exists {
		return elaberr.New(elaberr.NewNameCollision{Name: n})
	}
	if h.Env.Bound(n) {
		return elaberr.New(elaberr.NewNameCollision{Name: n})
	}
	tyT, err := typecheck.CheckIsType(e.globals, e.fillEnv(h), ty)
	if err != nil {
		return err
	}
	e.ps.setHole(Hole{Name: n, Goal: tyT, Env: h.Env})
	e.ps.insertQueueAt(1, n)
	return nil
}

// Intro turns the focused hole, whose goal must reduce to a function
// type, into a lambda binding and focuses the newly exposed body hole.
// The bound name defaults to the Pi's own.
func (e *Elab) Intro(name ...term.Name) error {
	return e.introUnder(term.BindLam, name...)
}

// PatBind is Intro, but binding a pattern variable.
func (e *Elab) PatBind(n term.Name) error {
	return e.introUnder(term.BindPVar, n)
}

func (e *Elab) introUnder(kind term.BinderKind, name ...term.Name) error {
	h, err := e.requireBinding()
	if err != nil {
		return err
	}
	pi, ok := typecheck.Whnf(e.globals, h.Goal).(term.Bind)
	if !ok || pi.Binder.Kind != term.BindPi {
		return elaberr.New(elaberr.NewNotFunctionType{Ty: h.Goal})
	}
	n := pi.Name
	if len(name) > 0 {
		n = name[0]
	}
	if h.Env.Bound(n) {
		return elaberr.New(elaberr.NewNameCollision{Name: n})
	}
	binder := term.Binder{Kind: kind, Ty: pi.Binder.Ty}
	body := Hole{
		Name:    e.ps.fresh("h"),
		Goal:    term.Subst(pi.Name, term.Var{Name: n}, pi.Body),
		Env:     h.Env.Extend(n, binder),
		Binding: true,
	}
	e.guessBinder(h, term.Bind{Name: n, Binder: binder, Body: term.Var{Name: body.Name}}, body)
	return nil
}

// Forall turns the focused hole, whose goal must be Type, into a Pi
// binding over ty and focuses the body hole.
func (e *Elab) Forall(n term.Name, ty term.Raw) error {
	h, err := e.requireBinding()
	if err != nil {
		return err
	}
	if _, ok := typecheck.Whnf(e.globals, h.Goal).(term.TType); !ok {
		return elaberr.New(elaberr.NewBadForm{Hole: h.Name, Want: "a hole of goal Type"})
	}
	if h.Env.Bound(n) {
		return elaberr.New(elaberr.NewNameCollision{Name: n})
	}
	tyT, err := typecheck.CheckIsType(e.globals, e.fillEnv(h), ty)
	if err != nil {
		return err
	}
	binder := term.Binder{Kind: term.BindPi, Ty: tyT}
	body := Hole{
		Name:    e.ps.fresh("h"),
		Goal:    h.Goal,
		Env:     h.Env.Extend(n, binder),
		Binding: true,
	}
	e.guessBinder(h, term.Bind{Name: n, Binder: binder, Body: term.Var{Name: body.Name}}, body)
	return nil
}

// PatVar binds n as a pattern variable of the goal type and focuses
// the body hole.
func (e *Elab) PatVar(n term.Name) error {
	h, err := e.requireBinding()
	if err != nil {
		return err
	}
	if h.Env.Bound(n) {
		return elaberr.New(elaberr.NewNameCollision{Name: n})
	}
	binder := term.Binder{Kind: term.BindPVar, Ty: h.Goal}
	body := Hole{
		Name:    e.ps.fresh("h"),
		Goal:    h.Goal,
		Env:     h.Env.Extend(n, binder),
		Binding: true,
	}
	e.guessBinder(h, term.Bind{Name: n, Binder: binder, Body: term.Var{Name: body.Name}}, body)
	return nil
}

// LetBind introduces a local definition n : ty = val over the focused
// hole and focuses the body hole.
func (e *Elab) LetBind(n term.Name, ty, val term.Raw) error {
	h, err := e.requireBinding()
	if err != nil {
		return err
	}
	if h.Env.Bound(n) {
		return elaberr.New(elaberr.NewNameCollision{Name: n})
	}
	env := e.fillEnv(h)
	tyT, err := typecheck.CheckIsType(e.globals, env, ty)
	if err != nil {
		return err
	}
	valT, valTy, err := typecheck.Check(e.globals, env, val)
	if err != nil {
		return err
	}
	if err := typecheck.Converts(e.globals, env, valTy, tyT); err != nil {
		return elaberr.New(elaberr.NewTypeFailure{Expected: tyT, Actual: valTy})
	}
	binder := term.Binder{Kind: term.BindLet, Ty: tyT, Val: valT}
	body := Hole{
		Name:    e.ps.fresh("h"),
		Goal:    h.Goal,
		Env:     h.Env.Extend(n, binder),
		Binding: true,
	}
	e.guessBinder(h, term.Bind{Name: n, Binder: binder, Body: term.Var{Name: body.Name}}, body)
	return nil
}

// Focus moves the hole named n to the head of the queue.
func (e *Elab) Focus(n term.Name) error {
	i := e.ps.queueIndex(n)
	if i < 0 {
		return elaberr.New(elaberr.NewNoSuchHole{Name: n})
	}
	if i == 0 {
		return nil
	}
	e.ps.removeFromQueue(n)
	e.ps.prependQueue(n)
	return nil
}

// Unfocus sends the current focus to the tail of the queue, advancing
// focus to the next entry.
func (e *Elab) Unfocus() error {
	h, err := e.ps.focused()
	if err != nil {
		return err
	}
	e.ps.removeFromQueue(h.Name)
	e.ps.queue = append(e.ps.queue, h.Name)
	return nil
}

// Solve promotes the focused hole's guess to its final value and
// removes the hole from the queue. Other guessed holes whose guesses
// become hole-free as a result are promoted too.
func (e *Elab) Solve() error {
	h, err := e.ps.focused()
	if err != nil {
		return err
	}
	if h.State != Guessed {
		return elaberr.New(elaberr.NewNoGuess{Name: h.Name})
	}
	e.ps.recordSolved(h.Name, e.ps.resolve(h.Guess))
	e.cascadeSolve()
	e.logger.Debug("solve", "hole", h.Name.String(), "remaining", len(e.ps.queue))
	return nil
}

// cascadeSolve promotes every guessed hole whose resolved guess no
// longer mentions open holes, to a fixpoint.
func (e *Elab) cascadeSolve() {
	for changed := true; changed; {
		changed = false
		queue := make([]term.Name, len(e.ps.queue))
		copy(queue, e.ps.queue)
		for _, n := range queue {
			h, ok := e.ps.hole(n)
			if !ok || h.State != Guessed {
				continue
			}
			val := e.ps.resolve(h.Guess)
			if e.ps.mentionsOpenHole(val) {
				continue
			}
			e.ps.recordSolved(n, val)
			changed = true
		}
	}
}

// Fill checks r against the focused hole's goal and records it as the
// hole's guess. The checker's failure, if any, propagates verbatim.
func (e *Elab) Fill(r term.Raw) error {
	h, err := e.ps.focused()
	if err != nil {
		return err
	}
	env := e.fillEnv(h)
	tt, ty, err := typecheck.Check(e.globals, env, r)
	if err != nil {
		return err
	}
	if err := typecheck.Converts(e.globals, env, ty, h.Goal); err != nil {
		return err
	}
	h.Guess = tt
	h.State = Guessed
	e.ps.setHole(h)
	e.logger.Debug("fill", "hole", h.Name.String(), "guess", tt)
	return nil
}

// Compute normalises the focused goal in place.
func (e *Elab) Compute() error {
	h, err := e.ps.focused()
	if err != nil {
		return err
	}
	h.Goal = typecheck.Normalise(e.globals, h.Env, h.Goal)
	e.ps.setHole(h)
	return nil
}

// Normalise fully normalises r in the given context.
func (e *Elab) Normalise(env term.Env, r term.Raw) (term.Term, error) {
	tt, _, err := typecheck.Check(e.globals, env, r)
	if err != nil {
		return nil, err
	}
	return typecheck.Normalise(e.globals, env, tt), nil
}

// Whnf reduces r to weak head normal form in the focused context.
func (e *Elab) Whnf(r term.Raw) (term.Term, error) {
	tt, _, err := typecheck.Check(e.globals, e.observerEnv(), r)
	if err != nil {
		return nil, err
	}
	return typecheck.Whnf(e.globals, tt), nil
}

// ConvertsInEnv fails unless t1 and t2 elaborate to convertible terms
// in env. Convertibility is an effect, not a query: there is no
// boolean result.
func (e *Elab) ConvertsInEnv(env term.Env, t1, t2 term.Raw) error {
	a, _, err := typecheck.Check(e.globals, env, t1)
	if err != nil {
		return err
	}
	b, _, err := typecheck.Check(e.globals, env, t2)
	if err != nil {
		return err
	}
	return typecheck.Converts(e.globals, env, a, b)
}

// Converts is ConvertsInEnv in the focused hole's context.
func (e *Elab) Converts(t1, t2 term.Raw) error {
	return e.ConvertsInEnv(e.observerEnv(), t1, t2)
}

// GetEnv returns the focused hole's local context.
func (e *Elab) GetEnv() (term.Env, error) {
	h, err := e.ps.focused()
	if err != nil {
		return term.Env{}, err
	}
	return h.Env, nil
}

// GetGoal returns the focused hole's goal type.
func (e *Elab) GetGoal() (term.Term, error) {
	h, err := e.ps.focused()
	if err != nil {
		return nil, err
	}
	return h.Goal, nil
}

// GetGuess returns the focused hole's pending guess.
func (e *Elab) GetGuess() (term.Term, error) {
	h, err := e.ps.focused()
	if err != nil {
		return nil, err
	}
	if h.State != Guessed {
		return nil, elaberr.New(elaberr.NewNoGuess{Name: h.Name})
	}
	return h.Guess, nil
}

// GetHoles returns the hole queue, focus first.
func (e *Elab) GetHoles() []term.Name {
	out := make([]term.Name, len(e.ps.queue))
	copy(out, e.ps.queue)
	return out
}

func (e *Elab) requireBinding() (Hole, error) {
	h, err := e.ps.focused()
	if err != nil {
		return Hole{}, err
	}
	if !h.Binding {
		return Hole{}, elaberr.New(elaberr.NewBadForm{Hole: h.Name, Want: "in binding form (did you forget attack?)"})
	}
	if h.State != Open {
		return Hole{}, elaberr.New(elaberr.NewBadForm{Hole: h.Name, Want: "open"})
	}
	return h, nil
}

// guessBinder is the shared tail of the intro family: the focused hole
// guesses the given binding and the exposed body hole becomes the
// focus.
func (e *Elab) guessBinder(h Hole, guess term.Term, body Hole) {
	h.State = Guessed
	h.Guess = guess
	e.ps.setHole(h)
	e.ps.setHole(body)
	e.ps.prependQueue(body.Name)
	e.logger.Debug("binder introduced", "hole", h.Name.String(), "guess", guess)
}

// fillEnv extends a hole's local context with entries for the other
// holes of the state, so that terms given to the checker may refer to
// them: open and guessed holes as hole bindings, solved ones as lets.
func (e *Elab) fillEnv(h Hole) term.Env {
	env := h.Env
	for _, n := range e.ps.solvedOrder {
		if h.Env.Bound(n) {
			continue
		}
		solvedHole, ok := e.ps.hole(n)
		if !ok {
			continue
		}
		env = env.Extend(n, term.Binder{Kind: term.BindLet, Ty: solvedHole.Goal, Val: solvedHole.Guess})
	}
	for _, n := range e.ps.queue {
		if n.Eq(h.Name) || h.Env.Bound(n) {
			continue
		}
		other, ok := e.ps.hole(n)
		if !ok {
			continue
		}
		env = env.Extend(n, term.Binder{Kind: term.BindHole, Ty: other.Goal})
	}
	return env
}

// observerEnv is fillEnv of the focus, or the empty context when
// nothing is focused.
func (e *Elab) observerEnv() term.Env {
	h, err := e.ps.focused()
	if err != nil {
		return term.NewEnv()
	}
	return e.fillEnv(h)
}
