package elaberr

import (
	"fmt"
	"github.com/cottand/elab/term"
)

type NewNoFocus struct {
	stack []byte
}

func (e NewNoFocus) Parts() []Part    { return []Part{Text{"no hole in focus"}} }
func (e NewNoFocus) Error() string    { return RenderParts(e.Parts()) }
func (e NewNoFocus) Code() Reason     { return NoFocus }
func (e NewNoFocus) getStack() []byte { return e.stack }
func (e NewNoFocus) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewNoSuchHole struct {
	Name  term.Name
	stack []byte
}

func (e NewNoSuchHole) Parts() []Part {
	return []Part{Text{"no hole named "}, QuotedName{e.Name}, Text{" in the queue"}}
}
func (e NewNoSuchHole) Error() string    { return RenderParts(e.Parts()) }
func (e NewNoSuchHole) Code() Reason     { return NoSuchHole }
func (e NewNoSuchHole) getStack() []byte { return e.stack }
func (e NewNoSuchHole) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewBadForm struct {
	Hole  term.Name
	Want  string
	stack []byte
}

func (e NewBadForm) Parts() []Part {
	return []Part{Text{"hole "}, QuotedName{e.Hole}, Text{" is not " + e.Want}}
}
func (e NewBadForm) Error() string    { return RenderParts(e.Parts()) }
func (e NewBadForm) Code() Reason     { return BadForm }
func (e NewBadForm) getStack() []byte { return e.stack }
func (e NewBadForm) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewNameCollision struct {
	Name  term.Name
	stack []byte
}

func (e NewNameCollision) Parts() []Part {
	return []Part{Text{"cannot introduce "}, QuotedName{e.Name}, Text{": name already in scope"}}
}
func (e NewNameCollision) Error() string    { return RenderParts(e.Parts()) }
func (e NewNameCollision) Code() Reason     { return NameCollision }
func (e NewNameCollision) getStack() []byte { return e.stack }
func (e NewNameCollision) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewNotDefined struct {
	Name  term.Name
	stack []byte
}

func (e NewNotDefined) Parts() []Part {
	return []Part{QuotedName{e.Name}, Text{" is not defined"}}
}
func (e NewNotDefined) Error() string    { return RenderParts(e.Parts()) }
func (e NewNotDefined) Code() Reason     { return NotDefined }
func (e NewNotDefined) getStack() []byte { return e.stack }
func (e NewNotDefined) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewAmbiguous struct {
	Name  term.Name
	Count int
	stack []byte
}

func (e NewAmbiguous) Parts() []Part {
	return []Part{QuotedName{e.Name}, Text{fmt.Sprintf(" is ambiguous: %d overloadings match", e.Count)}}
}
func (e NewAmbiguous) Error() string    { return RenderParts(e.Parts()) }
func (e NewAmbiguous) Code() Reason     { return Ambiguous }
func (e NewAmbiguous) getStack() []byte { return e.stack }
func (e NewAmbiguous) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewDuplicateDecl struct {
	Name  term.Name
	stack []byte
}

func (e NewDuplicateDecl) Parts() []Part {
	return []Part{QuotedName{e.Name}, Text{" is already declared with a different signature"}}
}
func (e NewDuplicateDecl) Error() string    { return RenderParts(e.Parts()) }
func (e NewDuplicateDecl) Code() Reason     { return DuplicateDecl }
func (e NewDuplicateDecl) getStack() []byte { return e.stack }
func (e NewDuplicateDecl) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewTypeFailure struct {
	Expected term.Term
	Actual   term.Term
	stack    []byte
}

func (e NewTypeFailure) Parts() []Part {
	return []Part{Text{"type mismatch: expected "}, QuotedTerm{e.Expected}, Text{", found "}, QuotedTerm{e.Actual}}
}
func (e NewTypeFailure) Error() string    { return RenderParts(e.Parts()) }
func (e NewTypeFailure) Code() Reason     { return TypeFailure }
func (e NewTypeFailure) getStack() []byte { return e.stack }
func (e NewTypeFailure) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewNotConvertible struct {
	Fst   term.Term
	Snd   term.Term
	stack []byte
}

func (e NewNotConvertible) Parts() []Part {
	return []Part{QuotedTerm{e.Fst}, Text{" and "}, QuotedTerm{e.Snd}, Text{" are not convertible"}}
}
func (e NewNotConvertible) Error() string    { return RenderParts(e.Parts()) }
func (e NewNotConvertible) Code() Reason     { return NotConvertible }
func (e NewNotConvertible) getStack() []byte { return e.stack }
func (e NewNotConvertible) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewNotFunctionType struct {
	Ty    term.Term
	stack []byte
}

func (e NewNotFunctionType) Parts() []Part {
	return []Part{QuotedTerm{e.Ty}, Text{" is not a function type"}}
}
func (e NewNotFunctionType) Error() string    { return RenderParts(e.Parts()) }
func (e NewNotFunctionType) Code() Reason     { return NotFunctionType }
func (e NewNotFunctionType) getStack() []byte { return e.stack }
func (e NewNotFunctionType) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewNoGuess struct {
	Name  term.Name
	stack []byte
}

func (e NewNoGuess) Parts() []Part {
	return []Part{Text{"hole "}, QuotedName{e.Name}, Text{" has no guess to solve"}}
}
func (e NewNoGuess) Error() string    { return RenderParts(e.Parts()) }
func (e NewNoGuess) Code() Reason     { return NoGuess }
func (e NewNoGuess) getStack() []byte { return e.stack }
func (e NewNoGuess) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewSearchExhausted struct {
	Goal  term.Term
	stack []byte
}

func (e NewSearchExhausted) Parts() []Part {
	return []Part{Text{"no solution found for "}, QuotedTerm{e.Goal}, Text{" within the search depth"}}
}
func (e NewSearchExhausted) Error() string    { return RenderParts(e.Parts()) }
func (e NewSearchExhausted) Code() Reason     { return SearchExhausted }
func (e NewSearchExhausted) getStack() []byte { return e.stack }
func (e NewSearchExhausted) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewNoRewrite struct {
	Needle term.Term
	Goal   term.Term
	stack  []byte
}

func (e NewNoRewrite) Parts() []Part {
	return []Part{Text{"no occurrence of "}, QuotedTerm{e.Needle}, Text{" in goal "}, QuotedTerm{e.Goal}}
}
func (e NewNoRewrite) Error() string    { return RenderParts(e.Parts()) }
func (e NewNoRewrite) Code() Reason     { return NoRewrite }
func (e NewNoRewrite) getStack() []byte { return e.stack }
func (e NewNoRewrite) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewIncomplete struct {
	Holes []term.Name
	stack []byte
}

func (e NewIncomplete) Parts() []Part {
	parts := []Part{Text{"elaboration finished with unsolved holes:"}}
	for _, h := range e.Holes {
		parts = append(parts, Text{" "}, QuotedName{h})
	}
	return parts
}
func (e NewIncomplete) Error() string    { return RenderParts(e.Parts()) }
func (e NewIncomplete) Code() Reason     { return Incomplete }
func (e NewIncomplete) getStack() []byte { return e.stack }
func (e NewIncomplete) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewBadClause struct {
	Name  term.Name
	Why   string
	stack []byte
}

func (e NewBadClause) Parts() []Part {
	return []Part{Text{"invalid clause for "}, QuotedName{e.Name}, Text{": " + e.Why}}
}
func (e NewBadClause) Error() string    { return RenderParts(e.Parts()) }
func (e NewBadClause) Code() Reason     { return BadClause }
func (e NewBadClause) getStack() []byte { return e.stack }
func (e NewBadClause) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

type NewUserFail struct {
	Message []Part
	stack   []byte
}

func (e NewUserFail) Parts() []Part    { return e.Message }
func (e NewUserFail) Error() string    { return RenderParts(e.Parts()) }
func (e NewUserFail) Code() Reason     { return UserFail }
func (e NewUserFail) getStack() []byte { return e.stack }
func (e NewUserFail) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}

// NewDebugHalt is the distinguished halt used by tooling: unlike every
// other failure it carries a dump of the whole proof state.
type NewDebugHalt struct {
	Message []Part
	Dump    string
	stack   []byte
}

func (e NewDebugHalt) Parts() []Part {
	parts := []Part{Text{"debug halt"}}
	if len(e.Message) > 0 {
		parts = append(parts, Text{": "})
		parts = append(parts, e.Message...)
	}
	return parts
}
func (e NewDebugHalt) Error() string    { return RenderParts(e.Parts()) + "\n" + e.Dump }
func (e NewDebugHalt) Code() Reason     { return DebugHalt }
func (e NewDebugHalt) getStack() []byte { return e.stack }
func (e NewDebugHalt) withStack(stack []byte) ElabError {
	e.stack = stack
	return e
}
