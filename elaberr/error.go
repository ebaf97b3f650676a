package elaberr

import (
	"errors"
	"fmt"
	"github.com/cottand/elab/term"
	"runtime/debug"
	"strings"
)

// enableDebugErrorPrinting makes errors include their stacktrace when printed
const enableDebugErrorPrinting bool = false
const enableDebugFullStacktrace bool = false

type Reason int

const (
	None Reason = iota
	NoFocus
	NoSuchHole
	BadForm
	NameCollision
	NotDefined
	Ambiguous
	DuplicateDecl
	TypeFailure
	NotConvertible
	NotFunctionType
	NoGuess
	SearchExhausted
	NoRewrite
	Incomplete
	BadClause
	UserFail
	DebugHalt
)

// Part is one segment of a structured failure message. Messages are
// ordered part lists rather than strings so that tools can re-render or
// inspect them programmatically.
type Part interface {
	partNode()
	String() string
}

type Text struct{ Msg string }

type QuotedName struct{ Name term.Name }

type QuotedTerm struct{ Term term.Term }

func (Text) partNode()       {}
func (QuotedName) partNode() {}
func (QuotedTerm) partNode() {}

func (p Text) String() string       { return p.Msg }
func (p QuotedName) String() string { return "'" + p.Name.String() + "'" }
func (p QuotedTerm) String() string { return "'" + p.Term.String() + "'" }

func RenderParts(parts []Part) string {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.String())
	}
	return sb.String()
}

// ElabError is a failure value of the tactic layer. Every failure
// carries a Reason and a structured part list.
type ElabError interface {
	error
	Code() Reason
	Parts() []Part

	withStack([]byte) ElabError
	getStack() []byte
}

func FormatWithCode(e ElabError) string {
	if enableDebugErrorPrinting && e.getStack() != nil {
		stack := string(e.getStack())
		if !enableDebugFullStacktrace {
			stack = strings.Split(stack, "\n")[6]
		}
		return fmt.Sprintf("%s:(E%03d) %s", stack, e.Code(), e.Error())
	}
	return fmt.Sprintf("(E%03d) %s", e.Code(), e.Error())
}

func New[E ElabError](err E) ElabError {
	return err.withStack(debug.Stack())
}

// Is reports whether err is an ElabError failing for the given reason.
func Is(err error, reason Reason) bool {
	var elabErr ElabError
	if !errors.As(err, &elabErr) {
		return false
	}
	return elabErr.Code() == reason
}
