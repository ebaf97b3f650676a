package term

import (
	"fmt"
	"strings"
)

// Name is a possibly-qualified identifier. Space holds the namespace,
// outermost component first; it is empty for unqualified names.
type Name struct {
	Space []string
	Id    string
}

func NewName(id string, space ...string) Name {
	return Name{Space: space, Id: id}
}

// MachineName builds a generated name that cannot collide with
// surface-level identifiers.
func MachineName(base string, ordinal int) Name {
	return Name{Id: fmt.Sprintf("{%s_%d}", base, ordinal)}
}

func (n Name) String() string {
	if len(n.Space) == 0 {
		return n.Id
	}
	return strings.Join(n.Space, ".") + "." + n.Id
}

// Key is the canonical map key for a fully-qualified name.
func (n Name) Key() string { return n.String() }

func (n Name) Eq(other Name) bool {
	if n.Id != other.Id || len(n.Space) != len(other.Space) {
		return false
	}
	for i, s := range n.Space {
		if other.Space[i] != s {
			return false
		}
	}
	return true
}

// Matches reports whether n, read as a possibly partial qualification,
// refers to the fully-qualified candidate: the base identifiers must agree
// and n's namespace must be a suffix of the candidate's.
func (n Name) Matches(candidate Name) bool {
	if n.Id != candidate.Id {
		return false
	}
	if len(n.Space) > len(candidate.Space) {
		return false
	}
	offset := len(candidate.Space) - len(n.Space)
	for i, s := range n.Space {
		if candidate.Space[offset+i] != s {
			return false
		}
	}
	return true
}
