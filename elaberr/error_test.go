package elaberr_test

import (
	"fmt"
	"testing"

	"github.com/cottand/elab/elaberr"
	"github.com/cottand/elab/term"
	"github.com/stretchr/testify/assert"
)

func TestPartsRender(t *testing.T) {
	err := elaberr.New(elaberr.NewNoSuchHole{Name: term.NewName("h1")})
	assert.Equal(t, "no hole named 'h1' in the queue", err.Error())
}

func TestUserFailEmbedsTerms(t *testing.T) {
	err := elaberr.New(elaberr.NewUserFail{Message: []elaberr.Part{
		elaberr.Text{Msg: "expected "},
		elaberr.QuotedTerm{Term: term.Var{Name: term.NewName("Nat")}},
	}})
	assert.Contains(t, err.Error(), "'Nat'")
	// consumers can inspect the parts instead of parsing the string
	assert.Len(t, err.Parts(), 2)
}

func TestIsMatchesReason(t *testing.T) {
	err := elaberr.New(elaberr.NewNotDefined{Name: term.NewName("x")})
	assert.True(t, elaberr.Is(err, elaberr.NotDefined))
	assert.False(t, elaberr.Is(err, elaberr.Ambiguous))
	assert.False(t, elaberr.Is(fmt.Errorf("plain"), elaberr.NotDefined))

	wrapped := fmt.Errorf("while elaborating: %w", err)
	assert.True(t, elaberr.Is(wrapped, elaberr.NotDefined))
}

func TestFormatWithCode(t *testing.T) {
	err := elaberr.New(elaberr.NewNoFocus{})
	assert.Contains(t, elaberr.FormatWithCode(err), fmt.Sprintf("(E%03d)", elaberr.NoFocus))
}
