// Package access turns a candidate token into an access state by asking the
// authority.
package access

import (
	"errors"
	"fmt"
)

// Kind is the tag of a State.
type Kind int

const (
	KindUnknown Kind = iota
	KindValid
	KindInvalid
)

func (k Kind) String() string {
	switch k {
	case KindValid:
		return "valid"
	case KindInvalid:
		return "invalid"
	default:
		return "unknown"
	}
}

// State is Unknown, Valid(author) or Invalid. The zero value is Unknown.
type State struct {
	kind   Kind
	author string
}

// Unknown is the state before any validation answer arrives.
func Unknown() State { return State{} }

// Invalid is the state of a missing, rejected or unverifiable token.
func Invalid() State { return State{kind: KindInvalid} }

// Valid is the state of a token the authority accepted for author. An empty
// author yields Invalid.
func Valid(author string) State {
	if author == "" {
		return Invalid()
	}
	return State{kind: KindValid, author: author}
}

func (s State) Kind() Kind      { return s.kind }
func (s State) IsValid() bool   { return s.kind == KindValid }
func (s State) IsUnknown() bool { return s.kind == KindUnknown }

// Author returns the author of a Valid state, or "".
func (s State) Author() string { return s.author }

func (s State) String() string {
	if s.kind == KindValid {
		return fmt.Sprintf("valid(%s)", s.author)
	}
	return s.kind.String()
}

// ErrNoAccess rejects writes while the state is not Valid.
var ErrNoAccess = errors.New("access: token missing or invalid")
