package access

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/token"
)

// Validator validates tokens for one consumer (a command run or a UI
// session). Answers for a token that has since been replaced, or that arrive
// after Close, are dropped.
type Validator struct {
	authority authority.Client
	keeper    *token.Keeper
	log       *logrus.Entry

	group singleflight.Group

	mu     sync.Mutex
	gen    uint64
	token  string
	state  State
	closed bool
}

// NewValidator returns a Validator in the Unknown state. keeper may be nil.
func NewValidator(c authority.Client, keeper *token.Keeper) *Validator {
	return &Validator{
		authority: c,
		keeper:    keeper,
		log:       logrus.WithField("component", "access_validator"),
	}
}

// State returns the last applied state.
func (v *Validator) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Token returns the token the current state refers to.
func (v *Validator) Token() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.token
}

// Validate checks tok with the authority and returns the resulting state.
// The bool is false when the answer was superseded by a later Validate with
// a different token, or by Close, and so was not applied; the returned state
// is then the validator's current one.
//
// Calls for the token already being checked share the outstanding request.
// Re-validating the current token keeps the current state until the answer
// arrives; switching tokens resets it to Unknown.
func (v *Validator) Validate(ctx context.Context, tok string) (State, bool) {
	v.mu.Lock()
	if v.closed {
		defer v.mu.Unlock()
		return v.state, false
	}
	if tok != v.token {
		v.gen++
		v.token = tok
		v.state = Unknown()
	}
	gen := v.gen
	if tok == "" {
		v.state = Invalid()
		v.mu.Unlock()
		return Invalid(), true
	}
	v.mu.Unlock()

	res, err, _ := v.group.Do(tok, func() (interface{}, error) {
		return v.authority.Token(ctx, tok)
	})

	v.mu.Lock()
	defer v.mu.Unlock()
	if v.closed || gen != v.gen {
		v.log.Debug("dropping superseded validation")
		return v.state, false
	}
	if err != nil {
		v.log.WithError(err).Debug("token rejected")
		v.state = Invalid()
		v.keeper.Forget()
		return v.state, true
	}
	v.state = Valid(res.(string))
	if v.state.IsValid() {
		v.keeper.Remember(tok)
	} else {
		v.keeper.Forget()
	}
	return v.state, true
}

// Close stops the validator from applying answers still in flight.
func (v *Validator) Close() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.closed = true
	v.gen++
}
