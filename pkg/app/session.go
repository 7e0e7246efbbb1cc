package app

import (
	"context"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/token"
)

// Session is one consumer's view of access: the resolved token and its own
// validator.
type Session struct {
	Resolution token.Resolution
	Validator  *access.Validator
}

// Open resolves link and validates the winning token.
func (s *Service) Open(ctx context.Context, link string) (*Session, error) {
	res, err := s.Resolve(link)
	if err != nil {
		return nil, err
	}
	sess := &Session{
		Resolution: res,
		Validator:  s.NewValidator(),
	}
	sess.Validator.Validate(ctx, res.Token)
	return sess, nil
}

// Token is the token the session validated.
func (s *Session) Token() string { return s.Resolution.Token }

// State implements submit.StateSource and notes.StateSource.
func (s *Session) State() access.State { return s.Validator.State() }

// Close drops answers still in flight.
func (s *Session) Close() { s.Validator.Close() }
