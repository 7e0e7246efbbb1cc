// Package notes manages goals and unlinked memories.
package notes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/validation"
)

var (
	ErrAccess = access.ErrNoAccess
	ErrEmpty  = errors.New("notes: empty text")
	ErrLength = errors.New("notes: text too long")
)

// StateSource reports the current access state.
type StateSource interface {
	State() access.State
}

type payload struct {
	Text string `validate:"notblank,max=1000"`
}

// Service lists, adds and removes notes of one kind.
type Service struct {
	kind      authority.Kind
	authority authority.Client
	access    StateSource
	log       *logrus.Entry
}

// New returns the notes service for kind.
func New(kind authority.Kind, c authority.Client, src StateSource) *Service {
	return &Service{
		kind:      kind,
		authority: c,
		access:    src,
		log:       logrus.WithFields(logrus.Fields{"component": "notes", "kind": kind}),
	}
}

func (s *Service) Kind() authority.Kind { return s.kind }

func (s *Service) allowed() error {
	if s.access == nil || !s.access.State().IsValid() {
		return ErrAccess
	}
	return nil
}

// List returns the notes of the token's author, newest first.
func (s *Service) List(ctx context.Context, tok string) ([]authority.Note, error) {
	if err := s.allowed(); err != nil {
		return nil, err
	}
	notes, err := s.authority.Notes(ctx, s.kind, tok)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.kind, err)
	}
	return notes, nil
}

// Add stores text, trimmed, as a new note.
func (s *Service) Add(ctx context.Context, tok, text string) (*authority.Note, error) {
	if err := s.allowed(); err != nil {
		return nil, err
	}
	text = strings.TrimSpace(text)
	switch validation.FailedTag(validation.Standard().Struct(payload{Text: text})) {
	case "":
	case "notblank":
		return nil, ErrEmpty
	default:
		return nil, ErrLength
	}
	n, err := s.authority.AddNote(ctx, s.kind, tok, text)
	if err != nil {
		return nil, fmt.Errorf("add %s: %w", s.kind, err)
	}
	s.log.WithField("id", n.ID).Debug("added")
	return n, nil
}

// Remove deletes the note with id.
func (s *Service) Remove(ctx context.Context, tok string, id int64) error {
	if err := s.allowed(); err != nil {
		return err
	}
	if err := s.authority.DeleteNote(ctx, s.kind, tok, id); err != nil {
		return fmt.Errorf("remove %s %d: %w", s.kind, id, err)
	}
	return nil
}
