package app

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/board"
	"tableflip.dev/memories/pkg/notes"
	"tableflip.dev/memories/pkg/store"
	"tableflip.dev/memories/pkg/submit"
	"tableflip.dev/memories/pkg/token"
	"tableflip.dev/memories/pkg/week"
)

// Service wires the authority, the local store and the clock so the CLI and
// the terminal UI share one set of operations.
type Service struct {
	Authority authority.Client
	Store     store.Store
	Keeper    *token.Keeper
	Clock     clock.Clock
	// Since is the first week shown; zero means the earliest listed week.
	Since week.Identity
}

var ErrNoStore = errors.New("app: no store configured")

// New builds a Service from configuration.
func New(cfg store.Config, s store.Store) (*Service, error) {
	base, err := url.Parse(cfg.APIBase())
	if err != nil {
		return nil, fmt.Errorf("api base %q: %w", cfg.APIBase(), err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("api base %q: want an absolute URL", cfg.APIBase())
	}
	var since week.Identity
	if v := cfg.Since(); v != "" {
		if since, err = week.Parse(v); err != nil {
			return nil, fmt.Errorf("since: %w", err)
		}
	}
	return &Service{
		Authority: authority.NewHTTPClient(base, cfg.Timeout()),
		Store:     s,
		Keeper:    token.Load(s),
		Clock:     clock.New(),
		Since:     since,
	}, nil
}

// Now is the current week. It is computed on every call.
func (s *Service) Now() week.Identity {
	return week.Current(s.Clock)
}

// Resolve picks the active token from link, then the persisted token.
func (s *Service) Resolve(link string) (token.Resolution, error) {
	u, err := token.ParseLink(link)
	if err != nil {
		return token.Resolution{}, fmt.Errorf("link: %w", err)
	}
	return token.Resolve(u, s.Keeper.Stored()), nil
}

// NewValidator returns a validator for one consumer.
func (s *Service) NewValidator() *access.Validator {
	return access.NewValidator(s.Authority, s.Keeper)
}

// Weeks lists the authority's week records.
func (s *Service) Weeks(ctx context.Context) ([]authority.WeekRecord, error) {
	records, err := s.Authority.Weeks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list weeks: %w", err)
	}
	return records, nil
}

// Board pulls the week list and reconciles it against the current week.
func (s *Service) Board(ctx context.Context, st access.State) (*board.Board, error) {
	records, err := s.Weeks(ctx)
	if err != nil {
		return nil, err
	}
	return board.New(s.Now(), records, st, board.Options{Since: s.Since}), nil
}

// NewSubmitter returns a submitter gated by src. refresh runs after each
// successful submission.
func (s *Service) NewSubmitter(src submit.StateSource, refresh func(ctx context.Context)) *submit.Submitter {
	return submit.New(s.Authority, src, refresh, s.Clock)
}

// Notes returns the notes service for kind.
func (s *Service) Notes(kind authority.Kind, src notes.StateSource) *notes.Service {
	return notes.New(kind, s.Authority, src)
}

// Watch reports changes to the local store, such as a token persisted by
// another process.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Store == nil {
		return nil, ErrNoStore
	}
	return s.Store.Watch(ctx)
}

// AdminLogin exchanges credentials for an admin token and stores it under
// its own key.
func (s *Service) AdminLogin(ctx context.Context, username, password string) error {
	if s.Store == nil {
		return ErrNoStore
	}
	tok, err := s.Authority.AdminLogin(ctx, username, password)
	if err != nil {
		return fmt.Errorf("admin login: %w", err)
	}
	if err := s.Store.Set(store.AdminTokenKey, tok); err != nil {
		logrus.WithField("component", "app").WithError(err).Debug("persist admin token")
	}
	return nil
}
