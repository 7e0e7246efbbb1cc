// Package submit sends the current week's memory to the authority.
package submit

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/sirupsen/logrus"

	"tableflip.dev/memories/pkg/access"
	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/validation"
)

const (
	MsgAccess  = "Token inválido o ausente: abre el enlace desde tu email."
	MsgEmpty   = "Escribe algo antes de confirmar"
	MsgTooLong = "Demasiado largo (máx 1000 caracteres)"
	MsgFailed  = "Error al enviar"
	MsgSent    = "Enviado ✅"
	MsgSaved   = "Recuerdo guardado"

	// ToastDuration is how long MsgSaved stays up.
	ToastDuration = 3000 * time.Millisecond
)

var (
	ErrAccess  = access.ErrNoAccess
	ErrEmpty   = errors.New("submit: empty text")
	ErrTooLong = errors.New("submit: text too long")
	// ErrSend wraps failures reported by the authority or the transport.
	ErrSend = errors.New("submit: send failed")
)

// StateSource reports the current access state.
type StateSource interface {
	State() access.State
}

type payload struct {
	Text string `validate:"notblank,max=1000"`
}

// Submitter checks and sends weekly memories.
type Submitter struct {
	authority authority.Client
	access    StateSource
	refresh   func(ctx context.Context)
	toast     *Toast
	log       *logrus.Entry

	wg sync.WaitGroup
}

// New returns a Submitter. refresh re-pulls the week list after a successful
// send and may be nil.
func New(c authority.Client, src StateSource, refresh func(ctx context.Context), clk clock.Clock) *Submitter {
	return &Submitter{
		authority: c,
		access:    src,
		refresh:   refresh,
		toast:     NewToast(clk, ToastDuration),
		log:       logrus.WithField("component", "submitter"),
	}
}

// Toast is the success notification.
func (s *Submitter) Toast() *Toast { return s.toast }

// Check runs the local checks, in order: access, blank text, length.
func (s *Submitter) Check(text string) error {
	if s.access == nil || !s.access.State().IsValid() {
		return ErrAccess
	}
	switch validation.FailedTag(validation.Standard().Struct(payload{Text: text})) {
	case "":
		return nil
	case "notblank":
		return ErrEmpty
	default:
		return ErrTooLong
	}
}

// Submit sends text as this week's memory under tok. Nothing is sent when
// Check fails. On success the toast is shown and a refresh of the week list
// is started in the background; see Wait.
func (s *Submitter) Submit(ctx context.Context, tok, text string) error {
	if err := s.Check(text); err != nil {
		s.log.WithError(err).Debug("rejected locally")
		return err
	}
	if err := s.authority.SubmitWeekly(ctx, tok, text); err != nil {
		s.log.WithError(err).Warn("submit weekly memory")
		return fmt.Errorf("%w: %w", ErrSend, err)
	}
	s.toast.Show(MsgSaved)
	if s.refresh != nil {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.refresh(context.WithoutCancel(ctx))
		}()
	}
	return nil
}

// SubmitDraft submits d and clears it on success. The text is kept on any
// error.
func (s *Submitter) SubmitDraft(ctx context.Context, tok string, d *Draft) error {
	if err := s.Submit(ctx, tok, d.Text); err != nil {
		return err
	}
	d.Clear()
	return nil
}

// Wait blocks until started refreshes finish.
func (s *Submitter) Wait() {
	s.wg.Wait()
}

// Message is the status line for the result of Submit.
func Message(err error) string {
	var aerr *authority.Error
	switch {
	case err == nil:
		return MsgSent
	case errors.Is(err, ErrAccess):
		return MsgAccess
	case errors.Is(err, ErrEmpty):
		return MsgEmpty
	case errors.Is(err, ErrTooLong):
		return MsgTooLong
	case errors.As(err, &aerr) && aerr.Detail != "":
		return aerr.Detail
	default:
		return MsgFailed
	}
}
