package info

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/memories/pkg/store"
)

// Info prints where configuration and tokens live.
type Info struct {
	Config store.Config
	Store  store.Store
	Out    io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	w := n.Out
	if w == nil {
		w = color.Output
	}

	if override := os.Getenv("MEMORIES_CONFIG_PATH"); override != "" {
		_, _ = fmt.Fprintln(w, "MEMORIES_CONFIG_PATH found on env, using ", override)
	} else {
		_, _ = fmt.Fprintln(w, "MEMORIES_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	_, _ = fmt.Fprintln(w, "Config.path: ", n.Config.BasePath())
	_, _ = fmt.Fprintln(w, "Config.api:  ", n.Config.APIBase())
	if since := n.Config.Since(); since != "" {
		_, _ = fmt.Fprintln(w, "Config.since:", since)
	}
	if t := n.Config.Timeout(); t > 0 {
		_, _ = fmt.Fprintln(w, "Config.timeout:", t)
	}

	if n.Store == nil {
		return fmt.Errorf("Failed to create store object.")
	}

	_, _ = fmt.Fprintf(w, "Stored:\n")
	for _, k := range []string{store.TokenKey, store.AdminTokenKey} {
		v, err := n.Store.Get(k)
		switch {
		case errors.Is(err, store.ErrNotFound):
			_, _ = fmt.Fprintf(w, "  %s: %s\n", k, "none")
		case err != nil:
			_, _ = fmt.Fprintf(w, "  %s: %v\n", k, err)
		default:
			_, _ = fmt.Fprintf(w, "  %s: %s\n", k, mask(v))
		}
	}
	return nil
}

// mask keeps the last four characters of a secret.
func mask(v string) string {
	r := []rune(v)
	if len(r) <= 4 {
		return "****"
	}
	return "****" + string(r[len(r)-4:])
}
