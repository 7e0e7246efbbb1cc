package commands

import (
	"io"

	"tableflip.dev/memories/pkg/app"
	"tableflip.dev/memories/pkg/store"
)

// env is what a command run needs: configuration, the local store and the
// service built on them.
type env struct {
	Config  store.Config
	Store   store.Store
	Service *app.Service

	logs io.Closer
}

// setup loads configuration and opens the store. quiet discards logs unless
// a log file is configured.
func setup(quiet bool) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	logs, err := app.ConfigureLogging(cfg, quiet)
	if err != nil {
		return nil, err
	}
	s, err := store.Load(cfg)
	if err != nil {
		_ = logs.Close()
		return nil, err
	}
	svc, err := app.New(cfg, s)
	if err != nil {
		_ = logs.Close()
		return nil, err
	}
	return &env{Config: cfg, Store: s, Service: svc, logs: logs}, nil
}

func (e *env) Close() {
	_ = e.logs.Close()
}
