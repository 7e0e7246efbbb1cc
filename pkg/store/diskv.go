package store

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"sort"

	"github.com/peterbourgon/diskv/v3"
)

const (
	// TokenKey holds the visitor's last validated access token.
	TokenKey = "memories_token"

	// AdminTokenKey holds the administrative token. It is written only by
	// the admin login flow and never read as a visitor token.
	AdminTokenKey = "memories_admin_token"
)

var (
	ErrNotFound = errors.New("store: key not found")
	ErrBadKey   = errors.New("store: invalid key")
)

var validKey = regexp.MustCompile(`^[a-z0-9_]+$`)

// Store is the client-side key/value storage.
type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
	Keys(ctx context.Context) []string
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Store backed by diskv using the provided config.
func Load(cfg Config) (Store, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	// Other processes write the same files, so reads are never cached.
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:     basePath,
		Transform:    flatTransform,
		CacheSizeMax: 0,
		PathPerm:     0o700,
		FilePerm:     0o600,
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

func flatTransform(string) []string {
	return []string{}
}

func checkKey(key string) error {
	if !validKey.MatchString(key) {
		return fmt.Errorf("%w: %q", ErrBadKey, key)
	}
	return nil
}

func (p *persistence) Get(key string) (string, error) {
	if err := checkKey(key); err != nil {
		return "", err
	}
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNotFound
		}
		return "", err
	}
	return string(val), nil
}

func (p *persistence) Set(key, value string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(p.basePath, 0o700); err != nil {
		return fmt.Errorf("store: ensure base path: %w", err)
	}
	return p.d.Write(key, []byte(value))
}

func (p *persistence) Delete(key string) error {
	if err := checkKey(key); err != nil {
		return err
	}
	if !p.d.Has(key) {
		return nil
	}
	if err := p.d.Erase(key); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}

func (p *persistence) Keys(ctx context.Context) []string {
	keys := make([]string, 0)
	for key := range p.d.Keys(ctx.Done()) {
		if validKey.MatchString(key) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys
}
