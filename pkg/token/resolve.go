// Package token decides which access token a session uses and remembers the
// last one that validated.
package token

import (
	"net/url"
	"strings"
)

// QueryParam is the query parameter carrying the token in shareable links.
const QueryParam = "token"

const legacyPrefix = "/token/"

// Source names where a resolved token came from.
type Source int

const (
	SourceNone Source = iota
	SourceQuery
	SourcePath
	SourceStored
)

func (s Source) String() string {
	switch s {
	case SourceQuery:
		return "query"
	case SourcePath:
		return "path"
	case SourceStored:
		return "stored"
	default:
		return "none"
	}
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Token  string
	Source Source
	// Canonical is set when the token came from a legacy /token/<value> link;
	// it is the same link rewritten to the /?token=<value> form.
	Canonical *url.URL
}

// Resolve picks the active token: the query parameter of link first, then the
// legacy path form, then stored. link may be nil.
func Resolve(link *url.URL, stored string) Resolution {
	if link != nil {
		if t := link.Query().Get(QueryParam); t != "" {
			return Resolution{Token: t, Source: SourceQuery}
		}
		if t, ok := fromPath(link); ok {
			return Resolution{Token: t, Source: SourcePath, Canonical: Canonical(link, t)}
		}
	}
	if stored != "" {
		return Resolution{Token: stored, Source: SourceStored}
	}
	return Resolution{}
}

// ParseLink parses a link as pasted by a user. A bare token (no scheme, no
// slash, no query) is accepted as if it were "?token=<value>".
func ParseLink(raw string) (*url.URL, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	if !strings.ContainsAny(raw, "/?=:") {
		return &url.URL{Path: "/", RawQuery: url.Values{QueryParam: {raw}}.Encode()}, nil
	}
	return url.Parse(raw)
}

func fromPath(link *url.URL) (string, bool) {
	p := link.EscapedPath()
	if !strings.HasPrefix(p, legacyPrefix) {
		return "", false
	}
	seg := strings.TrimPrefix(p, legacyPrefix)
	if seg == "" || strings.Contains(seg, "/") {
		return "", false
	}
	t, err := url.PathUnescape(seg)
	if err != nil || t == "" {
		return "", false
	}
	return t, true
}

// Canonical returns link rewritten to the shareable "/?token=<value>" form on
// the same scheme and host.
func Canonical(link *url.URL, token string) *url.URL {
	c := &url.URL{Path: "/"}
	if link != nil {
		c.Scheme = link.Scheme
		c.Host = link.Host
		c.User = link.User
	}
	c.RawQuery = url.Values{QueryParam: {token}}.Encode()
	return c
}
