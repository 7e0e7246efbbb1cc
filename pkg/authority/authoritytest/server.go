// Package authoritytest runs an in-process fake of the authority for tests.
package authoritytest

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"tableflip.dev/memories/pkg/authority"
	"tableflip.dev/memories/pkg/week"
)

// Zone is the authority's time zone; week identities are served at midnight
// in this offset, the way the real service serializes them.
var Zone = time.FixedZone("CET", 3600)

// Server is a fake authority. The zero configuration accepts submissions at
// any time; set Writable to false to reject them.
type Server struct {
	*httptest.Server

	mu       sync.Mutex
	tokens   map[string]string
	weeks    map[string]authority.WeekRecord
	notes    map[authority.Kind][]authority.Note
	nextID   int64
	calls    map[string]int
	writable bool
	now      func() time.Time
	hook     func(token string)
	redirect string
	admins   map[string]string
}

// NewServer starts a fake authority. Callers must Close it.
func NewServer() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{
		tokens:   make(map[string]string),
		weeks:    make(map[string]authority.WeekRecord),
		notes:    make(map[authority.Kind][]authority.Note),
		calls:    make(map[string]int),
		writable: true,
		now:      time.Now,
		admins:   make(map[string]string),
	}
	s.Server = httptest.NewServer(s.router())
	return s
}

// BaseURL returns the server's base URL, parsed.
func (s *Server) BaseURL() *url.URL {
	u, err := url.Parse(s.Server.URL)
	if err != nil {
		panic(err)
	}
	return u
}

func (s *Server) router() *gin.Engine {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		s.mu.Lock()
		s.calls[c.Request.Method+" "+c.FullPath()]++
		s.mu.Unlock()
		c.Next()
	})

	r.GET("/weeks", s.listWeeks)
	r.GET("/token/:token", s.checkToken)
	r.POST("/weekly-memory", s.author, s.submitWeekly)
	r.POST("/admin/login", s.adminLogin)
	for _, kind := range []authority.Kind{authority.Goals, authority.Unlinked} {
		kind := kind
		r.GET("/"+string(kind), s.author, func(c *gin.Context) { s.listNotes(c, kind) })
		r.POST("/"+string(kind), s.author, func(c *gin.Context) { s.addNote(c, kind) })
		r.DELETE("/"+string(kind)+"/:id", s.author, func(c *gin.Context) { s.deleteNote(c, kind) })
	}
	return r
}

// AddToken makes token valid for author.
func (s *Server) AddToken(token, author string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = author
}

// RevokeToken makes token invalid.
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// AddAdmin accepts username/password at /admin/login.
func (s *Server) AddAdmin(username, password string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.admins[username] = password
}

// SetWeeks replaces the listed week records.
func (s *Server) SetWeeks(records ...authority.WeekRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.weeks = make(map[string]authority.WeekRecord, len(records))
	for _, r := range records {
		s.weeks[r.Week.String()] = r
	}
}

// SetNow fixes the time the fake uses to decide the current week.
func (s *Server) SetNow(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetWritable toggles whether weekly submissions are accepted.
func (s *Server) SetWritable(w bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.writable = w
}

// SetTokenHook installs f to run inside GET /token/:token before answering.
// Tests use it to hold a validation in flight.
func (s *Server) SetTokenHook(f func(token string)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hook = f
}

// SetRedirect makes GET /token/:token answer with a redirect to
// base/write?token=..&author=.., like a deployment with a public web frontend.
func (s *Server) SetRedirect(base string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.redirect = base
}

// Calls returns how many times route (for example "GET /token/:token") was
// hit.
func (s *Server) Calls(route string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[route]
}

// Week returns the record stored for id.
func (s *Server) Week(id week.Identity) (authority.WeekRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.weeks[id.String()]
	return r, ok
}

func (s *Server) listWeeks(c *gin.Context) {
	s.mu.Lock()
	records := make([]authority.WeekRecord, 0, len(s.weeks))
	for _, r := range s.weeks {
		records = append(records, r)
	}
	s.mu.Unlock()

	sort.Slice(records, func(i, j int) bool { return records[i].Week.Before(records[j].Week) })
	out := make([]gin.H, 0, len(records))
	for _, r := range records {
		item := gin.H{
			"week_monday": r.Week.In(Zone).Format(time.RFC3339),
			"status":      r.Status,
		}
		if r.Status == authority.Written {
			item["author"] = r.Author
			item["text"] = r.Text
		}
		out = append(out, item)
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) checkToken(c *gin.Context) {
	token := c.Param("token")
	s.mu.Lock()
	hook := s.hook
	s.mu.Unlock()
	if hook != nil {
		hook(token)
	}

	s.mu.Lock()
	author, ok := s.tokens[token]
	redirect := s.redirect
	s.mu.Unlock()
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"detail": "invalid or expired token"})
		return
	}
	if redirect != "" {
		q := url.Values{"token": {token}, "author": {author}}
		c.Redirect(http.StatusTemporaryRedirect, strings.TrimSuffix(redirect, "/")+"/write?"+q.Encode())
		return
	}
	c.JSON(http.StatusOK, gin.H{"author": author, "ok": true})
}

// author resolves the bearer token, aborting with 401 when it is missing or
// unknown.
func (s *Server) author(c *gin.Context) {
	h := c.GetHeader("Authorization")
	if !strings.HasPrefix(h, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Missing token"})
		return
	}
	s.mu.Lock()
	author, ok := s.tokens[strings.TrimPrefix(h, "Bearer ")]
	s.mu.Unlock()
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Invalid token"})
		return
	}
	c.Set("author", author)
	c.Next()
}

type textBody struct {
	Text string `json:"text"`
}

func (s *Server) submitWeekly(c *gin.Context) {
	var body textBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": []gin.H{{"msg": err.Error()}}})
		return
	}
	author := c.GetString("author")

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.writable {
		c.JSON(http.StatusForbidden, gin.H{"detail": "Not writable now"})
		return
	}
	monday := week.Of(s.now().In(Zone))
	if r, ok := s.weeks[monday.String()]; ok && r.Status == authority.Written {
		c.JSON(http.StatusConflict, gin.H{"detail": "Week already written"})
		return
	}
	s.weeks[monday.String()] = authority.WeekRecord{
		Week:   monday,
		Status: authority.Written,
		Author: author,
		Text:   body.Text,
	}
	c.JSON(http.StatusOK, gin.H{
		"week_monday": monday.In(Zone).Format(time.RFC3339),
		"text":        body.Text,
		"author":      author,
	})
}

type loginBody struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *Server) adminLogin(c *gin.Context) {
	var body loginBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	password, ok := s.admins[body.Username]
	s.mu.Unlock()
	if !ok || password != body.Password {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "Invalid credentials"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": "admin-" + body.Username})
}

func (s *Server) listNotes(c *gin.Context, kind authority.Kind) {
	author := c.GetString("author")
	s.mu.Lock()
	out := make([]authority.Note, 0)
	for _, n := range s.notes[kind] {
		if n.Author == author {
			out = append(out, n)
		}
	}
	s.mu.Unlock()
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt.Time) })
	c.JSON(http.StatusOK, out)
}

func (s *Server) addNote(c *gin.Context, kind authority.Kind) {
	var body textBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	s.mu.Lock()
	s.nextID++
	n := authority.Note{
		ID:        s.nextID,
		Text:      body.Text,
		Author:    c.GetString("author"),
		CreatedAt: authority.Timestamp{Time: s.now().Add(time.Duration(s.nextID) * time.Millisecond)},
	}
	s.notes[kind] = append(s.notes[kind], n)
	s.mu.Unlock()
	c.JSON(http.StatusOK, n)
}

func (s *Server) deleteNote(c *gin.Context, kind authority.Kind) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "bad id"})
		return
	}
	author := c.GetString("author")
	s.mu.Lock()
	defer s.mu.Unlock()
	list := s.notes[kind]
	for i, n := range list {
		if n.ID == id && n.Author == author {
			s.notes[kind] = append(list[:i], list[i+1:]...)
			c.JSON(http.StatusOK, gin.H{"ok": true})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"detail": "Not found"})
}
