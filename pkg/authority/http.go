package authority

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"gopkg.in/resty.v1"
)

// ErrMalformed reports a 2xx answer the client could not make sense of.
var ErrMalformed = errors.New("authority: malformed response")

type httpClient struct {
	log    *logrus.Entry
	client *resty.Client
}

// errorBody is what the authority sends along with error statuses. detail is
// usually a string but validation errors carry a list.
type errorBody struct {
	Detail interface{} `json:"detail"`
}

type tokenResponse struct {
	Author string `json:"author"`
}

type textRequest struct {
	Text string `json:"text"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// NewHTTPClient returns a rest client for the authority at base. A zero
// timeout leaves the transport default in place.
func NewHTTPClient(base *url.URL, timeout time.Duration) Client {
	log := logrus.WithField("component", "authority_client")
	client := resty.New().
		SetLogger(log.WriterLevel(logrus.DebugLevel)).
		SetHostURL(strings.TrimSuffix(base.String(), "/")).
		SetHeader("Accept", "application/json").
		// The token endpoint may answer with a redirect to the web frontend;
		// the author is read from that redirect instead of following it.
		SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		}))
	if timeout > 0 {
		client.SetTimeout(timeout)
	}
	client.JSONMarshal = jsoniter.Marshal
	client.JSONUnmarshal = jsoniter.Unmarshal
	return &httpClient{
		log:    log,
		client: client,
	}
}

func (c *httpClient) request(ctx context.Context) *resty.Request {
	return c.client.R().
		SetContext(ctx).
		SetError(&errorBody{})
}

func (c *httpClient) authed(ctx context.Context, token string) *resty.Request {
	return c.request(ctx).SetAuthToken(token)
}

func (c *httpClient) Weeks(ctx context.Context) ([]WeekRecord, error) {
	c.log.Debug("list weeks")
	var records []WeekRecord
	resp, err := c.request(ctx).
		SetResult(&records).
		Get("/weeks")
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return records, nil
}

func (c *httpClient) Token(ctx context.Context, token string) (string, error) {
	c.log.Debug("validate token")
	var body tokenResponse
	resp, err := c.request(ctx).
		SetResult(&body).
		Get("/token/" + url.PathEscape(token))
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	if code := resp.StatusCode(); code >= 300 && code < 400 {
		return authorFromRedirect(resp.Header().Get("Location"))
	}
	if body.Author == "" {
		return "", fmt.Errorf("%w: token response without author", ErrMalformed)
	}
	return body.Author, nil
}

func authorFromRedirect(location string) (string, error) {
	u, err := url.Parse(location)
	if err != nil {
		return "", fmt.Errorf("%w: redirect location: %v", ErrMalformed, err)
	}
	author := u.Query().Get("author")
	if author == "" {
		return "", fmt.Errorf("%w: redirect without author", ErrMalformed)
	}
	return author, nil
}

func (c *httpClient) SubmitWeekly(ctx context.Context, token, text string) error {
	c.log.WithField("length", len([]rune(text))).Info("submit weekly memory")
	resp, err := c.authed(ctx, token).
		SetBody(textRequest{Text: text}).
		Post("/weekly-memory")
	return checkResponse(resp, err)
}

func notesPath(kind Kind) (string, error) {
	switch kind {
	case Goals, Unlinked:
		return "/" + string(kind), nil
	default:
		return "", fmt.Errorf("authority: unknown note kind %q", kind)
	}
}

func (c *httpClient) Notes(ctx context.Context, kind Kind, token string) ([]Note, error) {
	path, err := notesPath(kind)
	if err != nil {
		return nil, err
	}
	c.log.WithField("kind", kind).Debug("list notes")
	var notes []Note
	resp, err := c.authed(ctx, token).
		SetResult(&notes).
		Get(path)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return notes, nil
}

func (c *httpClient) AddNote(ctx context.Context, kind Kind, token, text string) (*Note, error) {
	path, err := notesPath(kind)
	if err != nil {
		return nil, err
	}
	c.log.WithField("kind", kind).Info("add note")
	note := &Note{}
	resp, err := c.authed(ctx, token).
		SetBody(textRequest{Text: text}).
		SetResult(note).
		Post(path)
	if err := checkResponse(resp, err); err != nil {
		return nil, err
	}
	return note, nil
}

func (c *httpClient) DeleteNote(ctx context.Context, kind Kind, token string, id int64) error {
	path, err := notesPath(kind)
	if err != nil {
		return err
	}
	c.log.WithFields(logrus.Fields{"kind": kind, "id": id}).Info("delete note")
	resp, err := c.authed(ctx, token).
		Delete(path + "/" + strconv.FormatInt(id, 10))
	return checkResponse(resp, err)
}

func (c *httpClient) AdminLogin(ctx context.Context, username, password string) (string, error) {
	c.log.WithField("username", username).Info("admin login")
	var body loginResponse
	resp, err := c.request(ctx).
		SetBody(loginRequest{Username: username, Password: password}).
		SetResult(&body).
		Post("/admin/login")
	if err := checkResponse(resp, err); err != nil {
		return "", err
	}
	if body.Token == "" {
		return "", fmt.Errorf("%w: login response without token", ErrMalformed)
	}
	return body.Token, nil
}

func checkResponse(resp *resty.Response, err error) error {
	if resp != nil && resp.IsError() {
		e := &Error{Status: resp.StatusCode()}
		if body, ok := resp.Error().(*errorBody); ok && body != nil {
			switch d := body.Detail.(type) {
			case nil:
			case string:
				e.Detail = d
			default:
				e.Detail = fmt.Sprint(d)
			}
		}
		return e
	}
	if err != nil {
		return err
	}
	if resp == nil {
		return ErrMalformed
	}
	return nil
}
