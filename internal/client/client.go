// Package client talks to the Gradewise API on behalf of a signed-in user.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// ErrSessionExpired is returned when the API rejects the stored token. The session has
// already been cleared when it is returned.
var ErrSessionExpired = errors.New("session expired, please log in again")

// ErrNotLoggedIn is returned by operations that need a token when none is stored.
var ErrNotLoggedIn = errors.New("not logged in")

// APIError is a non-2xx response other than 401.
type APIError struct {
	Status  int
	Message string
	Details string
	Fields  map[string]string
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("api error %d: %s", e.Status, e.Message)
	if e.Details != "" {
		msg += " (" + e.Details + ")"
	}
	return msg
}

type Client struct {
	baseURL string
	session *Session
	http    *http.Client
	log     logrus.FieldLogger
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func WithLogger(log logrus.FieldLogger) Option {
	return func(c *Client) { c.log = log }
}

// New returns a client for the API rooted at baseURL (for example http://localhost:8085/api).
func New(baseURL string, session *Session, opts ...Option) *Client {
	if session == nil {
		session = NewSession("")
	}

	c := &Client{
		baseURL: baseURL,
		session: session,
		http:    &http.Client{Timeout: 15 * time.Second},
		log:     logrus.StandardLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) Session() *Session {
	return c.session
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrap(err, "encode request")
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return errors.Wrap(err, "build request")
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.session.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	c.log.WithFields(logrus.Fields{"method": method, "path": path}).Debug("API request")

	resp, err := c.http.Do(req)
	if err != nil {
		return errors.Wrapf(err, "%s %s", method, path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if err := c.session.Clear(); err != nil {
			c.log.WithError(err).Warn("Failed to clear session")
		}
		return ErrSessionExpired
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeAPIError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return errors.Wrap(json.NewDecoder(resp.Body).Decode(out), "decode response")
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}

	var body struct {
		Error   string            `json:"error"`
		Details string            `json:"details"`
		Fields  map[string]string `json:"fields"`
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, 1<<20)).Decode(&body); err == nil && body.Error != "" {
		apiErr.Message = body.Error
		apiErr.Details = body.Details
		apiErr.Fields = body.Fields
	}

	return apiErr
}

func (c *Client) requireLogin() error {
	if !c.session.LoggedIn() {
		return ErrNotLoggedIn
	}
	return nil
}

// resourcePath builds /<resource>/<id>; list routes take the owner id, deletes the record id.
func resourcePath(resource string, id uint) string {
	return "/" + resource + "/" + strconv.FormatUint(uint64(id), 10)
}
