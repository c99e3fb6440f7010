// Package client is the typed data-access layer over the MyWatt REST
// backend. Every screen-level operation in the app goes through the single
// request path in this file, which normalizes the three failure classes
// (no response, non-2xx status, success:false body) into *Error values.
// There are no retries and no request deduplication; each call is
// independent and may run concurrently with others.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/mywatt/mywatt/config"
	"github.com/mywatt/mywatt/session"
)

// Client issues JSON requests against the backend and carries the session
// and rate configuration the typed operations need.
type Client struct {
	baseURL      string
	http         *http.Client
	session      *session.Store
	rates        config.Rates
	pollInterval time.Duration
	log          *slog.Logger
}

// New builds a Client from the loaded configuration and session store.
func New(cfg *config.Config, sess *session.Store) *Client {
	return &Client{
		baseURL:      strings.TrimRight(cfg.APIBaseURL, "/"),
		http:         &http.Client{Timeout: cfg.HTTPTimeout},
		session:      sess,
		rates:        cfg.Rates,
		pollInterval: cfg.PollInterval,
		log:          slog.Default(),
	}
}

// PollInterval is how often the room energy view refreshes.
func (c *Client) PollInterval() time.Duration { return c.pollInterval }

// Session exposes the store so the command layer can read preferences.
func (c *Client) Session() *session.Store { return c.session }

// Rates exposes the billing constants used for cost derivation.
func (c *Client) Rates() config.Rates { return c.rates }

// ReportURL is the address the energy report for the selected household can
// be downloaded from. The report is fetched out-of-band (opened in a
// browser), so only the URL is produced here.
func (c *Client) ReportURL() (string, error) {
	householdID, err := c.requireHousehold()
	if err != nil {
		return "", err
	}
	return c.baseURL + "/energy_report?household_id=" + url.QueryEscape(householdID), nil
}

// requireUser returns the session user id or a precondition error. The
// request must not be issued when the id is absent.
func (c *Client) requireUser() (string, error) {
	id := c.session.UserID()
	if id == "" {
		return "", preconditionError("no user is signed in, please log in again")
	}
	return id, nil
}

// requireHousehold returns the selected household id or a precondition
// error. Household-scoped endpoints short-circuit on this before any
// network I/O.
func (c *Client) requireHousehold() (string, error) {
	id := c.session.HouseholdID()
	if id == "" {
		return "", preconditionError("no house selected, please choose a house first")
	}
	return id, nil
}

func (c *Client) get(ctx context.Context, path string, query url.Values, out any) error {
	return c.do(ctx, http.MethodGet, path, query, nil, out)
}

func (c *Client) post(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPost, path, nil, body, out)
}

func (c *Client) put(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodPut, path, nil, body, out)
}

func (c *Client) delete(ctx context.Context, path string, body, out any) error {
	return c.do(ctx, http.MethodDelete, path, nil, body, out)
}

// failureProbe picks the success flag out of object-shaped responses.
// Array-shaped responses (device listings) have no flag to probe.
type failureProbe struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

// do is the single choke point every request goes through. It marshals the
// body, sends the request, reads the full response and normalizes failures
// into *Error values before decoding into out (which may be nil).
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindNetwork, Message: "failed to encode request", Err: err}
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reqBody)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "failed to create request", Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	// The development backend sits behind an ngrok tunnel that interposes a
	// browser warning page unless this header is present.
	req.Header.Set("ngrok-skip-browser-warning", "true")

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "request failed", Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: "failed to read response", Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var probe failureProbe
		message := ""
		if json.Unmarshal(data, &probe) == nil {
			message = probe.Error
		}
		c.log.Debug("request failed", "method", method, "path", path, "status", resp.StatusCode)
		return &Error{Kind: KindHTTP, Status: resp.StatusCode, Message: message}
	}

	var probe failureProbe
	if json.Unmarshal(data, &probe) == nil && probe.Success != nil && !*probe.Success {
		message := probe.Error
		if message == "" {
			message = "the server rejected the request"
		}
		return &Error{Kind: KindServer, Message: message}
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return &Error{Kind: KindServer, Message: "unexpected response from server"}
		}
	}
	return nil
}
