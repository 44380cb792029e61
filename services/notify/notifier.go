// Package notify posts deployment status transitions to an optional webhook.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusStarted   Status = "started"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Event is one status transition of one deployment.
type Event struct {
	ID      uuid.UUID `json:"id"`
	AppName string    `json:"app_name"`
	Status  Status    `json:"status"`
	Error   string    `json:"error,omitempty"`
	Time    time.Time `json:"time"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(appName string, status Status, cause error) Event {
	ev := Event{
		ID:      uuid.New(),
		AppName: appName,
		Status:  status,
		Time:    time.Now().UTC(),
	}
	if cause != nil {
		ev.Error = cause.Error()
	}
	return ev
}

// Notifier delivers events to a webhook reachable over tcp or a unix socket.
type Notifier struct {
	endpoint   string
	typ        string // tcp or unix
	socketPath string
	baseURL    string
	token      string // bearer token, optional
}

const eventsPath = "/v1/deployments"

// FromEnv builds a notifier from DEPLOY_WEBHOOK (tcp://host:port or
// unix:///path) and DEPLOY_WEBHOOK_TOKEN. An unset endpoint returns
// (nil, nil): notification is optional.
func FromEnv() (*Notifier, error) {
	endpoint := strings.TrimSpace(os.Getenv("DEPLOY_WEBHOOK"))
	if endpoint == "" {
		return nil, nil
	}
	n, err := New(endpoint, strings.TrimSpace(os.Getenv("DEPLOY_WEBHOOK_TOKEN")))
	if err != nil {
		return nil, err
	}
	return n, nil
}

// New parses an endpoint like:
//
//	unix:///var/run/hooks.sock
//	tcp://example.com:8080
func New(endpoint, token string) (*Notifier, error) {
	u, err := url.Parse(strings.TrimSpace(endpoint))
	if err != nil {
		return nil, fmt.Errorf("invalid webhook endpoint %q: %w", endpoint, err)
	}

	n := &Notifier{endpoint: endpoint, token: token}

	switch strings.ToLower(u.Scheme) {
	case "unix":
		if u.Path == "" {
			return nil, fmt.Errorf("unix endpoint missing socket path: %q", endpoint)
		}
		n.typ = "unix"
		n.socketPath = u.Path
		// The URL host is ignored when dialing a unix socket, but net/http
		// still needs a valid URL.
		n.baseURL = "http://webhook"

	case "tcp":
		if u.Host == "" {
			return nil, fmt.Errorf("tcp endpoint missing host:port: %q", endpoint)
		}
		n.typ = "tcp"
		n.baseURL = "http://" + u.Host

	default:
		return nil, fmt.Errorf("unsupported webhook scheme %q (use unix:// or tcp://)", u.Scheme)
	}

	return n, nil
}

func (n *Notifier) client() *http.Client {
	if n.typ == "unix" {
		dialer := &net.Dialer{Timeout: 10 * time.Second}
		return &http.Client{
			Transport: &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					return dialer.DialContext(ctx, "unix", n.socketPath)
				},
			},
			Timeout: 30 * time.Second,
		}
	}
	return &http.Client{Timeout: 30 * time.Second}
}

// Publish delivers one event. Any non-2xx response is an error.
func (n *Notifier) Publish(ctx context.Context, ev Event) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.baseURL+eventsPath, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}

	resp, err := n.client().Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		rb, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook rejected event (%d): %s", resp.StatusCode, string(rb))
	}
	return nil
}
