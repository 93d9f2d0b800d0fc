// Package ha is a minimal Home Assistant REST client for climate entities.
package ha

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	json "github.com/goccy/go-json"
)

const defaultTimeout = 10 * time.Second

// ErrStatus is wrapped by errors for non-2xx responses.
var ErrStatus = errors.New("unexpected home assistant response status")

// Client talks to the Home Assistant REST API with a long-lived access token.
type Client struct {
	baseURL *url.URL
	token   string
	http    *http.Client
}

// NewClient validates baseURL and returns a client. A zero timeout uses the
// default of 10s.
func NewClient(baseURL, token string, timeout time.Duration) (*Client, error) {
	u, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse home assistant url %q: %w", baseURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("home assistant url %q: scheme must be http or https", baseURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: u,
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}, nil
}

// GetState fetches the current state of an entity.
func (c *Client) GetState(ctx context.Context, entityID string) (*State, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/states/"+entityID, nil)
	if err != nil {
		return nil, err
	}
	var st State
	if err := c.do(req, &st); err != nil {
		return nil, fmt.Errorf("get state of %s: %w", entityID, err)
	}
	return &st, nil
}

// SetHVACMode calls climate.set_hvac_mode.
func (c *Client) SetHVACMode(ctx context.Context, entityID, mode string) error {
	body := setHVACModeRequest{EntityID: entityID, HVACMode: mode}
	if err := c.callService(ctx, "climate", "set_hvac_mode", body); err != nil {
		return fmt.Errorf("set hvac mode %s on %s: %w", mode, entityID, err)
	}
	return nil
}

// SetTemperature calls climate.set_temperature.
func (c *Client) SetTemperature(ctx context.Context, entityID string, temperature float64) error {
	body := setTemperatureRequest{EntityID: entityID, Temperature: temperature}
	if err := c.callService(ctx, "climate", "set_temperature", body); err != nil {
		return fmt.Errorf("set temperature %.1f on %s: %w", temperature, entityID, err)
	}
	return nil
}

func (c *Client) callService(ctx context.Context, domain, service string, payload any) error {
	b, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode service payload: %w", err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, "/api/services/"+domain+"/"+service, bytes.NewReader(b))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, nil)
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	u := c.baseURL.JoinPath(path)
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("%w: %d %s", ErrStatus, resp.StatusCode, strings.TrimSpace(string(msg)))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
