// Package client is a typed Go client for the workmate API. The state
// containers mirror server-side auth, progress and notification state the
// way the web client keeps them, with an explicit load lifecycle instead of
// package-level singletons.
package client

import (
	"encoding/json"
	"fmt"
	"net/http/cookiejar"

	"github.com/go-resty/resty/v2"
)

// Client talks to a workmate server. The session cookie set at login is
// kept in the jar and re-sent automatically, same as a browser.
type Client struct {
	http *resty.Client
}

func New(baseURL string) *Client {
	jar, _ := cookiejar.New(nil)
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetCookieJar(jar).
		SetHeader("Content-Type", "application/json")

	return &Client{http: httpClient}
}

// apiError is the server's {"error": ...} envelope
type apiError struct {
	Error string `json:"error"`
}

// decode unmarshals a response body into out, translating error envelopes
// and non-2xx statuses into Go errors.
func decode(resp *resty.Response, out interface{}) error {
	if resp.IsError() {
		var apiErr apiError
		if err := json.Unmarshal(resp.Body(), &apiErr); err == nil && apiErr.Error != "" {
			return fmt.Errorf("%s (status %d)", apiErr.Error, resp.StatusCode())
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode())
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(resp.Body(), out)
}

func (c *Client) get(path string, out interface{}) error {
	resp, err := c.http.R().Get(path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) post(path string, body, out interface{}) error {
	req := c.http.R()
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Post(path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) put(path string, body, out interface{}) error {
	req := c.http.R()
	if body != nil {
		req.SetBody(body)
	}
	resp, err := req.Put(path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

func (c *Client) delete(path string, out interface{}) error {
	resp, err := c.http.R().Delete(path)
	if err != nil {
		return err
	}
	return decode(resp, out)
}

// Health pings the server
func (c *Client) Health() (bool, error) {
	var body struct {
		OK bool `json:"ok"`
	}
	if err := c.get("/api/health", &body); err != nil {
		return false, err
	}
	return body.OK, nil
}
