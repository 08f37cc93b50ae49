// Package api performs JSON HTTP calls against the coaching backend with
// bearer-token auth and uniform error semantics.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"
)

const defaultTimeout = 30 * time.Second

// TokenSource supplies the current access token, or "" when no valid
// token is available.
type TokenSource interface {
	Token() (string, error)
}

// Client is an authenticated JSON API client.
type Client struct {
	baseURL string
	tokens  TokenSource
	http    *http.Client
}

// NewClient returns a Client for the given base URL. A nil TokenSource
// sends unauthenticated requests.
func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the configured backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// AuthHeader returns the Authorization header value for the current
// token, or "" when no non-expired token is stored.
func (c *Client) AuthHeader() (string, error) {
	if c.tokens == nil {
		return "", nil
	}

	token, err := c.tokens.Token()
	if err != nil {
		return "", fmt.Errorf("reading access token: %w", err)
	}

	if token == "" {
		return "", nil
	}

	return "Bearer " + token, nil
}

func (c *Client) doJSON(
	ctx context.Context,
	method, path string,
	body, out any,
) error {
	var reader io.Reader

	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return err
		}

		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if err := c.authorize(req); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("%s %s: %w", method, path, ErrUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

// doMultipart posts a multipart form (used by the voice endpoint).
func (c *Client) doMultipart(
	ctx context.Context,
	path string,
	fields map[string]string,
	fileField, fileName string,
	file io.Reader,
	out any,
) error {
	var buf bytes.Buffer

	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}

	fw, err := w.CreateFormFile(fileField, fileName)
	if err != nil {
		return err
	}

	if _, err := io.Copy(fw, file); err != nil {
		return err
	}

	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+path,
		&buf,
	)
	if err != nil {
		return err
	}

	req.Header.Set("Content-Type", w.FormDataContentType())

	if err := c.authorize(req); err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return fmt.Errorf("POST %s: %w", path, ErrUnauthorized)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return nil
	}

	return json.NewDecoder(resp.Body).Decode(out)
}

func (c *Client) authorize(req *http.Request) error {
	header, err := c.AuthHeader()
	if err != nil {
		return err
	}

	if header != "" {
		req.Header.Set("Authorization", header)
	}

	return nil
}

// decodeError extracts a human-readable message from an error response
// body, falling back to the HTTP status text.
func decodeError(resp *http.Response) error {
	type errorPayload struct {
		Message string `json:"message"`
		Detail  string `json:"detail"`
	}

	var payload errorPayload

	_ = json.NewDecoder(resp.Body).Decode(&payload)

	message := payload.Message
	if message == "" {
		message = payload.Detail
	}

	if message == "" {
		message = fmt.Sprintf(
			"request failed with status %d",
			resp.StatusCode,
		)
	}

	return &Error{StatusCode: resp.StatusCode, Message: message}
}
