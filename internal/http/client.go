package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/handiism/yeahmusic/internal/logger"
)

// maxErrorBody bounds how much of a failed response is kept as the error
// message.
const maxErrorBody = 4 << 10

// StatusError is returned for any non-2xx response. Its message is the
// response body, which the catalog uses as user-facing error text.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body != "" {
		return e.Body
	}
	return fmt.Sprintf("HTTP %d: %s", e.Code, http.StatusText(e.Code))
}

// IsStatus reports whether err is a StatusError with the given code.
func IsStatus(err error, code int) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == code
}

// Client wraps HTTP operations against the catalog API.
//
// Client provides:
//   - Base URL resolution for relative catalog paths ("/uploads/a.mp3")
//   - JSON GET and POST helpers
//   - Multipart form uploads with files read from disk
//   - A fresh X-Request-ID on every request, echoed in the logs
//
// Example usage:
//
//	client := NewClient("http://localhost:8080")
//
//	var content model.Content
//	err := client.GetJSON(ctx, "/api/content", nil, &content)
//
//	var user model.User
//	err = client.PostJSON(ctx, "/api/update-profile", req, &user)
type Client struct {
	httpClient *http.Client
	baseURL    *url.URL
	userAgent  string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout overrides the default 60 second timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a new HTTP client for the catalog at baseURL.
//
// The client is configured with:
//   - 60 second timeout
//   - "yeahmusic" User-Agent header
//
// An unparsable base URL is treated as empty, so only absolute references
// can be fetched.
func NewClient(baseURL string, opts ...Option) *Client {
	base, err := url.Parse(strings.TrimRight(baseURL, "/"))
	if err != nil {
		base = &url.URL{}
	}
	c := &Client{
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		baseURL:   base,
		userAgent: "yeahmusic",
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve turns a catalog reference into an absolute URL. Absolute URLs
// and empty references are returned unchanged.
func (c *Client) Resolve(ref string) string {
	if ref == "" {
		return ""
	}
	u, err := url.Parse(ref)
	if err != nil || u.IsAbs() {
		return ref
	}
	return c.baseURL.ResolveReference(u).String()
}

// GetJSON performs a GET on path with the given query and decodes the JSON
// response into out.
//
// Example:
//
//	var tracks []model.Track
//	err := client.GetJSON(ctx, "/api/search", url.Values{"q": {"night"}}, &tracks)
func (c *Client) GetJSON(ctx context.Context, path string, query url.Values, out any) error {
	ref := path
	if len(query) > 0 {
		ref += "?" + query.Encode()
	}
	req, err := c.newRequest(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return err
	}
	return c.doJSON(req, out)
}

// PostJSON sends in as a JSON body and decodes the response into out. A nil
// out discards the body.
func (c *Client) PostJSON(ctx context.Context, path string, in, out any) error {
	body, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	req, err := c.newRequest(ctx, http.MethodPost, path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	return c.doJSON(req, out)
}

// FormFile names a local file to attach to a multipart form.
type FormFile struct {
	Field string
	Path  string
}

// PostMultipart sends fields and files as multipart/form-data. Files with
// an empty Path are skipped.
func (c *Client) PostMultipart(ctx context.Context, path string, fields map[string]string, files []FormFile, out any) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	for k, v := range fields {
		if err := w.WriteField(k, v); err != nil {
			return err
		}
	}
	for _, f := range files {
		if f.Path == "" {
			continue
		}
		if err := attach(w, f); err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := c.newRequest(ctx, http.MethodPost, path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return c.doJSON(req, out)
}

func attach(w *multipart.Writer, f FormFile) error {
	src, err := os.Open(f.Path)
	if err != nil {
		return fmt.Errorf("attach %s: %w", f.Field, err)
	}
	defer src.Close()

	part, err := w.CreateFormFile(f.Field, filepath.Base(f.Path))
	if err != nil {
		return err
	}
	_, err = io.Copy(part, src)
	return err
}

// DownloadBytes downloads a file and returns the bytes in memory.
//
// Use this for small files like cover art images. Relative references are
// resolved against the base URL.
//
// Example:
//
//	imageData, err := client.DownloadBytes(ctx, track.CoverURL)
func (c *Client) DownloadBytes(ctx context.Context, ref string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, ref, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}

func (c *Client) newRequest(ctx context.Context, method, ref string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.Resolve(ref), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Request-ID", uuid.NewString())
	return req, nil
}

// do sends req and converts non-2xx responses into a StatusError.
func (c *Client) do(req *http.Request) (*http.Response, error) {
	start := time.Now()
	id := req.Header.Get("X-Request-ID")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed",
			zap.String("request_id", id),
			zap.String("method", req.Method),
			zap.String("url", req.URL.String()),
			zap.Error(err))
		return nil, err
	}

	logger.Debug("request",
		zap.String("request_id", id),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		defer resp.Body.Close()
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return resp, nil
}

func (c *Client) doJSON(req *http.Request, out any) error {
	resp, err := c.do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, err = io.Copy(io.Discard, resp.Body)
		return err
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s: %w", req.URL.Path, err)
	}
	return nil
}
