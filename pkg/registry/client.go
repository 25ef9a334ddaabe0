// Package registry implements the HTTP client for the remote package
// registry: authentication, publish, search, details and download.
//
// The client is a thin stateless dispatcher. It performs no retries and
// sets no timeout beyond the transport defaults; robustness is the
// caller's responsibility.
package registry

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

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/parcelreg/parcel/internal/models"
	srvErrors "github.com/parcelreg/parcel/pkg/errors"
)

type Client struct {
	baseURL    string
	httpClient *http.Client
	log        *zap.SugaredLogger
}

type ClientOption func(*Client)

// WithHTTPClient overrides the default IPv4-pinned HTTP client.
// Used by tests to point the client at an httptest server.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// NewClient creates a registry client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Transport: newTransport()},
		log:        zap.S().Named("registry_client"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Login exchanges email/password for a short-lived session token.
// POST /auth/login
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := json.Marshal(map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/auth/login", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	var result struct {
		Token string `json:"token"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.Token, nil
}

// CreateAPIToken exchanges a session token for a long-lived API key.
// POST /user/api-token
func (c *Client) CreateAPIToken(ctx context.Context, sessionToken string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/user/api-token", nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+sessionToken)
	req.Header.Set("X-Request-Id", uuid.NewString())

	var result struct {
		APIToken string `json:"api_token"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.APIToken, nil
}

// Publish uploads a package archive with its metadata as a multipart
// request. The archive is streamed through an io.Pipe, never buffered in
// full, so arbitrarily large archives upload in constant memory.
// POST /packages/publish
func (c *Client) Publish(ctx context.Context, apiKey string, desc models.PackageDescriptor, archivePath string) (string, error) {
	archive, err := os.Open(archivePath)
	if err != nil {
		return "", err
	}
	defer archive.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		err := writePublishBody(mw, desc, archive, filepath.Base(archivePath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/packages/publish", pr)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+apiKey)
	req.Header.Set("X-Request-Id", uuid.NewString())

	var result struct {
		Message string `json:"message"`
	}
	if err := c.do(req, &result); err != nil {
		return "", err
	}
	return result.Message, nil
}

func writePublishBody(mw *multipart.Writer, desc models.PackageDescriptor, archive io.Reader, fileName string) error {
	fields := map[string]string{
		"packageName": desc.Name,
		"version":     desc.Version,
		"description": desc.Description,
	}
	for name, value := range fields {
		if err := mw.WriteField(name, value); err != nil {
			return err
		}
	}

	part, err := mw.CreateFormFile("package", fileName)
	if err != nil {
		return err
	}
	_, err = io.Copy(part, archive)
	return err
}

// Search queries the registry catalog. Results keep server order.
// GET /packages/search?q=<query>
func (c *Client) Search(ctx context.Context, query string) ([]models.SearchResult, error) {
	u := fmt.Sprintf("%s/packages/search?q=%s", c.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult
	if err := c.do(req, &results); err != nil {
		return nil, err
	}
	return results, nil
}

// Details resolves a package name to its latest published version.
// GET /packages/details/<name>
func (c *Client) Details(ctx context.Context, name string) (*models.PackageDetails, error) {
	u := fmt.Sprintf("%s/packages/details/%s", c.baseURL, url.PathEscape(name))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	var details models.PackageDetails
	if err := c.do(req, &details); err != nil {
		var serverErr *srvErrors.ServerError
		if errors.As(err, &serverErr) && serverErr.StatusCode == http.StatusNotFound {
			return nil, srvErrors.NewPackageNotFoundError(name)
		}
		return nil, err
	}
	return &details, nil
}

// Download fetches a package archive as a stream. The caller owns the
// returned body and must close it; the bytes are not read here.
// GET /packages/download/<name>/<version>
func (c *Client) Download(ctx context.Context, name, version string) (io.ReadCloser, error) {
	u := fmt.Sprintf("%s/packages/download/%s/%s", c.baseURL, url.PathEscape(name), url.PathEscape(version))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, decodeServerError(resp)
	}
	return resp.Body, nil
}

// do sends the request and decodes a 2xx JSON body into out.
// Non-2xx responses become ServerErrors carrying the server-provided
// error field when the body had one.
func (c *Client) do(req *http.Request, out any) error {
	c.log.Debugw("registry request", "method", req.Method, "url", req.URL.String())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeServerError(resp)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// decodeServerError prefers the server's error field over the bare
// HTTP status text.
func decodeServerError(resp *http.Response) error {
	var body struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err == nil && body.Error != "" {
		return srvErrors.NewServerError(resp.StatusCode, body.Error)
	}
	return srvErrors.NewServerError(resp.StatusCode, resp.Status)
}
