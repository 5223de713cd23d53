package client

import (
	"bytes"
	"compress/gzip"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"

	"uvc-cli/internal/logger"
	"uvc-cli/pkg/models"
)

const requestTimeout = 10 * time.Second

// Config describes how to reach the NVR. Immutable after construction.
type Config struct {
	Host   string
	Port   int
	APIKey string
	TLS    bool
}

// Client is a session against one UniFi Video NVR. Construction
// performs the bootstrap request, so a usable Client always knows the
// server version.
type Client struct {
	HTTP    *resty.Client
	cfg     Config
	version models.Version
	log     *slog.Logger
}

// New connects to the NVR and bootstraps the session.
func New(cfg Config) (*Client, error) {
	scheme := "http"
	r := resty.New()
	if cfg.TLS {
		scheme = "https"
		// On-prem NVRs ship self-signed certs.
		r.SetTLSClientConfig(&tls.Config{InsecureSkipVerify: true})
	}
	r.SetBaseURL(fmt.Sprintf("%s://%s:%d", scheme, cfg.Host, cfg.Port))
	r.SetTimeout(requestTimeout)
	r.SetHeader("Content-Type", "application/json")
	r.SetHeader("Accept", "application/json, text/javascript, */*; q=0.01")
	// Setting Accept-Encoding manually disables net/http's transparent
	// gunzip, so decode() handles Content-Encoding itself.
	r.SetHeader("Accept-Encoding", "gzip, deflate")
	r.SetQueryParam("apiKey", cfg.APIKey)

	c := &Client{
		HTTP: r,
		cfg:  cfg,
		log:  logger.Log.With(slog.String("nvr", fmt.Sprintf("%s:%d", cfg.Host, cfg.Port))),
	}

	boot, err := c.bootstrap()
	if err != nil {
		return nil, err
	}
	sysInfo, _ := boot["systemInfo"].(map[string]any)
	raw, _ := sysInfo["version"].(string)
	version, err := models.ParseVersion(raw)
	if err != nil {
		return nil, err
	}
	c.version = version
	c.log.Debug("bootstrapped", slog.String("version", version.String()))
	return c, nil
}

// ServerVersion is the NVR version learned at bootstrap.
func (c *Client) ServerVersion() models.Version {
	return c.version
}

// CameraIdentifierKey names the record field used to address cameras:
// "id" on 3.2.0 and later, "uuid" before.
func (c *Client) CameraIdentifierKey() string {
	if c.version.AtLeast(3, 2, 0) {
		return "id"
	}
	return "uuid"
}

func (c *Client) bootstrap() (map[string]any, error) {
	data, err := c.request(http.MethodGet, "/api/2.0/bootstrap", nil)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("empty bootstrap response")
	}
	return data[0], nil
}

// request issues one API call and returns the response's unwrapped
// top-level "data" array. Most endpoints answer {"data": [...]};
// single-resource reads take element 0.
func (c *Client) request(method, path string, body any) ([]map[string]any, error) {
	resp, err := c.raw(method, path, body)
	if err != nil {
		return nil, err
	}
	decoded, err := decode(resp)
	if err != nil {
		return nil, err
	}
	var payload struct {
		Data []map[string]any `json:"data"`
	}
	if err := json.Unmarshal(decoded, &payload); err != nil {
		return nil, fmt.Errorf("malformed nvr response: %w", err)
	}
	return payload.Data, nil
}

// raw issues a request and maps the status code onto the error
// taxonomy, returning the response untouched.
func (c *Client) raw(method, path string, body any) (*resty.Response, error) {
	req := c.HTTP.R()
	if body != nil {
		req.SetBody(body)
	}
	c.log.Debug("request", slog.String("method", method), slog.String("path", path))
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, &ConnError{Err: err}
	}
	status := resp.StatusCode()
	c.log.Debug("response", slog.String("path", path), slog.Int("status", status))
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return nil, ErrNotAuthorized
	}
	if status < 200 || status > 299 {
		return nil, &RequestError{Status: status}
	}
	return resp, nil
}

// decode returns the response body, gunzipping it first when the
// server answered with Content-Encoding: gzip.
func decode(resp *resty.Response) ([]byte, error) {
	body := resp.Body()
	if resp.Header().Get("Content-Encoding") != "gzip" {
		return body, nil
	}
	zr, err := gzip.NewReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("bad gzip response: %w", err)
	}
	defer zr.Close()
	return io.ReadAll(zr)
}

// TestLogin submits credentials to the NVR login endpoint and reports
// the raw status without mapping it onto the error taxonomy; the
// caller interprets 200 vs anything else.
func (c *Client) TestLogin(username, password string) (int, string, error) {
	resp, err := c.HTTP.R().
		SetBody(map[string]string{"username": username, "password": password}).
		Post("/api/2.0/login")
	if err != nil {
		return 0, "", &ConnError{Err: err}
	}
	return resp.StatusCode(), resp.Status(), nil
}
