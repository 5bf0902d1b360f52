package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/zaidalsharkasi/NFC-frontend-sub000/configs/configslog"
	"go.uber.org/zap"
)

const maxErrorBody = 64 << 10

// Client Backend REST API istemcisi. Tüm çağrılar context alır; handler
// isteği iptal edilirse backend çağrısı da iptal olur.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option istemci ayarı.
type Option func(*Client)

// WithHTTPClient özel bir *http.Client kullanır (testlerde httptest istemcisi).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithTimeout istek başına zaman aşımı.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.httpClient.Timeout = d }
}

// New baseURL'e bağlı bir istemci oluşturur (örn: https://api.example.com/api).
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// BaseURL yapılandırılmış kök adres.
func (c *Client) BaseURL() string { return c.baseURL }

// Do isteği gönderir ve {data: ...} zarfının içini out'a çözer. out nil ise
// gövde okunmaz.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body Body, out any) error {
	raw, err := c.do(ctx, method, path, query, body)
	if err != nil {
		return err
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	return unwrapData(raw, out)
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body Body) ([]byte, error) {
	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var (
		reader      io.Reader
		contentType string
	)
	if body != nil {
		ct, r, err := body.Encode()
		if err != nil {
			return nil, err
		}
		reader, contentType = r, ct
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, fmt.Errorf("apiclient: creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	session := SessionFrom(ctx)
	if session != nil {
		if token := session.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		configslog.Log.Warn("Backend isteği başarısız",
			zap.String("method", method), zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("apiclient: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	configslog.Log.Debug("Backend isteği",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		if session != nil {
			session.Clear()
		}
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, method, path)
	case resp.StatusCode >= 400:
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, parseAPIError(resp.StatusCode, b)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("apiclient: reading response: %w", err)
	}
	return b, nil
}

type dataEnvelope struct {
	Data json.RawMessage `json:"data"`
}

// unwrapData {data: X} zarfını açar. Zarfsız yanıtlar olduğu gibi çözülür.
func unwrapData(raw []byte, out any) error {
	var env dataEnvelope
	if err := json.Unmarshal(raw, &env); err == nil && len(env.Data) > 0 && !bytes.Equal(env.Data, []byte("null")) {
		raw = env.Data
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("apiclient: decoding response: %w", err)
	}
	return nil
}
