package loaders

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/translations"
)

const (
	// DefaultHTTPTimeout bounds a single namespace request.
	DefaultHTTPTimeout = 10 * time.Second

	// DefaultMaxBodySize caps a namespace document (5MB).
	DefaultMaxBodySize int64 = 5 << 20
)

// HTTPOption configures the HTTP loader.
type HTTPOption func(*httpLoader)

type httpLoader struct {
	client  *http.Client
	header  http.Header
	base    string
	ext     string
	maxSize int64
}

// WithHTTPClient sets the client used for requests.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(l *httpLoader) {
		if c != nil {
			l.client = c
		}
	}
}

// WithHeader adds a header to every request (e.g. Authorization).
func WithHeader(key, value string) HTTPOption {
	return func(l *httpLoader) {
		l.header.Add(key, value)
	}
}

// WithExtension changes the document extension (default ".json").
// Use ".yaml" for servers that publish YAML.
func WithExtension(ext string) HTTPOption {
	return func(l *httpLoader) {
		if ext != "" && !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if ext != "" {
			l.ext = ext
		}
	}
}

// WithMaxBodySize limits the accepted document size.
func WithMaxBodySize(n int64) HTTPOption {
	return func(l *httpLoader) {
		if n > 0 {
			l.maxSize = n
		}
	}
}

// HTTP returns a loader that fetches GET {baseURL}/{locale}/{namespace}.json.
// A 404 response yields no data and no error.
//
// Example:
//
//	load := loaders.HTTP("https://cdn.example.com/locales",
//	    loaders.WithHeader("Authorization", "Bearer "+token),
//	)
func HTTP(baseURL string, opts ...HTTPOption) translations.NamespaceLoader {
	l := &httpLoader{
		client:  &http.Client{Timeout: DefaultHTTPTimeout},
		header:  make(http.Header),
		base:    strings.TrimRight(baseURL, "/"),
		ext:     ".json",
		maxSize: DefaultMaxBodySize,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l.load
}

func (l *httpLoader) load(ctx context.Context, locale, namespace string) (translations.Record, error) {
	name := url.PathEscape(locale) + "/" + url.PathEscape(namespace) + l.ext
	target := l.base + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for k, v := range l.header {
		req.Header[k] = v
	}

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("%w: %s", ErrAccessDenied, target)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %d from %s", ErrUnexpectedCode, resp.StatusCode, target)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRequestFailed, err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: %q exceeds %d bytes", ErrInvalidFile, name, l.maxSize)
	}

	return decode(name, data)
}
