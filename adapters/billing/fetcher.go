// Package billing downloads the SKU price list from the Yandex Cloud
// billing API. The result is the file the rate catalog is loaded from.
package billing

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/yandex-cloud-examples/yc-tf-cost-estimation/internal/errors"
)

// DefaultEndpoint is the public billing API
const DefaultEndpoint = "https://billing.api.cloud.yandex.net"

const skusPath = "/billing/v1/skus"

// Config configures a Fetcher
type Config struct {
	// Endpoint is the billing API base URL
	Endpoint string

	// Token is an IAM token sent as a bearer token
	Token string

	// PageSize is the number of SKUs requested per page. Zero leaves the
	// server default.
	PageSize int

	// Timeout bounds each HTTP request
	Timeout time.Duration
}

// Fetcher pages through the SKU listing
type Fetcher struct {
	client   *http.Client
	endpoint string
	token    string
	pageSize int
	logger   *zap.Logger
}

// Option configures a Fetcher
type Option func(*Fetcher)

// WithHTTPClient replaces the HTTP client
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// New creates a fetcher
func New(cfg Config, opts ...Option) *Fetcher {
	endpoint := cfg.Endpoint
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = time.Minute
	}

	f := &Fetcher{
		client:   &http.Client{Timeout: timeout},
		endpoint: strings.TrimRight(endpoint, "/"),
		token:    cfg.Token,
		pageSize: cfg.PageSize,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type page struct {
	SKUs          []json.RawMessage `json:"skus"`
	NextPageToken string            `json:"nextPageToken"`
}

// FetchAll returns every SKU object as the API sent it, following
// nextPageToken until it is empty.
func (f *Fetcher) FetchAll(ctx context.Context) ([]json.RawMessage, error) {
	if f.token == "" {
		return nil, errors.New(errors.TypeConfig, "billing token is not set")
	}

	var all []json.RawMessage
	seen := make(map[string]bool)
	token := ""
	for pages := 1; ; pages++ {
		p, err := f.fetchPage(ctx, token)
		if err != nil {
			return nil, err
		}
		all = append(all, p.SKUs...)
		f.logger.Debug("fetched sku page",
			zap.Int("page", pages),
			zap.Int("skus", len(p.SKUs)),
			zap.String("next_page_token", p.NextPageToken))

		if p.NextPageToken == "" {
			break
		}
		if seen[p.NextPageToken] {
			return nil, errors.Newf(errors.TypeNetwork, "billing API repeated page token %q", p.NextPageToken)
		}
		seen[p.NextPageToken] = true
		token = p.NextPageToken
	}

	f.logger.Info("fetched sku catalog", zap.Int("skus", len(all)))
	return all, nil
}

func (f *Fetcher) fetchPage(ctx context.Context, pageToken string) (*page, error) {
	q := url.Values{}
	if f.pageSize > 0 {
		q.Set("pageSize", strconv.Itoa(f.pageSize))
	}
	if pageToken != "" {
		q.Set("pageToken", pageToken)
	}
	u := f.endpoint + skusPath
	if len(q) > 0 {
		u += "?" + q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Internal("build billing request", err)
	}
	req.Header.Set("Authorization", "Bearer "+f.token)
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, errors.Network("billing request failed", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Newf(errors.TypeNetwork, "billing API returned status %d", resp.StatusCode).
			WithContext("body", strings.TrimSpace(string(excerpt)))
	}

	var p page
	if err := json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return nil, errors.Parsing("decode billing response", err)
	}
	return &p, nil
}

// WriteTo fetches the catalog and writes {"skus":[...]} to w. It returns
// the number of SKUs written.
func (f *Fetcher) WriteTo(ctx context.Context, w io.Writer) (int, error) {
	skus, err := f.FetchAll(ctx)
	if err != nil {
		return 0, err
	}
	if skus == nil {
		skus = []json.RawMessage{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "    ")
	if err := enc.Encode(struct {
		SKUs []json.RawMessage `json:"skus"`
	}{skus}); err != nil {
		return 0, errors.Internal("encode sku catalog", err)
	}
	return len(skus), nil
}

// Save fetches the catalog into path. The file is replaced only after the
// whole catalog has been fetched.
func (f *Fetcher) Save(ctx context.Context, path string) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return 0, errors.Config("create sku catalog file", err).WithContext("path", path)
	}
	defer os.Remove(tmp.Name())

	n, err := f.WriteTo(ctx, tmp)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = errors.Config("write sku catalog file", cerr)
	}
	if err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, errors.Config(fmt.Sprintf("replace %s", path), err)
	}
	return n, nil
}
