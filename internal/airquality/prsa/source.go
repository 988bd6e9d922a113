package prsa

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/airdash/airdash/internal/airquality"
	"github.com/airdash/airdash/internal/provider/resilience"
)

// ProviderName identifies this source.
const ProviderName = "prsa"

// HTTPDoer abstracts HTTP request execution.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Config holds configuration for the PRSA source.
type Config struct {
	// Location is a local file path or an http(s) URL.
	Location string

	// Encoding is the character encoding of the file (default: utf-8).
	Encoding string

	// Delimiter separates fields (default: ',').
	Delimiter rune

	// HTTPClient fetches remote locations. If nil, a resilient client is created.
	HTTPClient HTTPDoer

	// Timeout for fetching a remote location (default: 30s).
	Timeout time.Duration

	// Registry, when set, tracks the fetch client for the status endpoint.
	Registry *resilience.Registry
}

// Source reads the observation table from a file or URL.
type Source struct {
	location   string
	opts       ParseOptions
	httpClient HTTPDoer
}

// NewSource creates a new PRSA source.
func NewSource(cfg Config) *Source {
	httpClient := cfg.HTTPClient
	if httpClient == nil && IsRemote(cfg.Location) {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = 30 * time.Second
		}
		httpClient = resilience.NewClient(resilience.ClientConfig{
			Name:            ProviderName,
			Timeout:         timeout,
			MaxRetries:      3,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     5 * time.Second,
			Registry:        cfg.Registry,
		})
	}

	return &Source{
		location: cfg.Location,
		opts: ParseOptions{
			Encoding:  cfg.Encoding,
			Delimiter: cfg.Delimiter,
		},
		httpClient: httpClient,
	}
}

// IsRemote reports whether location is fetched over HTTP.
func IsRemote(location string) bool {
	return strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://")
}

// Name identifies the source.
func (s *Source) Name() string {
	return ProviderName + ":" + s.location
}

// Load reads and parses the whole table.
func (s *Source) Load(ctx context.Context) (*airquality.Dataset, error) {
	body, err := s.open(ctx)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	observations, err := Parse(body, s.opts)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.location, err)
	}

	return airquality.NewDataset(s.Name(), observations)
}

func (s *Source) open(ctx context.Context) (io.ReadCloser, error) {
	if !IsRemote(s.location) {
		f, err := os.Open(s.location)
		if err != nil {
			return nil, fmt.Errorf("open dataset: %w", err)
		}
		return f, nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "text/csv, text/plain, */*")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch dataset: unexpected status %d", resp.StatusCode)
	}

	return resp.Body, nil
}
