package mathbox

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// maxFetchBytes bounds the body read by BuildURL.
const maxFetchBytes = 1 << 20

// HTTPBuildRequest configures BuildURL.
type HTTPBuildRequest struct {
	URL      string
	Client   *http.Client
	Settings []Setting
}

// BuildURL fetches an expression over HTTP(S), validates it and builds it.
func BuildURL(ctx context.Context, req HTTPBuildRequest) (*Box, error) {
	if req.URL == "" {
		return nil, fmt.Errorf("build url: URL is required")
	}
	if ctx == nil {
		ctx = context.Background()
	}
	client := req.Client
	if client == nil {
		client = http.DefaultClient
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, req.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build url: build request: %w", err)
	}
	if httpReq.URL.Scheme != "http" && httpReq.URL.Scheme != "https" {
		return nil, fmt.Errorf("build url: unsupported scheme %q", httpReq.URL.Scheme)
	}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("build url: request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("build url: status %s", resp.Status)
	}
	src, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes+1))
	if err != nil {
		return nil, fmt.Errorf("build url: read body: %w", err)
	}
	if len(src) > maxFetchBytes {
		return nil, fmt.Errorf("build url: body exceeds %d bytes", maxFetchBytes)
	}
	if err := ValidateInput(src); err != nil {
		return nil, fmt.Errorf("build url: %w", err)
	}
	return Build(string(src), req.Settings...)
}
