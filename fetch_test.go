package mathbox

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBuildURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/ok":
			_, _ = w.Write([]byte(`\frac{a}{b}`))
		case "/binary":
			_, _ = w.Write([]byte{'x', 0x00})
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	root, err := BuildURL(context.Background(), HTTPBuildRequest{URL: srv.URL + "/ok", Client: srv.Client()})
	if err != nil {
		t.Fatalf("BuildURL: %v", err)
	}
	if !root.HasClass("mathbox") || root.Height <= 0 {
		t.Fatalf("expected measured root box, got %+v", root)
	}

	if _, err := BuildURL(context.Background(), HTTPBuildRequest{URL: srv.URL + "/binary"}); !errors.Is(err, ErrBinaryInput) {
		t.Fatalf("expected ErrBinaryInput, got %v", err)
	}
	if _, err := BuildURL(context.Background(), HTTPBuildRequest{URL: srv.URL + "/missing"}); err == nil {
		t.Fatalf("expected status error")
	}
	if _, err := BuildURL(context.Background(), HTTPBuildRequest{URL: "ftp://example.com/x"}); err == nil {
		t.Fatalf("expected scheme error")
	}
	if _, err := BuildURL(context.Background(), HTTPBuildRequest{}); err == nil {
		t.Fatalf("expected error for empty URL")
	}
}

func TestBuildURLHonorsSettings(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{{{{x}}}}`))
	}))
	defer srv.Close()
	_, err := BuildURL(context.Background(), HTTPBuildRequest{
		URL:      srv.URL,
		Settings: []Setting{WithMaxDepth(2)},
	})
	if !errors.Is(err, ErrRecursionLimit) {
		t.Fatalf("expected recursion limit, got %v", err)
	}
}
