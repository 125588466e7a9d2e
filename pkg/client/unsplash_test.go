package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"
)

func TestResolveQuality(t *testing.T) {
	cases := []struct {
		quality string
		want    int
	}{
		{"low", 65},
		{"medium", 80},
		{"high", 100},
		{"maximum", 100},
		{"85", 85},
		{"0", 0},
		{"garbage", 80},
		{"", 80},
	}

	for _, tc := range cases {
		if got := resolveQuality(tc.quality); got != tc.want {
			t.Errorf("resolveQuality(%q): expected %d, got %d", tc.quality, tc.want, got)
		}
	}
}

func TestRewritePhotoURLReplacesQuality(t *testing.T) {
	rewritten, err := rewritePhotoURL("https://images.example/photo?ixid=abc&q=75", 1920, 1080, 100)
	if err != nil {
		t.Fatalf("rewriting url: %v", err)
	}

	u, err := url.Parse(rewritten)
	if err != nil {
		t.Fatalf("parsing rewritten url: %v", err)
	}
	params := u.Query()

	if params.Get("q") != "100" {
		t.Errorf("expected q=100, got %q", params.Get("q"))
	}
	if params.Get("w") != "1920" || params.Get("h") != "1080" {
		t.Errorf("unexpected dimensions: w=%q h=%q", params.Get("w"), params.Get("h"))
	}
	if params.Get("fit") != "crop" {
		t.Errorf("expected fit=crop, got %q", params.Get("fit"))
	}
	if params.Get("t") == "" {
		t.Error("expected cache-busting timestamp")
	}
	if params.Get("ixid") != "abc" {
		t.Error("unrelated parameters should survive the rewrite")
	}
}

func TestRandomPhoto(t *testing.T) {
	var gotAuth, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotQuery = r.URL.Query().Get("query")
		w.Write([]byte(`{
			"urls": {"regular": "https://images.example/photo?q=75"},
			"user": {"name": "Ansel", "links": {"html": "https://example/ansel"}},
			"links": {"download_location": "https://api.example/download/1"}
		}`))
	}))
	defer server.Close()

	c := NewUnsplashClient(server.URL, "test-access-key", testClientConfig(), zap.NewNop())
	photo, err := c.RandomPhoto(context.Background(), 1920, 1080, "summer dusk", "high")
	if err != nil {
		t.Fatalf("fetching photo: %v", err)
	}

	if gotAuth != "Client-ID test-access-key" {
		t.Errorf("unexpected auth header: %q", gotAuth)
	}
	if gotQuery != "summer dusk" {
		t.Errorf("unexpected query: %q", gotQuery)
	}
	if photo.Author != "Ansel" || photo.AuthorURL != "https://example/ansel" {
		t.Errorf("unexpected attribution: %+v", photo)
	}
	if photo.DownloadLocation != "https://api.example/download/1" {
		t.Errorf("unexpected download location: %q", photo.DownloadLocation)
	}

	u, err := url.Parse(photo.URL)
	if err != nil {
		t.Fatalf("parsing photo url: %v", err)
	}
	if u.Query().Get("q") != "100" {
		t.Errorf("quality not applied: %q", photo.URL)
	}
}

func TestTriggerDownload(t *testing.T) {
	hit := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hit = true
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewUnsplashClient(server.URL, "test-access-key", testClientConfig(), zap.NewNop())
	if err := c.TriggerDownload(context.Background(), server.URL+"/download/1"); err != nil {
		t.Fatalf("triggering download: %v", err)
	}
	if !hit {
		t.Error("download endpoint was not called")
	}
}
