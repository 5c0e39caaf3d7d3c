package main

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	crawlbackoff "github.com/always-cache/crawl-backoff"
)

const testConfig = `
port: 9090
origin: https://203.0.113.10
host: www.example.com
health: /healthz
explicitOnly: false
rules:
  - prefix: /wp-admin
    bypass: true
`

func TestGetConfig(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(filename, []byte(testConfig), 0644); err != nil {
		t.Fatal(err)
	}

	config, err := getConfig(filename)
	if err != nil {
		t.Fatal(err)
	}
	if config.Port != 9090 || config.Origin != "https://203.0.113.10" || config.Host != "www.example.com" || config.Health != "/healthz" {
		t.Fatalf("Config is %+v", config)
	}
	if len(config.Rules) != 1 || config.Rules[0].Prefix != "/wp-admin" || !config.Rules[0].Bypass {
		t.Fatalf("Rules are %+v", config.Rules)
	}

	proxyConfig, err := proxyConfigFrom(config)
	if err != nil {
		t.Fatal(err)
	}
	if proxyConfig.OriginURL.Host != "203.0.113.10" || proxyConfig.OriginHost != "www.example.com" {
		t.Fatalf("Proxy config is %+v", proxyConfig)
	}
}

func TestGetConfigErrors(t *testing.T) {
	if _, err := getConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("Expected error for missing file")
	}
	filename := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(filename, []byte("port: [nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := getConfig(filename); err == nil {
		t.Fatal("Expected error for broken file")
	}
}

func TestProxyConfigValidation(t *testing.T) {
	for _, origin := range []string{"", "example.com", "https://example.com/blog", "://nope"} {
		if _, err := proxyConfigFrom(Config{Origin: origin}); err == nil {
			t.Fatalf("Expected error for origin %q", origin)
		}
	}
	if _, err := proxyConfigFrom(Config{Origin: "http://localhost:8000/"}); err != nil {
		t.Fatal(err)
	}
}

func TestRouter(t *testing.T) {
	origin := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			w.Write([]byte("home"))
			return
		}
		http.NotFound(w, r)
	}))
	defer origin.Close()
	originURL, _ := url.Parse(origin.URL)

	config := Config{Health: "/healthz"}
	backoff := crawlbackoff.New(crawlbackoff.Config{})
	router := newRouter(config, backoff, crawlbackoff.NewProxy(crawlbackoff.ProxyConfig{OriginURL: *originURL}))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("Health status is %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))
	if rec.Code != http.StatusOK || rec.Body.String() != "home" {
		t.Fatalf("Status code is %d, body %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/gone", nil))
	if rec.Code != http.StatusServiceUnavailable || rec.Header().Get("Retry-After") != "1209600" {
		t.Fatalf("Status code is %d, headers %v", rec.Code, rec.Header())
	}
}
