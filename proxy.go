package crawlbackoff

import (
	"crypto/tls"
	"net/http"
	"net/http/httputil"
	"net/url"
)

type ProxyConfig struct {
	// URL of the origin server.
	// Origins with paths are not supported.
	OriginURL url.URL
	// Hostname to use for HTTP requests and TLS negotiation.
	// Use if needed if e.g. the origin URL is just an IP address.
	OriginHost string
}

// NewProxy returns a reverse proxy to the configured origin.
// Wrap it with Backoff.Middleware to rewrite the origin's not found responses.
func NewProxy(config ProxyConfig) *httputil.ReverseProxy {
	host := config.OriginURL.Host
	hostHeader := host
	transport := http.DefaultTransport
	if config.OriginHost != "" {
		hostHeader = config.OriginHost
		transport = &http.Transport{
			Proxy: http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{
				ServerName: config.OriginHost,
			},
		}
	}

	return &httputil.ReverseProxy{
		Director:  createDirector(config.OriginURL.Scheme, host, hostHeader),
		Transport: transport,
	}
}

func createDirector(scheme, host, hostHeader string) func(req *http.Request) {
	return func(req *http.Request) {
		req.URL.Scheme = scheme
		req.URL.Host = host
		if hostHeader != "" {
			req.Host = hostHeader
		}
	}
}
