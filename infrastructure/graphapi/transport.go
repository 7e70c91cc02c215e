package graphapi

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// NewHTTPClient builds the HTTP client behind the Graph session. A non-empty
// baseURL sends every request there instead of graph.facebook.com, which is
// how tests and local fakes are wired in.
func NewHTTPClient(baseURL string, timeout time.Duration) (*http.Client, error) {
	transport := http.DefaultTransport
	if baseURL != "" {
		target, err := url.Parse(baseURL)
		if err != nil || target.Scheme == "" || target.Host == "" {
			return nil, fmt.Errorf("invalid graph base url %q", baseURL)
		}
		transport = &rewriteTransport{target: target, next: transport}
	}
	return &http.Client{Transport: transport, Timeout: timeout}, nil
}

// rewriteTransport points requests at another scheme, host and path prefix
type rewriteTransport struct {
	target *url.URL
	next   http.RoundTripper
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	out := req.Clone(req.Context())
	out.URL.Scheme = t.target.Scheme
	out.URL.Host = t.target.Host
	out.Host = t.target.Host
	if prefix := strings.TrimRight(t.target.Path, "/"); prefix != "" {
		out.URL.Path = prefix + out.URL.Path
		if out.URL.RawPath != "" {
			out.URL.RawPath = prefix + out.URL.RawPath
		}
	}
	return t.next.RoundTrip(out)
}
