package util

import (
	"io"
	"net"
	"net/http"
	"time"
)

const defaultTimeout = 30 * time.Second

// CreateHTTPClient returns the client used for provider API calls.
func CreateHTTPClient() *http.Client {
	dialer := &net.Dialer{Timeout: defaultTimeout}
	return &http.Client{
		Timeout: defaultTimeout,
		Transport: &http.Transport{
			Proxy:               http.ProxyFromEnvironment,
			DialContext:         dialer.DialContext,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
			TLSHandshakeTimeout: 10 * time.Second,
		},
	}
}

// ReadResponseBody drains and closes the response body.
func ReadResponseBody(resp *http.Response) ([]byte, error) {
	defer resp.Body.Close()
	return io.ReadAll(resp.Body)
}
