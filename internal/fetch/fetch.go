// Package fetch opens the inputs rwc counts: standard input, local files and
// HTTP(S) URLs. Callers get a size-limited io.ReadCloser for every source.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

// Stdin is the source name that selects standard input.
const Stdin = "-"

// Size limits to keep a whole source in memory safely
const (
	MaxFileSizeBytes = 512 * 1024 * 1024 // 512MB limit for files and stdin
	MaxHTTPSizeBytes = 100 * 1024 * 1024 // 100MB limit for HTTP content (may not have Content-Length)
)

// HTTPRequestTimeout bounds a whole URL fetch.
const HTTPRequestTimeout = 30 * time.Second

// per-phase timeouts derived from HTTPRequestTimeout
var (
	HTTPDialTimeout           = HTTPRequestTimeout / 6
	HTTPTLSTimeout            = HTTPRequestTimeout / 6
	HTTPResponseHeaderTimeout = HTTPRequestTimeout / 2
)

// limitedReadCloser fails reads once more than N bytes have been consumed
type limitedReadCloser struct {
	io.ReadCloser
	N      int64  // max bytes remaining
	source string // for error messages
}

func (l *limitedReadCloser) Read(p []byte) (n int, err error) {
	if l.N <= 0 {
		// a source that ends exactly at the limit is still fine
		var probe [1]byte
		if m, _ := l.ReadCloser.Read(probe[:]); m == 0 {
			return 0, io.EOF
		}
		return 0, fmt.Errorf("content from %q exceeds size limit", l.source)
	}
	if int64(len(p)) > l.N {
		p = p[0:l.N]
	}
	n, err = l.ReadCloser.Read(p)
	l.N -= int64(n)
	return
}

// httpClient is shared by all URL fetches and safe for concurrent use.
var httpClient = &http.Client{
	Timeout: HTTPRequestTimeout,
	Transport: &http.Transport{
		Dial: (&net.Dialer{
			Timeout: HTTPDialTimeout,
		}).Dial,
		TLSHandshakeTimeout:   HTTPTLSTimeout,
		ResponseHeaderTimeout: HTTPResponseHeaderTimeout,
		DisableKeepAlives:     true,
	},
}

// IsURL reports whether source is fetched over HTTP.
func IsURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}

// GetContent opens source for reading:
//   - "-" reads from standard input
//   - URLs starting with "http://" or "https://" are fetched via HTTP
//   - everything else is treated as a local file path
//
// The caller must close the returned reader.
func GetContent(ctx context.Context, source string) (io.ReadCloser, error) {
	switch {
	case source == Stdin:
		return &limitedReadCloser{
			ReadCloser: io.NopCloser(os.Stdin),
			N:          MaxFileSizeBytes,
			source:     "stdin",
		}, nil
	case IsURL(source):
		return fetchURL(ctx, source)
	default:
		return fetchFile(source)
	}
}

// ReadText reads source completely and returns its content as a string.
// No decoding is applied; invalid UTF-8 is left for the counter to handle.
func ReadText(ctx context.Context, source string) (string, error) {
	reader, err := GetContent(ctx, source)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read %q: %w", source, err)
	}
	return string(data), nil
}

// fetchURL retrieves content from an HTTP or HTTPS URL.
func fetchURL(ctx context.Context, url string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request for URL %q: %w", url, err)
	}
	req.Header.Set("User-Agent", "rwc/0.1")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch URL %q: %w", url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP request failed for URL %q: status %s", url, resp.Status)
	}

	if contentLength := resp.Header.Get("Content-Length"); contentLength != "" {
		if size, err := strconv.ParseInt(contentLength, 10, 64); err == nil && size > MaxHTTPSizeBytes {
			resp.Body.Close()
			return nil, fmt.Errorf("HTTP content too large (%d bytes > %d bytes limit)",
				size, MaxHTTPSizeBytes)
		}
	}

	return &limitedReadCloser{
		ReadCloser: resp.Body,
		N:          MaxHTTPSizeBytes,
		source:     url,
	}, nil
}

// fetchFile opens a local file after checking it exists and fits the size limit.
func fetchFile(name string) (io.ReadCloser, error) {
	fileInfo, err := os.Stat(name)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file %q does not exist", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to access file %q: %w", name, err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%q is a directory", name)
	}
	if fileInfo.Size() > MaxFileSizeBytes {
		return nil, fmt.Errorf("file %q is too large (%d bytes > %d bytes limit)",
			name, fileInfo.Size(), MaxFileSizeBytes)
	}

	file, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %q: %w", name, err)
	}
	return file, nil
}
