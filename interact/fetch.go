package interact

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the raw bytes of an asset.
type Fetcher interface {
	Fetch(ctx context.Context, location string) ([]byte, error)
}

// FetcherFunc adapts a function into a Fetcher.
type FetcherFunc func(ctx context.Context, location string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, location string) ([]byte, error) {
	return f(ctx, location)
}

// DefaultFetcher reads assets over http(s), from file:// URLs, or from plain paths. Concurrent fetches of the same location share
// one request.
type DefaultFetcher struct {
	Client   *http.Client
	Progress bool // Show a download progress bar for http(s) fetches

	group singleflight.Group
}

// NewDefaultFetcher returns a DefaultFetcher with a 60 second http timeout.
func NewDefaultFetcher(progress bool) *DefaultFetcher {
	return &DefaultFetcher{
		Client:   &http.Client{Timeout: 60 * time.Second},
		Progress: progress,
	}
}

// Fetch returns the bytes at the location. The returned slice may be shared with concurrent callers and must not be modified.
func (f *DefaultFetcher) Fetch(ctx context.Context, location string) ([]byte, error) {

	v, err, _ := f.group.Do(location, func() (any, error) {
		return f.fetch(ctx, location)
	})

	if err != nil {
		return nil, err
	}

	return v.([]byte), nil

}

func (f *DefaultFetcher) fetch(ctx context.Context, location string) ([]byte, error) {

	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return f.fetchHTTP(ctx, location)
	}

	path := location

	if strings.HasPrefix(location, "file://") {
		u, err := url.Parse(location)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", location, err)
		}
		path = u.Path
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return data, nil

}

func (f *DefaultFetcher) fetchHTTP(ctx context.Context, location string) ([]byte, error) {

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
	if err != nil {
		return nil, fmt.Errorf("create request for %s: %w", location, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", location, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", location, resp.Status)
	}

	buf := &bytes.Buffer{}
	var writer io.Writer = buf

	if f.Progress {
		title := fmt.Sprintf("download %s", location)
		var bar *progressbar.ProgressBar
		if resp.ContentLength > 0 {
			bar = progressbar.DefaultBytes(resp.ContentLength, title)
		} else {
			bar = progressbar.DefaultBytes(-1, title)
		}
		defer bar.Close()
		writer = io.MultiWriter(buf, bar)
	}

	if _, err := io.Copy(writer, resp.Body); err != nil {
		return nil, fmt.Errorf("read body of %s: %w", location, err)
	}

	return buf.Bytes(), nil

}
