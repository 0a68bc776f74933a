package main

import (
	"context"
	"fmt"
	"image"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	"github.com/yyyoichi/httpcache-go"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
	"golang.org/x/time/rate"
)

// rateLimitedClient spaces out requests to remote hosts.
// Safe for concurrent use.
type rateLimitedClient struct {
	client  *http.Client
	limiter *rate.Limiter
}

func newRateLimitedClient(interval time.Duration) *rateLimitedClient {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	return &rateLimitedClient{
		client:  http.DefaultClient,
		limiter: rate.NewLimiter(limit, 1),
	}
}

func (r *rateLimitedClient) Do(req *http.Request) (*http.Response, error) {
	if err := r.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return r.client.Do(req)
}

// newFetchClient returns a client that serves repeated downloads from an
// on-disk cache.
func newFetchClient(cacheDir string, interval time.Duration) *httpcache.Client {
	return &httpcache.Client{
		Client:  newRateLimitedClient(interval),
		Cache:   httpcache.NewStorageCache(cacheDir),
		Handler: httpcache.NewDefaultHandler(),
	}
}

func isRemote(input string) bool {
	return strings.HasPrefix(input, "http://") || strings.HasPrefix(input, "https://")
}

// openInput opens a local file or downloads a remote one.
func openInput(ctx context.Context, client *httpcache.Client, input string) (io.ReadCloser, error) {
	if !isRemote(input) {
		return os.Open(input)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, input, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", input, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("fetch %s: %s", input, resp.Status)
	}
	return resp.Body, nil
}

func loadImage(ctx context.Context, client *httpcache.Client, input string) (image.Image, string, error) {
	rc, err := openInput(ctx, client, input)
	if err != nil {
		return nil, "", err
	}
	defer rc.Close()
	img, format, err := image.Decode(rc)
	if err != nil {
		return nil, "", fmt.Errorf("failed to decode image %s: %w", input, err)
	}
	return img, format, nil
}
