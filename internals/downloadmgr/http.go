package downloadmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/evergales/tinkaros/internals/ownhttp"
)

var defaultClient = ownhttp.NewDownloadClient()

// HTTPItem is a URL, target pair that will be downloaded using http(s).
// The body is streamed straight into the target file. A failed download
// removes the partially written target, but there is no temp file rename and
// no checksum check, so a crash mid download can still leave a truncated jar
type HTTPItem struct {
	Client *http.Client
	URL    string
	Target string
}

// Name returns the file name of the target
func (i *HTTPItem) Name() string {
	return filepath.Base(i.Target)
}

// Download downloads the item to the defined target using http and returns
// the number of written bytes. A partially written target is removed again
func (i *HTTPItem) Download(ctx context.Context) (int64, error) {
	err := os.MkdirAll(filepath.Dir(i.Target), os.ModePerm)
	if err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", i.URL, nil)
	if err != nil {
		return 0, err
	}

	client := i.Client
	if client == nil {
		client = defaultClient
	}

	fileRes, err := client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error while fetching %s: %w", i.URL, err)
	}
	defer fileRes.Body.Close()

	if fileRes.StatusCode != 200 {
		return 0, fmt.Errorf("invalid status code: %s from %s", fileRes.Status, fileRes.Request.URL)
	}

	dest, err := os.Create(i.Target)
	if err != nil {
		return 0, err
	}

	written, err := io.Copy(dest, fileRes.Body)
	if err == nil {
		err = dest.Sync()
	}
	if closeErr := dest.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(i.Target)
		return 0, err
	}

	return written, nil
}

// NewHTTPItem creates an Item to be queued that will download url into target.
// A nil client falls back to the shared download client
func NewHTTPItem(client *http.Client, url, target string) (*HTTPItem, error) {
	if url == "" {
		return nil, errors.New("download url can not be empty")
	}
	if target == "" {
		return nil, fmt.Errorf("target of %s can not be empty", url)
	}
	return &HTTPItem{Client: client, URL: url, Target: target}, nil
}
