// Package manifeststore fetches the remote modpack manifest once per process
package manifeststore

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/evergales/tinkaros/internals/ctxlog"
	"github.com/evergales/tinkaros/internals/merrors"
	"github.com/evergales/tinkaros/pkg/modpack"
)

// DefaultURL is the location of the tinkaros modpack manifest
const DefaultURL = "https://gist.githubusercontent.com/Hbarniq/ec9d01d863083becd062b378ca01a3d8/raw/ahms.json"

// Store lazily fetches the manifest. The first successful fetch is kept for the
// lifetime of the Store. Concurrent callers share one request and get the same
// result. Failures are not kept, the next call tries again
type Store struct {
	URL    string
	Client *http.Client

	group    singleflight.Group
	mu       sync.Mutex
	manifest *modpack.Manifest
}

// New returns a new Store for the manifest at url
func New(client *http.Client, url string) *Store {
	if client == nil {
		client = http.DefaultClient
	}
	if url == "" {
		url = DefaultURL
	}
	return &Store{URL: url, Client: client}
}

// Get returns the manifest, fetching it if this is the first call (or all previous calls failed).
// Errors are `ManifestInvalid`
func (s *Store) Get(ctx context.Context) (*modpack.Manifest, error) {
	if man := s.cached(); man != nil {
		return man, nil
	}

	v, err, _ := s.group.Do("manifest", func() (interface{}, error) {
		// someone might have finished a fetch while we were waiting to get here
		if man := s.cached(); man != nil {
			return man, nil
		}

		man, err := s.fetch(ctx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		s.manifest = man
		s.mu.Unlock()
		return man, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*modpack.Manifest), nil
}

func (s *Store) cached() *modpack.Manifest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.manifest
}

func (s *Store) fetch(ctx context.Context) (*modpack.Manifest, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("fetching manifest", "url", s.URL)

	req, err := http.NewRequestWithContext(ctx, "GET", s.URL, nil)
	if err != nil {
		return nil, merrors.E(merrors.ManifestInvalid, "fetch manifest", err)
	}

	res, err := s.Client.Do(req)
	if err != nil {
		return nil, merrors.E(merrors.ManifestInvalid, "fetch manifest", err)
	}
	defer res.Body.Close()

	if res.StatusCode != 200 {
		return nil, merrors.E(merrors.ManifestInvalid, "fetch manifest", fmt.Errorf("unexpected status code: %d", res.StatusCode))
	}

	man, err := modpack.Decode(res.Body)
	if err != nil {
		return nil, merrors.E(merrors.ManifestInvalid, "decode manifest", err)
	}
	if err := man.Validate(); err != nil {
		return nil, merrors.E(merrors.ManifestInvalid, "validate manifest", err)
	}

	logger.Info("fetched manifest", "name", man.Name, "version", man.Version, "mods", len(man.Mods))
	return man, nil
}
