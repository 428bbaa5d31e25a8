// Package feed obtains the raw IMS Enterprise payload from its configured
// location and computes the feed identity used by the run ledger.
package feed

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"

	"github.com/campus-lab/rostersync/pkg/domain/model"
	"github.com/campus-lab/rostersync/pkg/utils/logging"
	"github.com/campus-lab/rostersync/pkg/utils/safe"
)

// Feed is one loaded feed payload with its identity
type Feed struct {
	Content  []byte
	Identity model.FeedIdentity
}

// Source locates and loads the feed. A location is a filesystem path, an
// http(s) URL or a gs:// object reference; URLs are only honored when the
// source is configured as remote.
type Source struct {
	location string
	fromWeb  bool

	httpClient    *http.Client
	storageClient *storage.Client
}

// Option is a functional option for Source configuration
type Option func(*Source)

// WithHTTPClient replaces the HTTP client used for remote locations
func WithHTTPClient(c *http.Client) Option {
	return func(s *Source) {
		s.httpClient = c
	}
}

// WithStorageClient supplies the Cloud Storage client used for gs://
// locations. Without one, gs:// loads fail.
func WithStorageClient(c *storage.Client) Option {
	return func(s *Source) {
		s.storageClient = c
	}
}

// NewSource creates a Source for the given location
func NewSource(location string, fromWeb bool, opts ...Option) *Source {
	s := &Source{
		location:   location,
		fromWeb:    fromWeb,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Location returns the configured feed location
func (s *Source) Location() string {
	return s.location
}

// Load obtains the feed content and identity. A feed that is simply not
// there (missing local file, empty remote payload) returns (nil, nil): the
// run logs it and ends gracefully. Errors are reserved for failures to read
// a feed that exists.
func (s *Source) Load(ctx context.Context) (*Feed, error) {
	if s.fromWeb {
		return s.loadRemote(ctx)
	}
	return s.loadLocal(ctx)
}

func (s *Source) loadLocal(ctx context.Context) (*Feed, error) {
	info, err := os.Stat(s.location)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to stat feed file", goerr.V("path", s.location))
	}

	content, err := os.ReadFile(s.location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read feed file", goerr.V("path", s.location))
	}

	return &Feed{
		Content: content,
		Identity: model.FeedIdentity{
			Path:        s.location,
			Fingerprint: fingerprint(content),
			ModifiedAt:  info.ModTime(),
		},
	}, nil
}

func (s *Source) loadRemote(ctx context.Context) (*Feed, error) {
	var content []byte
	var err error

	u, parseErr := url.Parse(s.location)
	switch {
	case parseErr == nil && u.Scheme == "gs":
		content, err = s.fetchObject(ctx, u)
	case parseErr == nil && (u.Scheme == "http" || u.Scheme == "https"):
		content, err = s.fetchHTTP(ctx)
	default:
		return nil, goerr.New("remote feed location must be an http(s) or gs:// URL",
			goerr.V("location", s.location))
	}
	if err != nil {
		// Unreachable remote feeds are treated like a missing file
		logging.From(ctx).Warn("Failed to fetch remote feed", "location", s.location, logging.ErrAttr(err))
		return nil, nil
	}

	if len(content) == 0 {
		return nil, nil
	}

	return &Feed{
		Content: content,
		Identity: model.FeedIdentity{
			Path:        s.location,
			Fingerprint: fingerprint(content),
			ModifiedAt:  time.Now(),
		},
	}, nil
}

func (s *Source) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.location, nil)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to build feed request")
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to fetch feed")
	}
	defer safe.Close(ctx, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return nil, goerr.New("unexpected feed response status", goerr.V("status", resp.StatusCode))
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read feed response")
	}
	return content, nil
}

func (s *Source) fetchObject(ctx context.Context, u *url.URL) ([]byte, error) {
	if s.storageClient == nil {
		return nil, goerr.New("no storage client configured for gs:// feed location")
	}

	bucket := u.Host
	object := strings.TrimPrefix(u.Path, "/")
	rc, err := s.storageClient.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to open feed object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	defer safe.Close(ctx, rc)

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read feed object",
			goerr.V("bucket", bucket), goerr.V("object", object))
	}
	return content, nil
}

func fingerprint(content []byte) string {
	sum := md5.Sum(content)
	return hex.EncodeToString(sum[:])
}
