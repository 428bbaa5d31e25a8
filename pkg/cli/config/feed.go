package config

import (
	"context"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"

	"github.com/campus-lab/rostersync/pkg/feed"
	"github.com/campus-lab/rostersync/pkg/utils/safe"
)

// feedFileName is the conventional feed file name under the data directory
const feedFileName = "imsenterprise.xml"

// Feed holds CLI flags for the feed source configuration
type Feed struct {
	location string
	fromWeb  bool
	dataDir  string
}

// Flags returns CLI flags for feed configuration
func (f *Feed) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "feed",
			Usage:       "Feed location: a file path, or an http(s)/gs:// URL with --from-web",
			Category:    "Feed",
			Sources:     cli.EnvVars("ROSTERSYNC_FEED"),
			Destination: &f.location,
		},
		&cli.BoolFlag{
			Name:        "from-web",
			Usage:       "Treat the feed location as a remote URL",
			Category:    "Feed",
			Sources:     cli.EnvVars("ROSTERSYNC_FROM_WEB"),
			Destination: &f.fromWeb,
		},
		&cli.StringFlag{
			Name:        "data-dir",
			Usage:       "Data directory holding the default feed file",
			Category:    "Feed",
			Value:       "/var/lib/rostersync",
			Sources:     cli.EnvVars("ROSTERSYNC_DATA_DIR"),
			Destination: &f.dataDir,
		},
	}
}

// Location returns the effective feed location, defaulting to the
// conventional file under the data directory
func (f *Feed) Location() string {
	if f.location != "" {
		return f.location
	}
	return filepath.Join(f.dataDir, feedFileName)
}

// FromWeb reports whether the feed location is remote
func (f *Feed) FromWeb() bool {
	return f.fromWeb
}

// Configure builds the feed source. The returned closer releases the Cloud
// Storage client when one was needed for a gs:// location.
func (f *Feed) Configure(ctx context.Context) (*feed.Source, func(), error) {
	location := f.Location()
	closer := func() {}

	var opts []feed.Option
	if f.fromWeb && strings.HasPrefix(location, "gs://") {
		client, err := storage.NewClient(ctx)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to create storage client for feed location",
				goerr.V("location", location))
		}
		opts = append(opts, feed.WithStorageClient(client))
		closer = func() {
			safe.Close(ctx, client)
		}
	}

	return feed.NewSource(location, f.fromWeb, opts...), closer, nil
}
