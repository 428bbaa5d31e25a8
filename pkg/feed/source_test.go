package feed_test

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-lab/rostersync/pkg/feed"
)

func TestSourceLocal(t *testing.T) {
	ctx := context.Background()

	t.Run("loads content and identity", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "imsenterprise.xml")
		content := []byte("<enterprise></enterprise>")
		gt.NoError(t, os.WriteFile(path, content, 0600)).Required()
		mtime := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
		gt.NoError(t, os.Chtimes(path, mtime, mtime))

		src := feed.NewSource(path, false)
		f, err := src.Load(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, f).NotNil()

		gt.Value(t, f.Content).Equal(content)
		gt.Value(t, f.Identity.Path).Equal(path)
		gt.Bool(t, f.Identity.ModifiedAt.Equal(mtime)).True()

		sum := md5.Sum(content)
		gt.Value(t, f.Identity.Fingerprint).Equal(hex.EncodeToString(sum[:]))
	})

	t.Run("missing file is not an error", func(t *testing.T) {
		src := feed.NewSource(filepath.Join(t.TempDir(), "absent.xml"), false)
		f, err := src.Load(ctx)
		gt.NoError(t, err)
		gt.Value(t, f).Nil()
	})
}

func TestSourceRemote(t *testing.T) {
	ctx := context.Background()

	t.Run("loads over http", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<enterprise></enterprise>"))
		}))
		defer srv.Close()

		src := feed.NewSource(srv.URL, true, feed.WithHTTPClient(srv.Client()))
		f, err := src.Load(ctx)
		gt.NoError(t, err).Required()
		gt.Value(t, f).NotNil()
		gt.String(t, string(f.Content)).Equal("<enterprise></enterprise>")
		gt.Value(t, f.Identity.Path).Equal(srv.URL)
	})

	t.Run("empty payload means no feed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		src := feed.NewSource(srv.URL, true, feed.WithHTTPClient(srv.Client()))
		f, err := src.Load(ctx)
		gt.NoError(t, err)
		gt.Value(t, f).Nil()
	})

	t.Run("server error means no feed", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		src := feed.NewSource(srv.URL, true, feed.WithHTTPClient(srv.Client()))
		f, err := src.Load(ctx)
		gt.NoError(t, err)
		gt.Value(t, f).Nil()
	})

	t.Run("non-URL location is rejected", func(t *testing.T) {
		src := feed.NewSource("/var/lib/rostersync/imsenterprise.xml", true)
		_, err := src.Load(ctx)
		gt.Error(t, err)
	})
}
