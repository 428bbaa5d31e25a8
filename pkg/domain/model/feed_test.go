package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/campus-lab/rostersync/pkg/domain/model"
)

func TestFeedIdentityIsNewerThan(t *testing.T) {
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	current := &model.FeedIdentity{
		Path:        "/var/lib/rostersync/imsenterprise.xml",
		Fingerprint: "aaaa",
		ModifiedAt:  base,
	}

	t.Run("first run always processes", func(t *testing.T) {
		gt.Bool(t, current.IsNewerThan(nil)).True()
		gt.Bool(t, current.IsNewerThan(&model.FeedIdentity{})).True()
	})

	t.Run("path change always processes", func(t *testing.T) {
		prev := &model.FeedIdentity{Path: "/somewhere/else.xml", ModifiedAt: base.Add(time.Hour)}
		gt.Bool(t, current.IsNewerThan(prev)).True()
	})

	t.Run("newer modification time processes", func(t *testing.T) {
		prev := &model.FeedIdentity{Path: current.Path, ModifiedAt: base.Add(-time.Minute)}
		gt.Bool(t, current.IsNewerThan(prev)).True()
	})

	t.Run("same or older modification time skips", func(t *testing.T) {
		prev := &model.FeedIdentity{Path: current.Path, ModifiedAt: base}
		gt.Bool(t, current.IsNewerThan(prev)).False()

		prev.ModifiedAt = base.Add(time.Minute)
		gt.Bool(t, current.IsNewerThan(prev)).False()
	})

	t.Run("fingerprint change alone does not process", func(t *testing.T) {
		prev := &model.FeedIdentity{Path: current.Path, Fingerprint: "bbbb", ModifiedAt: base}
		gt.Bool(t, current.IsNewerThan(prev)).False()
	})
}
